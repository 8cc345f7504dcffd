// Package restyutil dumps fetched pages to disk for scraper debugging.
// The timing sites change markup without notice, a saved page body is
// usually the fastest way to see what broke a profile.
package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type FilesystemOutput struct {
	directory string
	counter   atomic.Uint64
}

func NewFilesystemOutput(dir string) *FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	return &FilesystemOutput{directory: dir}
}

func (o *FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".html"), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write page dump", "id", id, "err", err)
	}
}

// DumpResponses saves every response body the client receives, one
// numbered file per request.
func (o *FilesystemOutput) DumpResponses(client *resty.Client) {
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(o.counter.Add(1), 10)
		o.Write(id, res.String())
		slog.Debug("dumped page", "id", id, "url", res.Request.URL)
		return nil
	})
}
