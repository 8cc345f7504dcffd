// Package mika scrapes the family of race-timing sites hosting the
// London, Hamburg, Houston, Boston, Chicago and Stockholm marathon
// results. Page layouts differ per marathon and per site era, so every
// marathon/era pair is described by a declarative EraProfile and the
// parsing code itself stays generic.
package mika

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"marathondata/lib/telemetry"
	"marathondata/lib/util/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/mika")

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// Timeout applies per request; zero means 30s.
	Timeout time.Duration
	// DumpDir, when set, saves every fetched page body under it for
	// debugging broken era profiles.
	DumpDir string
}

func NewClient(opts ClientOptions) (*Client, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/mika/http")
	if opts.DumpDir != "" {
		restyutil.NewFilesystemOutput(opts.DumpDir).DumpResponses(client)
	}

	return &Client{Http: client}, nil
}

// GetPage fetches one page and parses it into a goquery document.
func (c *Client) GetPage(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:GetPage")
	defer span.End()

	res, err := c.Http.R().SetContext(ctx).Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}
	return doc, nil
}
