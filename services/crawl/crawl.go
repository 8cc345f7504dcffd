// Package crawl fans page fetches out over a bounded worker pool and
// collects parsed records. Pages succeed or fail independently; a failed
// page is logged and simply absent from the output.
package crawl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"

	"marathondata/lib/records"
	"marathondata/lib/scrapers/mika"
)

var tracer = otel.Tracer("services/crawl")

type Options struct {
	// Concurrency bounds in-flight fetches; zero means 8.
	Concurrency int
}

func (o Options) workers() int {
	if o.Concurrency <= 0 {
		return 8
	}
	return o.Concurrency
}

// Results fetches every listing URL and returns the parsed runner rows in
// URL order.
func Results(ctx context.Context, client *mika.Client, profile mika.EraProfile, urls []string, opts Options) []records.RunnerRecord {
	ctx, span := tracer.Start(ctx, "Results")
	defer span.End()

	perPage := make([][]records.RunnerRecord, len(urls))
	forEachPage(ctx, client, urls, opts, func(ctx context.Context, i int, doc pageDoc) {
		perPage[i] = mika.ParseResults(ctx, doc.doc, doc.url, profile)
	})

	var out []records.RunnerRecord
	for _, page := range perPage {
		out = append(out, page...)
	}
	slog.InfoContext(ctx, "results crawl done",
		"marathon", profile.Marathon, "pages", len(urls), "runners", len(out))
	return out
}

// Splits fetches every runner's split page. At most one record per runner
// comes back, in URL order.
func Splits(ctx context.Context, client *mika.Client, profile mika.EraProfile, urls []string, opts Options) []records.SplitRecord {
	ctx, span := tracer.Start(ctx, "Splits")
	defer span.End()

	perPage := make([]*records.SplitRecord, len(urls))
	forEachPage(ctx, client, urls, opts, func(ctx context.Context, i int, doc pageDoc) {
		rec := mika.ParseSplits(ctx, doc.doc, doc.url, profile)
		perPage[i] = &rec
	})

	var out []records.SplitRecord
	for _, rec := range perPage {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	slog.InfoContext(ctx, "splits crawl done",
		"marathon", profile.Marathon, "pages", len(urls), "records", len(out))
	return out
}

type pageDoc struct {
	url string
	doc *goquery.Document
}

// forEachPage runs handle for every URL that fetched and parsed cleanly.
// handle writes into its own slot, so no lock is needed; the semaphore
// bounds how many fetches are in flight at once.
func forEachPage(ctx context.Context, client *mika.Client, urls []string, opts Options, handle func(ctx context.Context, i int, doc pageDoc)) {
	sem := make(chan struct{}, opts.workers())
	wg := sync.WaitGroup{}

	for i, url := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, url string) {
			defer wg.Done()
			defer func() { <-sem }()

			doc, err := client.GetPage(ctx, url)
			if err != nil {
				slog.WarnContext(ctx, "failed to fetch page", "url", url, "err", err)
				return
			}
			handle(ctx, i, pageDoc{url: url, doc: doc})
		}(i, url)
	}
	wg.Wait()
}
