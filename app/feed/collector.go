package feed

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/market-radar/app/metrics"
)

const DefaultSourceTimeout = 20 * time.Second

type Collector struct {
	fetcher     Fetcher
	extractor   Extractor
	filterer    *Filterer
	metrics     *metrics.Metrics
	concurrency int
	timeout     time.Duration
	now         func() time.Time
}

// NewCollector builds a collector. extractor and m may be nil.
func NewCollector(fetcher Fetcher, extractor Extractor, m *metrics.Metrics, concurrency int, timeout time.Duration) *Collector {
	return &Collector{
		fetcher:     fetcher,
		extractor:   extractor,
		filterer:    NewFilterer(),
		metrics:     m,
		concurrency: max(concurrency, 1),
		timeout:     cmp.Or(timeout, DefaultSourceTimeout),
		now:         time.Now,
	}
}

// FetchRecent polls every source and returns the articles published strictly
// after now minus minutesBack, newest first. A failing source is reported in
// its SourceReport and contributes no articles; it never aborts the others.
func (c *Collector) FetchRecent(ctx context.Context, sources []Source, minutesBack int) ([]Article, []SourceReport) {
	minutesBack = max(minutesBack, 0)
	cutoff := c.now().UTC().Add(-time.Duration(minutesBack) * time.Minute)

	slog.Info("Fetching news", "published_after", cutoff.Format("2006-01-02 15:04:05 UTC"), "sources", len(sources))

	perSource := make([][]Article, len(sources))
	reports := make([]SourceReport, len(sources))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, source := range sources {
		g.Go(func() error {
			articles, filtered, err := c.collectSource(ctx, source, cutoff)
			perSource[i] = articles
			reports[i] = SourceReport{Source: source.Name, Count: len(articles), Filtered: filtered, Err: err}
			c.metrics.ObserveSource(source.Name, len(articles), filtered, err)

			if err != nil {
				slog.Warn("Source fetch failed", "source", source.Name, "error", err)
			} else {
				slog.Info("Source checked", "source", source.Name, "new", len(articles), "filtered", filtered)
			}
			return nil
		})
	}
	_ = g.Wait()

	var all []Article
	for _, articles := range perSource {
		all = append(all, articles...)
	}

	slices.SortStableFunc(all, func(a, b Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	return all, reports
}

func (c *Collector) collectSource(ctx context.Context, source Source, cutoff time.Time) ([]Article, int, error) {
	timeout := c.timeout
	if source.Timeout > 0 {
		timeout = time.Duration(source.Timeout) * time.Second
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries, err := c.fetcher.Fetch(fetchCtx, source.URL)
	if err != nil {
		return nil, 0, &SourceError{Source: source.Name, Err: err}
	}

	var articles []Article
	for _, entry := range entries {
		if entry.PublishedAt == nil {
			continue
		}

		publishedAt := entry.PublishedAt.UTC()
		if !publishedAt.After(cutoff) {
			continue
		}

		articles = append(articles, Article{
			Source:      source.Name,
			Title:       entry.Title,
			URL:         entry.Link,
			PublishedAt: publishedAt,
			Summary:     c.summarize(ctx, source, entry),
		})
	}

	articles, filtered := c.filterer.Run(articles, source.Filters)

	return articles, filtered, nil
}

// summarize builds the article summary from the feed text. When that falls
// back to the title and the source opts in, the linked page is extracted
// under its own timeout, independent of the feed download deadline.
func (c *Collector) summarize(ctx context.Context, source Source, entry Entry) string {
	summary := Summarize(entry.Title, cmp.Or(entry.Content, entry.Description))

	if summary != entry.Title || !source.ExtractContent || c.extractor == nil || entry.Link == "" {
		return summary
	}

	extractCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.extractor.Extract(extractCtx, entry.Link)
	if err != nil {
		slog.Warn("Content extraction failed", "source", source.Name, "url", entry.Link, "error", err)
		return summary
	}

	return Summarize(entry.Title, text)
}
