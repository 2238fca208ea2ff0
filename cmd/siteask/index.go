package main

import (
	"fmt"

	"github.com/siteask/siteask"
	"github.com/siteask/siteask/crawl"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	// Apply user-specified concurrency
	if c.Concurrency > 0 {
		deps.Indexer.Crawler.Concurrency = c.Concurrency
	}

	deps.Indexer.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s (up to %d pages)\n", c.URL, event.Total)
		case crawl.ProgressCompleted:
			// Padding clears residue from the previous, possibly longer URL.
			fmt.Fprintf(deps.Stdout, "\r  [%d/%d] %-60s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after indexing completes
			fmt.Fprintln(deps.Stdout)
		}
	}

	result, err := deps.Indexer.IndexSite(deps.Ctx, &siteask.IndexRequest{
		URL:           c.URL,
		MaxDepth:      c.Depth,
		MaxPages:      c.Pages,
		IncludeImages: c.Images,
		UseSitemap:    c.Sitemap,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %q: %d pages, %d chunks (%s)\n",
		result.CollectionName, result.PageCount, result.ChunkCount, crawl.FormatBytes(int(result.ContentSize)))
	if result.ImageCount > 0 {
		fmt.Fprintf(deps.Stdout, "  %d images\n", result.ImageCount)
	}
	if result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "  %d duplicate pages skipped\n", result.Duplicates)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d pages failed\n", result.Failed)
	}

	return nil
}
