// Package crawl provides bounded website crawling orchestration.
// It coordinates the frontier, fetching, and content extraction to
// produce page records within depth and page limits.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/siteask/siteask"
)

// Concurrency bounds for the fetch worker pool.
const (
	DefaultConcurrency = 4
	MaxConcurrency     = 8
)

// DefaultMaxDuration is the wall-clock ceiling for a crawl run. It bounds
// runtime independently of the page budget.
const DefaultMaxDuration = 5 * time.Minute

// Crawler orchestrates bounded crawling of a website.
type Crawler struct {
	Fetcher   siteask.Fetcher
	Extractor siteask.Extractor

	// Sitemaps optionally seeds the frontier from the site's sitemap.
	Sitemaps siteask.SitemapService

	// Concurrency is the fetch worker pool size. Values outside
	// [1, MaxConcurrency] are clamped.
	Concurrency int

	RetryDelays []time.Duration
}

// Options configures a crawl run. Zero values select defaults.
type Options struct {
	// MaxDepth bounds link-following distance from the seed (depth 0).
	MaxDepth int

	// MaxPages bounds the number of successfully extracted pages. Failed
	// fetches do not consume the budget.
	MaxPages int

	// Scope selects the same-site policy. Defaults to siteask.ScopeHost.
	Scope siteask.ScopePolicy

	// UseSitemap additionally seeds the frontier from the sitemap at
	// depth 1. Sitemap failures are ignored; the seed alone suffices.
	UseSitemap bool

	// MaxDuration is the wall-clock ceiling for the run.
	MaxDuration time.Duration
}

// Result holds the outcome of a crawl operation. Pages are in completion
// order; partial results survive cancellation.
type Result struct {
	Pages      []*siteask.PageRecord
	Failed     int // fetch or extract attempts that produced no page
	Duplicates int // pages skipped because their content was already seen
	Bytes      int // total extracted body text bytes
	Duration   time.Duration
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single task.
type crawlResult struct {
	task siteask.CrawlTask
	page *siteask.PageRecord
	err  error
}

// Crawl performs a bounded breadth-first crawl starting from seed.
// The progress callback, if provided, receives events as crawling proceeds.
//
// Returns EINVALID if the seed URL is unusable. Fetch failures within the
// run are counted, not returned.
func (c *Crawler) Crawl(ctx context.Context, seed string, opts Options, progress ProgressFunc) (*Result, error) {
	start := time.Now()

	seedURL, err := siteask.NormalizeURL(seed, "")
	if err != nil {
		return nil, err
	}

	scope, err := siteask.NewSiteScope(seedURL, opts.Scope)
	if err != nil {
		return nil, err
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = siteask.DefaultMaxDepth
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = siteask.DefaultMaxPages
	}
	maxDuration := opts.MaxDuration
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}

	ctx, cancel := context.WithTimeout(ctx, maxDuration)
	defer cancel()

	frontier := NewFrontier(scope, maxDepth, maxPages)
	if !frontier.Push(seedURL, 0) {
		return nil, siteask.Errorf(siteask.EINVALID, "seed URL %q not crawlable", seed)
	}

	// Sitemap URLs enter at depth 1 under the same frontier rules, so the
	// depth and page bounds hold regardless of how a URL was discovered.
	if opts.UseSitemap && c.Sitemaps != nil {
		if urls, err := c.Sitemaps.DiscoverURLs(ctx, seedURL); err == nil {
			for _, u := range urls {
				frontier.Push(u, 1)
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: maxPages})
	}

	var result Result
	c.walkFrontier(ctx, frontier, maxPages, &result, progress)
	result.Duration = time.Since(start)

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(result.Pages),
			Total:     maxPages,
		})
	}

	return &result, nil
}

// processTask fetches and extracts a single task.
func (c *Crawler) processTask(ctx context.Context, task siteask.CrawlTask) crawlResult {
	result := crawlResult{task: task}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetched, err := FetchWithRetryDelays(ctx, task.URL, c.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	page, err := c.Extractor.Extract(fetched.Body, fetched.ContentType, task.URL)
	if err != nil {
		result.err = err
		return result
	}

	page.Depth = task.Depth
	page.ContentHash = HashContent(page.BodyText)
	page.FetchedAt = time.Now().UTC()
	result.page = page

	return result
}

// HashContent computes the xxhash of page text. Pages with equal hashes
// are treated as duplicates within a crawl run.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
