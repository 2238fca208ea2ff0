package siteask

// CrawlTask represents a URL scheduled for fetching. Tasks are created by
// the frontier and consumed by crawl workers; they are never persisted.
type CrawlTask struct {
	URL   string
	Depth int
}

// Frontier manages the crawl queue: breadth-first ordering, URL
// deduplication, and the depth and page bounds.
type Frontier interface {
	// Push adds a URL to the frontier at the given depth.
	// Returns false if the URL is out of scope, already seen, beyond the
	// depth bound, or if admitting it would exceed the page budget.
	// A URL accepted by Push is marked seen immediately, so it can never
	// be returned by Pop more than once.
	Push(url string, depth int) bool

	// Pop returns the next task in breadth-first order: lowest depth
	// first, insertion order within a depth.
	// Returns false if the frontier is empty.
	Pop() (CrawlTask, bool)

	// Len returns the number of queued tasks.
	Len() int

	// Seen returns true if the URL has been queued or popped.
	Seen(url string) bool
}
