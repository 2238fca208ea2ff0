package siteask

import "context"

// FetchResult holds the raw bytes and content type of a fetched URL.
type FetchResult struct {
	Body        []byte
	ContentType string
}

// Fetcher retrieves raw content from URLs.
type Fetcher interface {
	// Fetch retrieves the content at the URL.
	// The context controls timeout and cancellation.
	//
	// Returns ETIMEOUT for timeouts and connection failures,
	// ENOTFOUND for HTTP 404, EUNAVAILABLE for HTTP 429/5xx and
	// redirect loops, EUNSUPPORTED for oversized bodies, and EINVALID
	// for other client errors. Only ETIMEOUT and EUNAVAILABLE failures
	// are worth retrying.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
