// Package http provides the HTTP implementations: the page fetcher, the
// sitemap discovery service, and the API server.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/siteask/siteask"
)

// Fetch limits.
const (
	// DefaultFetchTimeout is the per-request timeout.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxBodySize caps the response body at 10 MiB. Larger bodies
	// are rejected rather than truncated.
	DefaultMaxBodySize = 10 << 20

	// maxRedirects bounds redirect chains per request.
	maxRedirects = 5
)

// Browser-like request headers. Some sites serve bot user agents a
// stripped or blocked page.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.5"
)

var errTooManyRedirects = siteask.Errorf(siteask.EUNAVAILABLE, "too many redirects")

// Ensure Fetcher implements siteask.Fetcher at compile time.
var _ siteask.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content over plain HTTP. It does not execute
// JavaScript and is suitable for static sites only.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize sets the response body size cap in bytes.
// Defaults to DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the content at the given URL.
//
// Returns ETIMEOUT for timeouts and connection failures, ENOTFOUND for
// HTTP 404, EUNAVAILABLE for HTTP 429/5xx and redirect loops, EINVALID
// for other non-200 statuses, and EUNSUPPORTED for oversized bodies.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*siteask.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		var appErr *siteask.Error
		switch {
		case errors.As(err, &appErr):
			return nil, appErr
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			// Timeouts, DNS failures, and connection resets all land
			// here; the retry policy treats them as transient.
			return nil, siteask.Errorf(siteask.ETIMEOUT, "fetching %s: %v", url, err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, siteask.Errorf(siteask.ETIMEOUT, "reading %s: %v", url, err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, siteask.Errorf(siteask.EUNSUPPORTED, "response body for %s exceeds %d bytes", url, f.maxBodySize)
	}

	return &siteask.FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// statusError maps a non-200 response to an application error. 404 and
// the 429/5xx classes get their own codes so the retry policy can tell
// retryable failures apart.
func statusError(status int, url string) error {
	switch {
	case status == http.StatusNotFound:
		return siteask.Errorf(siteask.ENOTFOUND, "HTTP 404 for %s", url)
	case status == http.StatusTooManyRequests || status >= 500:
		return siteask.Errorf(siteask.EUNAVAILABLE, "HTTP %d for %s", status, url)
	default:
		return siteask.Errorf(siteask.EINVALID, "HTTP %d for %s", status, url)
	}
}
