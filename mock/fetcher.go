package mock

import (
	"context"

	"github.com/siteask/siteask"
)

var _ siteask.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of siteask.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*siteask.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*siteask.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
