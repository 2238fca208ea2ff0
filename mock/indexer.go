package mock

import (
	"context"

	"github.com/siteask/siteask"
)

var _ siteask.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of siteask.Indexer.
type Indexer struct {
	IndexSiteFn func(ctx context.Context, req *siteask.IndexRequest) (*siteask.IndexResult, error)
}

func (i *Indexer) IndexSite(ctx context.Context, req *siteask.IndexRequest) (*siteask.IndexResult, error) {
	return i.IndexSiteFn(ctx, req)
}
