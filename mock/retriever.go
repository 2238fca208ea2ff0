package mock

import (
	"context"

	"github.com/siteask/siteask"
)

var _ siteask.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of siteask.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, collection string, query string, opts siteask.RetrieveOptions) ([]*siteask.ChunkMatch, error)
}

func (r *Retriever) Retrieve(ctx context.Context, collection string, query string, opts siteask.RetrieveOptions) ([]*siteask.ChunkMatch, error) {
	return r.RetrieveFn(ctx, collection, query, opts)
}
