package rag

import (
	"context"

	"github.com/siteask/siteask"
)

// Ensure Retriever implements siteask.Retriever at compile time.
var _ siteask.Retriever = (*Retriever)(nil)

// Retriever performs semantic search by embedding the query with the same
// model the collection was indexed with.
type Retriever struct {
	Generator siteask.Generator
	Store     siteask.Store
}

// Retrieve embeds the query and returns the best-matching chunks.
//
// Returns ENOTFOUND if the collection does not exist and EMISMATCH if it
// was indexed with a different embedding model. Querying across embedding
// models would produce meaningless scores, so the mismatch is an error
// rather than an empty result.
func (r *Retriever) Retrieve(ctx context.Context, collection string, query string, opts siteask.RetrieveOptions) ([]*siteask.ChunkMatch, error) {
	col, err := r.Store.FindCollectionByName(ctx, collection)
	if err != nil {
		return nil, err
	}

	if model := r.Generator.EmbeddingModelID(); col.EmbeddingModel != model {
		return nil, siteask.Errorf(siteask.EMISMATCH,
			"collection %q was indexed with embedding model %q, current model is %q",
			collection, col.EmbeddingModel, model)
	}

	vector, err := r.Generator.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	return r.Store.QueryVectors(ctx, collection, vector, siteask.QueryOptions{
		TopK:      opts.TopK,
		SourceURL: opts.SourceURL,
		MinScore:  opts.MinScore,
	})
}
