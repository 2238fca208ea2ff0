package siteask

import "context"

// Chunk represents a section of a page's text optimized for embedding and
// retrieval.
type Chunk struct {
	ID            string    `json:"id"`
	SourcePageURL string    `json:"sourcePageUrl"`
	Text          string    `json:"text"`
	Position      int       `json:"position"` // ordinal within the source page, from 0
	Embedding     []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourcePageURL == "" {
		return Errorf(EINVALID, "chunk source page URL required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if c.Position < 0 {
		return Errorf(EINVALID, "chunk position must not be negative")
	}
	return nil
}

// ChunkMatch represents a retrieval match.
type ChunkMatch struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"` // cosine similarity, higher is better
}

// RetrieveOptions configures retrieval behavior.
type RetrieveOptions struct {
	// Maximum number of matches to return. Zero means DefaultTopK.
	TopK int `json:"topK,omitempty"`

	// Restrict matches to chunks from a single source page.
	SourceURL *string `json:"sourceUrl,omitempty"`

	// Minimum similarity score.
	MinScore *float32 `json:"minScore,omitempty"`
}

// DefaultTopK is the number of chunks retrieved per question when the
// caller does not specify one.
const DefaultTopK = 5

// Retriever performs semantic search over a collection's chunks.
type Retriever interface {
	// Retrieve embeds the query and returns the best-matching chunks,
	// ordered by score descending with ties broken by source URL and
	// position ascending. Zero matches return an empty slice, not an
	// error.
	//
	// Returns ENOTFOUND if the collection does not exist and EMISMATCH
	// if it was indexed with a different embedding model.
	Retrieve(ctx context.Context, collection string, query string, opts RetrieveOptions) ([]*ChunkMatch, error)
}
