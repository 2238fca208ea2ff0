package siteask

import (
	"context"
	"time"
)

// Collection represents one indexed website. Names are derived from the
// site's domain and are stable across runs; re-indexing a domain replaces
// the collection's contents.
type Collection struct {
	Name           string    `json:"name"`
	SourceURL      string    `json:"sourceUrl"`
	EmbeddingModel string    `json:"embeddingModel"`
	PageCount      int       `json:"pageCount"`
	ContentSize    int64     `json:"contentSize"` // total extracted text bytes
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate returns an error if the collection contains invalid fields.
func (c *Collection) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "collection name required")
	}
	if c.SourceURL == "" {
		return Errorf(EINVALID, "collection source URL required")
	}
	if c.EmbeddingModel == "" {
		return Errorf(EINVALID, "collection embedding model required")
	}
	return nil
}

// CollectionStats summarizes a collection's contents.
type CollectionStats struct {
	PageCount   int   `json:"pageCount"`
	ChunkCount  int   `json:"chunkCount"`
	ImageCount  int   `json:"imageCount"`
	ContentSize int64 `json:"contentSize"`
}

// QueryOptions configures a vector similarity query.
type QueryOptions struct {
	TopK      int      `json:"topK,omitempty"`
	SourceURL *string  `json:"sourceUrl,omitempty"`
	MinScore  *float32 `json:"minScore,omitempty"`
}

// ImageSort represents the sort order for image queries.
type ImageSort string

// ImageSort constants for ImageFilter.
const (
	SortNewest   ImageSort = "newest"
	SortOldest   ImageSort = "oldest"
	SortSizeDesc ImageSort = "size_desc"
	SortSizeAsc  ImageSort = "size_asc"
	SortAlpha    ImageSort = "alpha"
)

// ImageFilter represents a filter for Images queries.
type ImageFilter struct {
	// Substring match over alt text and URL.
	Search string `json:"search,omitempty"`

	// Filter by category. CategoryNone selects uncategorized images;
	// nil disables the filter.
	Category *ImageCategory `json:"category,omitempty"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ImageSort `json:"sortBy,omitempty"`
}

// Store persists collections, chunks, and images, and serves vector
// similarity queries. Implementations must be safe for concurrent use.
type Store interface {
	// CreateCollection creates a collection, replacing any existing
	// collection with the same name together with its chunks and images.
	CreateCollection(ctx context.Context, collection *Collection) error

	// FindCollectionByName retrieves a collection by name.
	// Returns ENOTFOUND if the collection does not exist.
	FindCollectionByName(ctx context.Context, name string) (*Collection, error)

	// ListCollections retrieves all collections, newest first.
	ListCollections(ctx context.Context) ([]*Collection, error)

	// Stats summarizes a collection's contents.
	// Returns ENOTFOUND if the collection does not exist.
	Stats(ctx context.Context, name string) (*CollectionStats, error)

	// DeleteCollection permanently removes a collection and all
	// associated chunks and images.
	// Returns ENOTFOUND if the collection does not exist.
	DeleteCollection(ctx context.Context, name string) error

	// PutChunks stores chunks in a batch. All chunks must carry an
	// embedding of the same length.
	PutChunks(ctx context.Context, collection string, chunks []*Chunk) error

	// PutImages stores image records in a batch.
	PutImages(ctx context.Context, collection string, images []*ImageRecord) error

	// QueryVectors returns the chunks most similar to the query vector,
	// ordered by score descending with ties broken by source URL and
	// position ascending.
	// Returns ENOTFOUND if the collection does not exist.
	QueryVectors(ctx context.Context, collection string, vector []float32, opts QueryOptions) ([]*ChunkMatch, error)

	// Images retrieves image records matching the filter along with the
	// total count of matches before paging.
	// Returns ENOTFOUND if the collection does not exist.
	Images(ctx context.Context, collection string, filter ImageFilter) ([]*ImageRecord, int, error)

	// ImageCategories returns the distinct categories present in a
	// collection, sorted, including CategoryNone when uncategorized
	// images exist.
	// Returns ENOTFOUND if the collection does not exist.
	ImageCategories(ctx context.Context, collection string) ([]ImageCategory, error)
}
