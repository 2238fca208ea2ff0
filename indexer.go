package siteask

import (
	"context"
	"time"
)

// Crawl bound defaults.
const (
	DefaultMaxDepth = 2
	DefaultMaxPages = 50
)

// IndexRequest describes a site to crawl and index.
type IndexRequest struct {
	// URL is the crawl seed; its domain names the collection.
	URL string `json:"url"`

	// MaxDepth bounds link-following distance from the seed (seed is
	// depth 0). Zero means DefaultMaxDepth.
	MaxDepth int `json:"maxDepth,omitempty"`

	// MaxPages bounds the number of successfully fetched pages. Zero
	// means DefaultMaxPages.
	MaxPages int `json:"maxPages,omitempty"`

	// IncludeImages stores image metadata alongside chunks.
	IncludeImages bool `json:"includeImages,omitempty"`

	// UseSitemap seeds the frontier from the site's sitemap in addition
	// to the crawl seed.
	UseSitemap bool `json:"useSitemap,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *IndexRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "index URL required")
	}
	if r.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if r.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}
	return nil
}

// IndexResult summarizes a completed index run.
type IndexResult struct {
	CollectionName string        `json:"collectionName"`
	PageCount      int           `json:"pageCount"`
	ChunkCount     int           `json:"chunkCount"`
	ImageCount     int           `json:"imageCount"`
	Failed         int           `json:"failed"`     // fetch attempts that produced no page
	Duplicates     int           `json:"duplicates"` // pages skipped as content duplicates
	ContentSize    int64         `json:"contentSize"`
	Duration       time.Duration `json:"duration"`
}

// Indexer crawls a site and persists its content as a collection.
type Indexer interface {
	// IndexSite crawls the site, chunks and embeds the extracted text,
	// and stores the result. An existing collection for the same domain
	// is replaced.
	//
	// Returns EINVALID for an unusable seed URL. A crawl that yields
	// zero pages is an error; partial embedding failures are logged and
	// skipped.
	IndexSite(ctx context.Context, req *IndexRequest) (*IndexResult, error)
}
