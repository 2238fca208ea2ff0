// Package rag composes crawling, chunking, embedding, and retrieval into
// the indexing and question answering pipelines.
package rag

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteask/siteask"
	"github.com/siteask/siteask/crawl"
	"golang.org/x/sync/errgroup"
)

// DefaultEmbedConcurrency bounds concurrent embedding calls across pages.
// The Generator's own rate limiter governs the request rate; this only
// caps in-flight work.
const DefaultEmbedConcurrency = 4

// Ensure Indexer implements siteask.Indexer at compile time.
var _ siteask.Indexer = (*Indexer)(nil)

// Indexer crawls a website, chunks and embeds its text, and persists the
// result as a collection.
type Indexer struct {
	Crawler   *crawl.Crawler
	Generator siteask.Generator
	Store     siteask.Store

	// Concurrency is the embedding worker pool size. Zero means
	// DefaultEmbedConcurrency.
	Concurrency int

	// ChunkSize and ChunkOverlap configure text splitting. Zero values
	// select the siteask defaults.
	ChunkSize    int
	ChunkOverlap int

	// Progress, if set, receives crawl progress events.
	Progress crawl.ProgressFunc

	Logger *slog.Logger
}

// pageResult holds the outcome of chunking and embedding a single page.
type pageResult struct {
	position int
	page     *siteask.PageRecord
	chunks   []*siteask.Chunk
	err      error
}

// IndexSite crawls the site, embeds the extracted text, and stores the
// result. An existing collection for the same domain is replaced.
//
// A page whose chunks fail to embed is logged and skipped; a store write
// failure aborts the run. Pages with no body text count toward the page
// total but contribute no chunks.
func (s *Indexer) IndexSite(ctx context.Context, req *siteask.IndexRequest) (*siteask.IndexResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	name, err := siteask.CollectionNameForURL(req.URL)
	if err != nil {
		return nil, err
	}

	crawled, err := s.Crawler.Crawl(ctx, req.URL, crawl.Options{
		MaxDepth:   req.MaxDepth,
		MaxPages:   req.MaxPages,
		UseSitemap: req.UseSitemap,
	}, s.Progress)
	if err != nil {
		return nil, err
	}
	if len(crawled.Pages) == 0 {
		return nil, siteask.Errorf(siteask.ENOTFOUND, "no indexable content found at %q", req.URL)
	}

	embedded := s.embedPages(ctx, crawled.Pages)

	// The collection row is written after embedding so a failed run never
	// replaces an existing collection. CreateCollection deletes the old
	// contents in the same transaction.
	collection := &siteask.Collection{
		Name:           name,
		SourceURL:      req.URL,
		EmbeddingModel: s.Generator.EmbeddingModelID(),
		PageCount:      len(crawled.Pages),
		ContentSize:    int64(crawled.Bytes),
	}
	if err := s.Store.CreateCollection(ctx, collection); err != nil {
		return nil, err
	}

	result := &siteask.IndexResult{
		CollectionName: name,
		PageCount:      len(crawled.Pages),
		Failed:         crawled.Failed,
		Duplicates:     crawled.Duplicates,
		ContentSize:    int64(crawled.Bytes),
	}

	for _, pr := range embedded {
		if pr.err != nil {
			s.logger().Warn("embedding failed, page skipped",
				"url", pr.page.URL,
				"err", pr.err,
			)
			continue
		}
		if len(pr.chunks) == 0 {
			continue
		}
		if err := s.Store.PutChunks(ctx, name, pr.chunks); err != nil {
			return nil, err
		}
		result.ChunkCount += len(pr.chunks)
	}

	// Images do not depend on embeddings, so every crawled page
	// contributes its images even when its text could not be embedded.
	if req.IncludeImages {
		for _, page := range crawled.Pages {
			if len(page.Images) == 0 {
				continue
			}
			images := make([]*siteask.ImageRecord, len(page.Images))
			for i := range page.Images {
				images[i] = &page.Images[i]
			}
			if err := s.Store.PutImages(ctx, name, images); err != nil {
				return nil, err
			}
			result.ImageCount += len(images)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// embedPages chunks and embeds pages concurrently and returns the results
// in page order.
func (s *Indexer) embedPages(ctx context.Context, pages []*siteask.PageRecord) []pageResult {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultEmbedConcurrency
	}

	size := s.ChunkSize
	if size <= 0 {
		size = siteask.DefaultChunkSize
	}
	overlap := s.ChunkOverlap
	if overlap <= 0 {
		overlap = siteask.DefaultChunkOverlap
	}

	resultCh := make(chan pageResult, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, page := range pages {
			i, page := i, page
			g.Go(func() error {
				resultCh <- s.embedPage(gctx, i, page, size, overlap)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(pages))
	for pr := range resultCh {
		results[pr.position] = pr
	}
	return results
}

// embedPage splits one page's text and embeds the chunks in a single
// batch call.
func (s *Indexer) embedPage(ctx context.Context, position int, page *siteask.PageRecord, size, overlap int) pageResult {
	result := pageResult{position: position, page: page}

	texts := siteask.SplitText(page.BodyText, size, overlap)
	if len(texts) == 0 {
		return result
	}

	vectors, err := s.Generator.EmbedBatch(ctx, texts)
	if err != nil {
		result.err = err
		return result
	}

	chunks := make([]*siteask.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &siteask.Chunk{
			SourcePageURL: page.URL,
			Text:          text,
			Position:      i,
			Embedding:     vectors[i],
		}
	}
	result.chunks = chunks
	return result
}

func (s *Indexer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
