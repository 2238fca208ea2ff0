package mock

import (
	"context"

	"github.com/siteask/siteask"
)

var _ siteask.Store = (*Store)(nil)

// Store is a mock implementation of siteask.Store.
type Store struct {
	CreateCollectionFn     func(ctx context.Context, collection *siteask.Collection) error
	FindCollectionByNameFn func(ctx context.Context, name string) (*siteask.Collection, error)
	ListCollectionsFn      func(ctx context.Context) ([]*siteask.Collection, error)
	StatsFn                func(ctx context.Context, name string) (*siteask.CollectionStats, error)
	DeleteCollectionFn     func(ctx context.Context, name string) error
	PutChunksFn            func(ctx context.Context, collection string, chunks []*siteask.Chunk) error
	PutImagesFn            func(ctx context.Context, collection string, images []*siteask.ImageRecord) error
	QueryVectorsFn         func(ctx context.Context, collection string, vector []float32, opts siteask.QueryOptions) ([]*siteask.ChunkMatch, error)
	ImagesFn               func(ctx context.Context, collection string, filter siteask.ImageFilter) ([]*siteask.ImageRecord, int, error)
	ImageCategoriesFn      func(ctx context.Context, collection string) ([]siteask.ImageCategory, error)
}

func (s *Store) CreateCollection(ctx context.Context, collection *siteask.Collection) error {
	return s.CreateCollectionFn(ctx, collection)
}

func (s *Store) FindCollectionByName(ctx context.Context, name string) (*siteask.Collection, error) {
	return s.FindCollectionByNameFn(ctx, name)
}

func (s *Store) ListCollections(ctx context.Context) ([]*siteask.Collection, error) {
	return s.ListCollectionsFn(ctx)
}

func (s *Store) Stats(ctx context.Context, name string) (*siteask.CollectionStats, error) {
	return s.StatsFn(ctx, name)
}

func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	return s.DeleteCollectionFn(ctx, name)
}

func (s *Store) PutChunks(ctx context.Context, collection string, chunks []*siteask.Chunk) error {
	return s.PutChunksFn(ctx, collection, chunks)
}

func (s *Store) PutImages(ctx context.Context, collection string, images []*siteask.ImageRecord) error {
	return s.PutImagesFn(ctx, collection, images)
}

func (s *Store) QueryVectors(ctx context.Context, collection string, vector []float32, opts siteask.QueryOptions) ([]*siteask.ChunkMatch, error) {
	return s.QueryVectorsFn(ctx, collection, vector, opts)
}

func (s *Store) Images(ctx context.Context, collection string, filter siteask.ImageFilter) ([]*siteask.ImageRecord, int, error) {
	return s.ImagesFn(ctx, collection, filter)
}

func (s *Store) ImageCategories(ctx context.Context, collection string) ([]siteask.ImageCategory, error) {
	return s.ImageCategoriesFn(ctx, collection)
}
