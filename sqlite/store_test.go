package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/siteask/siteask"
	"github.com/siteask/siteask/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCollection(t *testing.T, store *sqlite.Store, name string) *siteask.Collection {
	t.Helper()
	collection := &siteask.Collection{
		Name:           name,
		SourceURL:      "https://" + name + ".example.com",
		EmbeddingModel: "text-embedding-004",
		PageCount:      3,
		ContentSize:    1200,
	}
	require.NoError(t, store.CreateCollection(context.Background(), collection))
	return collection
}

func testChunk(url string, position int, embedding []float32) *siteask.Chunk {
	return &siteask.Chunk{
		SourcePageURL: url,
		Text:          fmt.Sprintf("chunk %d of %s", position, url),
		Position:      position,
		Embedding:     embedding,
	}
}

func TestStore_CreateCollection(t *testing.T) {
	t.Parallel()

	t.Run("creates collection with timestamp", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		collection := createTestCollection(t, store, "acme_example_com")

		assert.False(t, collection.CreatedAt.IsZero(), "CreatedAt should be set")

		found, err := store.FindCollectionByName(context.Background(), "acme_example_com")
		require.NoError(t, err)
		assert.Equal(t, collection.SourceURL, found.SourceURL)
		assert.Equal(t, collection.EmbeddingModel, found.EmbeddingModel)
		assert.Equal(t, 3, found.PageCount)
		assert.Equal(t, int64(1200), found.ContentSize)
	})

	t.Run("returns error for invalid collection", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		err := store.CreateCollection(context.Background(), &siteask.Collection{})
		require.Error(t, err)
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})

	t.Run("replaces existing collection and its contents", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		chunks := []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
			testChunk("https://acme.example.com/a", 1, []float32{0, 1}),
		}
		require.NoError(t, store.PutChunks(ctx, "acme_example_com", chunks))
		require.NoError(t, store.PutImages(ctx, "acme_example_com", []*siteask.ImageRecord{
			{URL: "https://acme.example.com/logo.png", SourcePageURL: "https://acme.example.com/a"},
		}))

		replacement := &siteask.Collection{
			Name:           "acme_example_com",
			SourceURL:      "https://acme.example.com/v2",
			EmbeddingModel: "text-embedding-004",
			PageCount:      1,
		}
		require.NoError(t, store.CreateCollection(ctx, replacement))

		found, err := store.FindCollectionByName(ctx, "acme_example_com")
		require.NoError(t, err)
		assert.Equal(t, "https://acme.example.com/v2", found.SourceURL)

		stats, err := store.Stats(ctx, "acme_example_com")
		require.NoError(t, err)
		assert.Zero(t, stats.ChunkCount, "old chunks should be gone")
		assert.Zero(t, stats.ImageCount, "old images should be gone")
	})
}

func TestStore_FindCollectionByName(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		_, err := store.FindCollectionByName(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}

func TestStore_ListCollections(t *testing.T) {
	t.Parallel()

	t.Run("returns empty slice for empty database", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		collections, err := store.ListCollections(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, collections)
		assert.Empty(t, collections)
	})

	t.Run("lists all collections", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "site_a")
		createTestCollection(t, store, "site_b")

		collections, err := store.ListCollections(context.Background())
		require.NoError(t, err)
		require.Len(t, collections, 2)
	})
}

func TestStore_Stats(t *testing.T) {
	t.Parallel()

	t.Run("counts chunks and images", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutChunks(ctx, "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
			testChunk("https://acme.example.com/a", 1, []float32{0, 1}),
			testChunk("https://acme.example.com/b", 0, []float32{1, 1}),
		}))
		require.NoError(t, store.PutImages(ctx, "acme_example_com", []*siteask.ImageRecord{
			{URL: "https://acme.example.com/logo.png", SourcePageURL: "https://acme.example.com/a"},
		}))

		stats, err := store.Stats(ctx, "acme_example_com")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.PageCount)
		assert.Equal(t, 3, stats.ChunkCount)
		assert.Equal(t, 1, stats.ImageCount)
		assert.Equal(t, int64(1200), stats.ContentSize)
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		_, err := store.Stats(context.Background(), "nope")
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}

func TestStore_DeleteCollection(t *testing.T) {
	t.Parallel()

	t.Run("removes collection and cascades to contents", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewStore(db)
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutChunks(ctx, "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
		}))
		require.NoError(t, store.PutImages(ctx, "acme_example_com", []*siteask.ImageRecord{
			{URL: "https://acme.example.com/logo.png", SourcePageURL: "https://acme.example.com/a"},
		}))

		require.NoError(t, store.DeleteCollection(ctx, "acme_example_com"))

		_, err := store.FindCollectionByName(ctx, "acme_example_com")
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))

		var chunkCount, imageCount int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&chunkCount))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images").Scan(&imageCount))
		assert.Zero(t, chunkCount)
		assert.Zero(t, imageCount)
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		err := store.DeleteCollection(context.Background(), "nope")
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}

func TestStore_PutChunks(t *testing.T) {
	t.Parallel()

	t.Run("generates IDs and stores batch", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		chunks := []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
			testChunk("https://acme.example.com/a", 1, []float32{0, 1}),
		}
		require.NoError(t, store.PutChunks(ctx, "acme_example_com", chunks))

		assert.NotEmpty(t, chunks[0].ID, "ID should be generated")
		assert.NotEmpty(t, chunks[1].ID)
		assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		require.NoError(t, store.PutChunks(context.Background(), "anything", nil))
	})

	t.Run("rejects chunk without embedding", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")

		err := store.PutChunks(context.Background(), "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, nil),
		})
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})

	t.Run("rejects mixed embedding dimensions", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")

		err := store.PutChunks(context.Background(), "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
			testChunk("https://acme.example.com/a", 1, []float32{1, 0, 0}),
		})
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing collection", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		err := store.PutChunks(context.Background(), "nope", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
		})
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}

func TestStore_PutImages(t *testing.T) {
	t.Parallel()

	t.Run("stores and reads back typed optionals", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		width, height := 100, 50
		size := int64(2048)
		images := []*siteask.ImageRecord{
			{
				URL:           "https://acme.example.com/logo.png",
				Alt:           "Company logo",
				Width:         &width,
				Height:        &height,
				FileSize:      &size,
				SourcePageURL: "https://acme.example.com/",
				Category:      siteask.CategoryLogo,
			},
			{
				URL:           "https://acme.example.com/mystery.png",
				SourcePageURL: "https://acme.example.com/",
			},
		}
		require.NoError(t, store.PutImages(ctx, "acme_example_com", images))
		assert.NotEmpty(t, images[0].ID, "ID should be generated")
		assert.False(t, images[0].IndexedAt.IsZero(), "IndexedAt should be set")

		found, total, err := store.Images(ctx, "acme_example_com", siteask.ImageFilter{SortBy: siteask.SortAlpha})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, found, 2)

		logo := found[0]
		require.NotNil(t, logo.Width)
		require.NotNil(t, logo.Height)
		require.NotNil(t, logo.FileSize)
		assert.Equal(t, 100, *logo.Width)
		assert.Equal(t, 50, *logo.Height)
		assert.Equal(t, int64(2048), *logo.FileSize)
		assert.Equal(t, siteask.CategoryLogo, logo.Category)

		mystery := found[1]
		assert.Nil(t, mystery.Width, "unknown dimensions stay nil")
		assert.Nil(t, mystery.Height)
		assert.Nil(t, mystery.FileSize)
		assert.Equal(t, siteask.CategoryNone, mystery.Category)
	})

	t.Run("returns error for invalid image", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")

		err := store.PutImages(context.Background(), "acme_example_com", []*siteask.ImageRecord{{}})
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})
}

func TestStore_QueryVectors(t *testing.T) {
	t.Parallel()

	t.Run("orders by cosine similarity", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutChunks(ctx, "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/orthogonal", 0, []float32{0, 1, 0}),
			testChunk("https://acme.example.com/exact", 0, []float32{1, 0, 0}),
			testChunk("https://acme.example.com/near", 0, []float32{0.9, 0.1, 0}),
		}))

		matches, err := store.QueryVectors(ctx, "acme_example_com", []float32{1, 0, 0}, siteask.QueryOptions{})
		require.NoError(t, err)
		require.Len(t, matches, 3)

		assert.Equal(t, "https://acme.example.com/exact", matches[0].Chunk.SourcePageURL)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
		assert.Equal(t, "https://acme.example.com/near", matches[1].Chunk.SourcePageURL)
		assert.Equal(t, "https://acme.example.com/orthogonal", matches[2].Chunk.SourcePageURL)
		assert.InDelta(t, 0.0, matches[2].Score, 1e-6)
	})

	t.Run("breaks score ties by URL then position", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutChunks(ctx, "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/b", 1, []float32{1, 0}),
			testChunk("https://acme.example.com/a", 1, []float32{1, 0}),
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
		}))

		matches, err := store.QueryVectors(ctx, "acme_example_com", []float32{1, 0}, siteask.QueryOptions{})
		require.NoError(t, err)
		require.Len(t, matches, 3)

		assert.Equal(t, "https://acme.example.com/a", matches[0].Chunk.SourcePageURL)
		assert.Equal(t, 0, matches[0].Chunk.Position)
		assert.Equal(t, "https://acme.example.com/a", matches[1].Chunk.SourcePageURL)
		assert.Equal(t, 1, matches[1].Chunk.Position)
		assert.Equal(t, "https://acme.example.com/b", matches[2].Chunk.SourcePageURL)
	})

	t.Run("caps results at TopK with default", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		var chunks []*siteask.Chunk
		for i := 0; i < 7; i++ {
			chunks = append(chunks, testChunk("https://acme.example.com/page", i, []float32{1, float32(i)}))
		}
		require.NoError(t, store.PutChunks(ctx, "acme_example_com", chunks))

		matches, err := store.QueryVectors(ctx, "acme_example_com", []float32{1, 0}, siteask.QueryOptions{})
		require.NoError(t, err)
		assert.Len(t, matches, siteask.DefaultTopK)

		matches, err = store.QueryVectors(ctx, "acme_example_com", []float32{1, 0}, siteask.QueryOptions{TopK: 2})
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("applies MinScore and SourceURL filters", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutChunks(ctx, "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0}),
			testChunk("https://acme.example.com/b", 0, []float32{0, 1}),
		}))

		minScore := float32(0.5)
		matches, err := store.QueryVectors(ctx, "acme_example_com", []float32{1, 0}, siteask.QueryOptions{MinScore: &minScore})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "https://acme.example.com/a", matches[0].Chunk.SourcePageURL)

		sourceURL := "https://acme.example.com/b"
		matches, err = store.QueryVectors(ctx, "acme_example_com", []float32{1, 0}, siteask.QueryOptions{SourceURL: &sourceURL})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, sourceURL, matches[0].Chunk.SourcePageURL)
	})

	t.Run("empty collection returns empty slice", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")

		matches, err := store.QueryVectors(context.Background(), "acme_example_com", []float32{1, 0}, siteask.QueryOptions{})
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("returns EMISMATCH for wrong dimension", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutChunks(ctx, "acme_example_com", []*siteask.Chunk{
			testChunk("https://acme.example.com/a", 0, []float32{1, 0, 0}),
		}))

		_, err := store.QueryVectors(ctx, "acme_example_com", []float32{1, 0}, siteask.QueryOptions{})
		assert.Equal(t, siteask.EMISMATCH, siteask.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing collection", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		_, err := store.QueryVectors(context.Background(), "nope", []float32{1, 0}, siteask.QueryOptions{})
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}

func TestStore_Images(t *testing.T) {
	t.Parallel()

	seedImages := func(t *testing.T, store *sqlite.Store) {
		t.Helper()
		logoSize, bannerSize := int64(2048), int64(8192)
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, store.PutImages(context.Background(), "acme_example_com", []*siteask.ImageRecord{
			{
				URL:           "https://acme.example.com/logo.png",
				Alt:           "Company logo",
				FileSize:      &logoSize,
				SourcePageURL: "https://acme.example.com/",
				Category:      siteask.CategoryLogo,
				IndexedAt:     base,
			},
			{
				URL:           "https://acme.example.com/hero.jpg",
				Alt:           "Hero banner",
				FileSize:      &bannerSize,
				SourcePageURL: "https://acme.example.com/",
				Category:      siteask.CategoryBanner,
				IndexedAt:     base.Add(time.Hour),
			},
			{
				URL:           "https://acme.example.com/mystery.png",
				Alt:           "mystery",
				SourcePageURL: "https://acme.example.com/about",
				IndexedAt:     base.Add(2 * time.Hour),
			},
		}))
	}

	t.Run("newest first by default", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")
		seedImages(t, store)

		images, total, err := store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, images, 3)
		assert.Equal(t, "mystery", images[0].Alt)
		assert.Equal(t, "Hero banner", images[1].Alt)
		assert.Equal(t, "Company logo", images[2].Alt)
	})

	t.Run("sorts by size with unknown sizes last", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")
		seedImages(t, store)

		images, _, err := store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{SortBy: siteask.SortSizeDesc})
		require.NoError(t, err)
		require.Len(t, images, 3)
		assert.Equal(t, "Hero banner", images[0].Alt)
		assert.Equal(t, "Company logo", images[1].Alt)
		assert.Equal(t, "mystery", images[2].Alt, "unknown size sorts last")
	})

	t.Run("searches alt text and URL", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")
		seedImages(t, store)

		images, total, err := store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{Search: "logo"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, images, 1)
		assert.Equal(t, "Company logo", images[0].Alt)

		_, total, err = store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{Search: "hero.jpg"})
		require.NoError(t, err)
		assert.Equal(t, 1, total, "URL substrings match too")
	})

	t.Run("filters by category including the none bucket", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")
		seedImages(t, store)

		logo := siteask.CategoryLogo
		images, total, err := store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{Category: &logo})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, images, 1)
		assert.Equal(t, siteask.CategoryLogo, images[0].Category)

		none := siteask.CategoryNone
		images, total, err = store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{Category: &none})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, images, 1)
		assert.Equal(t, "mystery", images[0].Alt)
	})

	t.Run("pages results while reporting full total", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		createTestCollection(t, store, "acme_example_com")
		seedImages(t, store)

		images, total, err := store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{
			SortBy: siteask.SortOldest,
			Limit:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, images, 2)
		assert.Equal(t, "Company logo", images[0].Alt)

		images, total, err = store.Images(context.Background(), "acme_example_com", siteask.ImageFilter{
			SortBy: siteask.SortOldest,
			Limit:  2,
			Offset: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, images, 1)
		assert.Equal(t, "mystery", images[0].Alt)
	})

	t.Run("returns ENOTFOUND for missing collection", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		_, _, err := store.Images(context.Background(), "nope", siteask.ImageFilter{})
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}

func TestStore_ImageCategories(t *testing.T) {
	t.Parallel()

	t.Run("returns distinct sorted categories with none bucket first", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		ctx := context.Background()
		createTestCollection(t, store, "acme_example_com")

		require.NoError(t, store.PutImages(ctx, "acme_example_com", []*siteask.ImageRecord{
			{URL: "https://acme.example.com/1.png", SourcePageURL: "https://acme.example.com/", Category: siteask.CategoryLogo},
			{URL: "https://acme.example.com/2.png", SourcePageURL: "https://acme.example.com/", Category: siteask.CategoryLogo},
			{URL: "https://acme.example.com/3.png", SourcePageURL: "https://acme.example.com/", Category: siteask.CategoryBanner},
			{URL: "https://acme.example.com/4.png", SourcePageURL: "https://acme.example.com/"},
		}))

		categories, err := store.ImageCategories(ctx, "acme_example_com")
		require.NoError(t, err)
		assert.Equal(t, []siteask.ImageCategory{
			siteask.CategoryNone,
			siteask.CategoryBanner,
			siteask.CategoryLogo,
		}, categories)
	})

	t.Run("returns ENOTFOUND for missing collection", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(setupTestDB(t))
		_, err := store.ImageCategories(context.Background(), "nope")
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}
