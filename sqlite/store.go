package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siteask/siteask"
)

// Compile-time interface verification.
var _ siteask.Store = (*Store)(nil)

// Store implements siteask.Store using SQLite. Embeddings are stored as
// float32 blobs and compared brute-force in Go, which is plenty for
// collections bounded by a crawl page budget.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// CreateCollection creates a collection. An existing collection with the
// same name is replaced together with its chunks and images.
func (s *Store) CreateCollection(ctx context.Context, collection *siteask.Collection) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	collection.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replacement rides on the cascade: deleting the old row clears its
	// chunks and images in the same transaction.
	if _, err := tx.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", collection.Name); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO collections (name, source_url, embedding_model, page_count, content_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, collection.Name, collection.SourceURL, collection.EmbeddingModel, collection.PageCount,
		collection.ContentSize, collection.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// FindCollectionByName retrieves a collection by name.
func (s *Store) FindCollectionByName(ctx context.Context, name string) (*siteask.Collection, error) {
	var collection siteask.Collection
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT name, source_url, embedding_model, page_count, content_size, created_at
		FROM collections
		WHERE name = ?
	`, name).Scan(&collection.Name, &collection.SourceURL, &collection.EmbeddingModel,
		&collection.PageCount, &collection.ContentSize, &createdAt)

	if err == sql.ErrNoRows {
		return nil, siteask.Errorf(siteask.ENOTFOUND, "collection %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	collection.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

// ListCollections retrieves all collections, newest first.
func (s *Store) ListCollections(ctx context.Context) ([]*siteask.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, source_url, embedding_model, page_count, content_size, created_at
		FROM collections
		ORDER BY created_at DESC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := []*siteask.Collection{}
	for rows.Next() {
		var collection siteask.Collection
		var createdAt string

		if err := rows.Scan(&collection.Name, &collection.SourceURL, &collection.EmbeddingModel,
			&collection.PageCount, &collection.ContentSize, &createdAt); err != nil {
			return nil, err
		}

		collection.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		collections = append(collections, &collection)
	}

	return collections, rows.Err()
}

// Stats summarizes a collection's contents.
func (s *Store) Stats(ctx context.Context, name string) (*siteask.CollectionStats, error) {
	collection, err := s.FindCollectionByName(ctx, name)
	if err != nil {
		return nil, err
	}

	stats := &siteask.CollectionStats{
		PageCount:   collection.PageCount,
		ContentSize: collection.ContentSize,
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE collection_name = ?", name).Scan(&stats.ChunkCount); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM images WHERE collection_name = ?", name).Scan(&stats.ImageCount); err != nil {
		return nil, err
	}

	return stats, nil
}

// DeleteCollection permanently removes a collection and, via cascade, all
// of its chunks and images.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return siteask.Errorf(siteask.ENOTFOUND, "collection %q not found", name)
	}

	return nil
}

// PutChunks stores chunks in a batch. Missing IDs are generated. All
// chunks must carry an embedding of the same length.
func (s *Store) PutChunks(ctx context.Context, collection string, chunks []*siteask.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	dim := len(chunks[0].Embedding)
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
		if len(chunk.Embedding) == 0 {
			return siteask.Errorf(siteask.EINVALID, "chunk embedding required")
		}
		if len(chunk.Embedding) != dim {
			return siteask.Errorf(siteask.EINVALID, "chunk embeddings must share one dimension")
		}
	}

	if err := s.exists(ctx, collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, collection_name, source_page_url, position, text, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, collection, chunk.SourcePageURL,
			chunk.Position, chunk.Text, encodeVector(chunk.Embedding)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// PutImages stores image records in a batch. Missing IDs and timestamps
// are generated.
func (s *Store) PutImages(ctx context.Context, collection string, images []*siteask.ImageRecord) error {
	if len(images) == 0 {
		return nil
	}

	for _, img := range images {
		if err := img.Validate(); err != nil {
			return err
		}
	}

	if err := s.exists(ctx, collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO images (id, collection_name, url, alt, width, height, file_size, source_page_url, category, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, img := range images {
		if img.ID == "" {
			img.ID = uuid.New().String()
		}
		if img.IndexedAt.IsZero() {
			img.IndexedAt = now
		}
		if _, err := stmt.ExecContext(ctx, img.ID, collection, img.URL, img.Alt,
			img.Width, img.Height, img.FileSize, img.SourcePageURL,
			string(img.Category), img.IndexedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// QueryVectors returns the chunks most similar to the query vector. The
// collection's chunks are scanned and scored by cosine similarity, ordered
// by score descending with ties broken by source URL and position.
func (s *Store) QueryVectors(ctx context.Context, collection string, vector []float32, opts siteask.QueryOptions) ([]*siteask.ChunkMatch, error) {
	if len(vector) == 0 {
		return nil, siteask.Errorf(siteask.EINVALID, "query vector required")
	}
	if err := s.exists(ctx, collection); err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_page_url, position, text, embedding FROM chunks WHERE collection_name = ?")
	args = append(args, collection)

	if opts.SourceURL != nil {
		query.WriteString(" AND source_page_url = ?")
		args = append(args, *opts.SourceURL)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*siteask.ChunkMatch{}
	for rows.Next() {
		var chunk siteask.Chunk
		var blob []byte

		if err := rows.Scan(&chunk.ID, &chunk.SourcePageURL, &chunk.Position, &chunk.Text, &blob); err != nil {
			return nil, err
		}

		chunk.Embedding = decodeVector(blob)
		if len(chunk.Embedding) != len(vector) {
			return nil, siteask.Errorf(siteask.EMISMATCH,
				"stored embeddings have dimension %d, query has %d", len(chunk.Embedding), len(vector))
		}

		score := cosineSimilarity(vector, chunk.Embedding)
		if opts.MinScore != nil && score < *opts.MinScore {
			continue
		}

		matches = append(matches, &siteask.ChunkMatch{Chunk: &chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Chunk.SourcePageURL != matches[j].Chunk.SourcePageURL {
			return matches[i].Chunk.SourcePageURL < matches[j].Chunk.SourcePageURL
		}
		return matches[i].Chunk.Position < matches[j].Chunk.Position
	})

	topK := opts.TopK
	if topK <= 0 {
		topK = siteask.DefaultTopK
	}
	if len(matches) > topK {
		matches = matches[:topK]
	}

	return matches, nil
}

// Images retrieves image records matching the filter along with the total
// match count before paging.
func (s *Store) Images(ctx context.Context, collection string, filter siteask.ImageFilter) ([]*siteask.ImageRecord, int, error) {
	if err := s.exists(ctx, collection); err != nil {
		return nil, 0, err
	}

	var where strings.Builder
	var args []any

	where.WriteString(" FROM images WHERE collection_name = ?")
	args = append(args, collection)

	if filter.Search != "" {
		where.WriteString(" AND (alt LIKE ? OR url LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Category != nil {
		where.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*)"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var query strings.Builder
	query.WriteString("SELECT id, url, alt, width, height, file_size, source_page_url, category, indexed_at")
	query.WriteString(where.String())

	switch filter.SortBy {
	case siteask.SortOldest:
		query.WriteString(" ORDER BY indexed_at ASC, id ASC")
	case siteask.SortSizeDesc:
		query.WriteString(" ORDER BY file_size DESC NULLS LAST, id ASC")
	case siteask.SortSizeAsc:
		query.WriteString(" ORDER BY file_size ASC NULLS LAST, id ASC")
	case siteask.SortAlpha:
		query.WriteString(" ORDER BY alt ASC, url ASC")
	default:
		query.WriteString(" ORDER BY indexed_at DESC, id ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	images := []*siteask.ImageRecord{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, 0, err
		}
		images = append(images, img)
	}

	return images, total, rows.Err()
}

// ImageCategories returns the distinct categories present in a collection,
// sorted with the uncategorized bucket first when present.
func (s *Store) ImageCategories(ctx context.Context, collection string) ([]siteask.ImageCategory, error) {
	if err := s.exists(ctx, collection); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM images
		WHERE collection_name = ?
		ORDER BY category ASC
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []siteask.ImageCategory{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, siteask.ImageCategory(category))
	}

	return categories, rows.Err()
}

// exists returns ENOTFOUND if no collection row carries the name.
func (s *Store) exists(ctx context.Context, name string) error {
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collections WHERE name = ?", name).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return siteask.Errorf(siteask.ENOTFOUND, "collection %q not found", name)
	}
	return nil
}

// scanImage scans a single image row. Nullable dimension and size columns
// become nil pointers, never zero values.
func scanImage(rows *sql.Rows) (*siteask.ImageRecord, error) {
	var img siteask.ImageRecord
	var width, height, fileSize sql.NullInt64
	var category, indexedAt string

	if err := rows.Scan(&img.ID, &img.URL, &img.Alt, &width, &height, &fileSize,
		&img.SourcePageURL, &category, &indexedAt); err != nil {
		return nil, err
	}

	if width.Valid {
		w := int(width.Int64)
		img.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		img.Height = &h
	}
	if fileSize.Valid {
		size := fileSize.Int64
		img.FileSize = &size
	}
	img.Category = siteask.ImageCategory(category)

	var err error
	img.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
	if err != nil {
		return nil, err
	}

	return &img, nil
}
