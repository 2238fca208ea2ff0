package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/siteask/siteask"
)

// ShutdownTimeout is how long Close waits for in-flight requests to
// drain before forcing the server down.
const ShutdownTimeout = 5 * time.Second

// maxImageLimit caps the page size of image listings.
const maxImageLimit = 100

// noContextMessage is returned with status 200 when a question has no
// retrievable context. The chat UI renders it as a normal answer.
const noContextMessage = "I couldn't find any relevant information to answer your question. Please try asking something related to the website content."

// Server serves the JSON API over the wired services. All exported
// fields must be set before Open.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address, e.g. ":8000".
	Addr string

	IndexerService siteask.Indexer
	AskerService   siteask.Asker
	StoreService   siteask.Store

	// DBStats reports connection pool statistics on /metrics when set.
	DBStats func() sql.DBStats

	Logger *slog.Logger
}

// NewServer returns a server with all routes mounted. Services are
// attached by the caller before Open.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/metrics", s.handleMetrics)

	s.router.Post("/index", s.handleIndex)
	s.router.Post("/query", s.handleQuery)

	s.router.Get("/collections", s.handleListCollections)
	s.router.Get("/collections/{name}", s.handleCollectionInfo)
	s.router.Get("/collection/{name}", s.handleCollectionInfo)
	s.router.Get("/collection-stats/{name}", s.handleCollectionStats)
	s.router.Delete("/collections/{name}", s.handleDeleteCollection)
	s.router.Delete("/collection/{name}", s.handleDeleteCollection)

	s.router.Get("/images/{name}", s.handleImages)
	s.router.Get("/api/images/{name}", s.handleImagesPaged)
	s.router.Get("/image-categories/{name}", s.handleImageCategories)

	s.server.Handler = s.router
	return s
}

// Open begins listening on the bind address. The server runs in a
// separate goroutine until Close.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger().Error("api server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the listening server. Only valid after
// Open has returned.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP dispatches to the router so the server can be used as a
// plain http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.logger().Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(begin),
		)
	})
}

// statusFromCode maps application error codes to HTTP status codes.
var statusFromCode = map[string]int{
	siteask.EINVALID:     http.StatusBadRequest,
	siteask.ENOTFOUND:    http.StatusNotFound,
	siteask.EMISMATCH:    http.StatusConflict,
	siteask.EUNSUPPORTED: http.StatusUnsupportedMediaType,
	siteask.ENOCONTEXT:   http.StatusUnprocessableEntity,
	siteask.EUNAVAILABLE: http.StatusServiceUnavailable,
	siteask.ETIMEOUT:     http.StatusGatewayTimeout,
	siteask.EINTERNAL:    http.StatusInternalServerError,
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error writes an application error as a JSON response. Internal errors
// are logged in full and reported with a generic message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := siteask.ErrorCode(err)
	status, ok := statusFromCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		s.logger().Error("internal error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: siteask.ErrorMessage(err), Code: code})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Error("encoding response", "err", err)
	}
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, siteask.Errorf(siteask.EINVALID, "%s must be an integer", key)
	}
	return n, nil
}

type indexRequest struct {
	URL           string `json:"url"`
	MaxDepth      int    `json:"max_depth"`
	MaxPages      int    `json:"max_pages"`
	IncludeImages bool   `json:"include_images"`
	UseSitemap    bool   `json:"use_sitemap"`
}

type indexResponse struct {
	Status         string `json:"status"`
	CollectionName string `json:"collection_name"`
	PagesIndexed   int    `json:"pages_indexed"`
	ChunksIndexed  int    `json:"chunks_indexed"`
	ImagesIndexed  int    `json:"images_indexed"`
	Message        string `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, r, siteask.Errorf(siteask.EINVALID, "invalid request body: %v", err))
		return
	}

	result, err := s.IndexerService.IndexSite(r.Context(), &siteask.IndexRequest{
		URL:           req.URL,
		MaxDepth:      req.MaxDepth,
		MaxPages:      req.MaxPages,
		IncludeImages: req.IncludeImages,
		UseSitemap:    req.UseSitemap,
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, indexResponse{
		Status:         "success",
		CollectionName: result.CollectionName,
		PagesIndexed:   result.PageCount,
		ChunksIndexed:  result.ChunkCount,
		ImagesIndexed:  result.ImageCount,
		Message:        fmt.Sprintf("Successfully indexed %d pages from %s", result.PageCount, req.URL),
	})
}

type queryRequest struct {
	Query          string `json:"query"`
	CollectionName string `json:"collection_name"`
}

type queryResponse struct {
	Query          string   `json:"query"`
	Response       string   `json:"response"`
	Sources        []string `json:"sources"`
	CollectionName string   `json:"collection_name"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, r, siteask.Errorf(siteask.EINVALID, "invalid request body: %v", err))
		return
	}

	answer, err := s.AskerService.Ask(r.Context(), req.CollectionName, req.Query)
	switch {
	case siteask.ErrorCode(err) == siteask.ENOCONTEXT:
		// A question with no retrievable context is a normal outcome for
		// the chat UI, answered in prose rather than with an error status.
		answer = &siteask.Answer{Text: noContextMessage, Sources: []string{}}
	case err != nil:
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, queryResponse{
		Query:          req.Query,
		Response:       answer.Text,
		Sources:        answer.Sources,
		CollectionName: req.CollectionName,
	})
}

type collectionsResponse struct {
	Collections []string `json:"collections"`
	Count       int      `json:"count"`
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.StoreService.ListCollections(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}

	names := make([]string, len(collections))
	for i, col := range collections {
		names[i] = col.Name
	}

	s.writeJSON(w, http.StatusOK, collectionsResponse{Collections: names, Count: len(names)})
}

type collectionInfoResponse struct {
	Name           string    `json:"name"`
	URL            string    `json:"url"`
	EmbeddingModel string    `json:"embedding_model"`
	PageCount      int       `json:"page_count"`
	ChunkCount     int       `json:"chunk_count"`
	ImageCount     int       `json:"image_count"`
	ContentSize    int64     `json:"content_size"`
	IndexedAt      time.Time `json:"indexed_at"`
}

func (s *Server) handleCollectionInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	col, err := s.StoreService.FindCollectionByName(r.Context(), name)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	stats, err := s.StoreService.Stats(r.Context(), name)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, collectionInfoResponse{
		Name:           col.Name,
		URL:            col.SourceURL,
		EmbeddingModel: col.EmbeddingModel,
		PageCount:      col.PageCount,
		ChunkCount:     stats.ChunkCount,
		ImageCount:     stats.ImageCount,
		ContentSize:    col.ContentSize,
		IndexedAt:      col.CreatedAt,
	})
}

type collectionStatsResponse struct {
	CollectionName string `json:"collection_name"`
	PagesCount     int    `json:"pages_count"`
	ChunksCount    int    `json:"chunks_count"`
	ImagesCount    int    `json:"images_count"`
	ContentSize    int64  `json:"content_size"`
}

func (s *Server) handleCollectionStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	stats, err := s.StoreService.Stats(r.Context(), name)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, collectionStatsResponse{
		CollectionName: name,
		PagesCount:     stats.PageCount,
		ChunksCount:    stats.ChunkCount,
		ImagesCount:    stats.ImageCount,
		ContentSize:    stats.ContentSize,
	})
}

type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.StoreService.DeleteCollection(r.Context(), name); err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, deleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("Collection %q deleted successfully", name),
	})
}

type imageInfo struct {
	URL        string    `json:"url"`
	Alt        string    `json:"alt"`
	PageURL    string    `json:"page_url"`
	Category   string    `json:"category,omitempty"`
	Dimensions string    `json:"dimensions,omitempty"`
	FileSize   *int64    `json:"file_size,omitempty"`
	IndexedAt  time.Time `json:"indexed_at"`
}

func imageInfos(images []*siteask.ImageRecord) []imageInfo {
	infos := make([]imageInfo, len(images))
	for i, img := range images {
		infos[i] = imageInfo{
			URL:        img.URL,
			Alt:        img.Alt,
			PageURL:    img.SourcePageURL,
			Category:   string(img.Category),
			Dimensions: img.Dimensions(),
			FileSize:   img.FileSize,
			IndexedAt:  img.IndexedAt,
		}
	}
	return infos
}

type imagesResponse struct {
	CollectionName string      `json:"collection_name"`
	Images         []imageInfo `json:"images"`
	Count          int         `json:"count"`
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if limit < 1 || limit > maxImageLimit {
		s.Error(w, r, siteask.Errorf(siteask.EINVALID, "limit must be between 1 and %d", maxImageLimit))
		return
	}

	images, _, err := s.StoreService.Images(r.Context(), name, siteask.ImageFilter{Limit: limit})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, imagesResponse{
		CollectionName: name,
		Images:         imageInfos(images),
		Count:          len(images),
	})
}

type pagedImagesResponse struct {
	CollectionName string      `json:"collection_name"`
	Images         []imageInfo `json:"images"`
	Total          int         `json:"total"`
	Page           int         `json:"page"`
	Limit          int         `json:"limit"`
	HasMore        bool        `json:"has_more"`
}

func (s *Server) handleImagesPaged(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	page, err := queryInt(r, "page", 1)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if page < 1 {
		s.Error(w, r, siteask.Errorf(siteask.EINVALID, "page must be positive"))
		return
	}

	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if limit < 1 || limit > maxImageLimit {
		s.Error(w, r, siteask.Errorf(siteask.EINVALID, "limit must be between 1 and %d", maxImageLimit))
		return
	}

	filter := siteask.ImageFilter{
		Search:   r.URL.Query().Get("search"),
		Category: categoryFromWire(r.URL.Query().Get("category")),
		Offset:   (page - 1) * limit,
		Limit:    limit,
		SortBy:   siteask.ImageSort(r.URL.Query().Get("sort")),
	}

	images, total, err := s.StoreService.Images(r.Context(), name, filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, pagedImagesResponse{
		CollectionName: name,
		Images:         imageInfos(images),
		Total:          total,
		Page:           page,
		Limit:          limit,
		HasMore:        page*limit < total,
	})
}

type imageCategoriesResponse struct {
	CollectionName string   `json:"collection_name"`
	Categories     []string `json:"categories"`
}

func (s *Server) handleImageCategories(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	categories, err := s.StoreService.ImageCategories(r.Context(), name)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = wireCategory(c)
	}

	s.writeJSON(w, http.StatusOK, imageCategoriesResponse{CollectionName: name, Categories: names})
}

// wireCategory maps a category to its wire name. CategoryNone needs a
// non-empty name so clients can name the uncategorized bucket.
func wireCategory(c siteask.ImageCategory) string {
	if c == siteask.CategoryNone {
		return "uncategorized"
	}
	return string(c)
}

// categoryFromWire is the inverse of wireCategory. "all" and the empty
// string disable the filter.
func categoryFromWire(v string) *siteask.ImageCategory {
	switch v {
	case "", "all":
		return nil
	case "uncategorized":
		c := siteask.CategoryNone
		return &c
	}
	c := siteask.ImageCategory(v)
	return &c
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: "siteask"})
}

type dbStatsInfo struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

type metricsResponse struct {
	TotalCollections int                       `json:"total_collections"`
	Collections      []collectionStatsResponse `json:"collections"`
	DB               *dbStatsInfo              `json:"db,omitempty"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	collections, err := s.StoreService.ListCollections(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resp := metricsResponse{
		TotalCollections: len(collections),
		Collections:      make([]collectionStatsResponse, 0, len(collections)),
	}
	for _, col := range collections {
		stats, err := s.StoreService.Stats(r.Context(), col.Name)
		if err != nil {
			// A collection deleted between listing and stats is skipped
			// rather than failing the whole report.
			continue
		}
		resp.Collections = append(resp.Collections, collectionStatsResponse{
			CollectionName: col.Name,
			PagesCount:     stats.PageCount,
			ChunksCount:    stats.ChunkCount,
			ImagesCount:    stats.ImageCount,
			ContentSize:    stats.ContentSize,
		})
	}

	if s.DBStats != nil {
		st := s.DBStats()
		resp.DB = &dbStatsInfo{
			OpenConnections: st.OpenConnections,
			InUse:           st.InUse,
			Idle:            st.Idle,
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}
