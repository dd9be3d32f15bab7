// Package httpapi exposes the catalog over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/logger"
	"github.com/mark-chris/prodcat/internal/metrics"
	"github.com/mark-chris/prodcat/internal/search"
)

// maxBodyBytes bounds request bodies; product images are inlined as base64.
const maxBodyBytes = 8 << 20

// Error codes returned in error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeConflict         = "conflict"
	codeInternal         = "internal_error"
)

// Options holds request defaults.
type Options struct {
	Threshold   float64
	Limit       int
	Strategy    keywords.Strategy
	MaxKeywords int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the catalog API.
type Server struct {
	catalog       *catalog.Catalog
	extractor     *keywords.Extractor
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(cat *catalog.Catalog, extractor *keywords.Extractor, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Strategy == "" {
		opts.Strategy = keywords.StrategyDomain
	}
	s := &Server{
		catalog:   cat,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(catalog.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(catalog.ErrTagNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(catalog.ErrDuplicateCode, http.StatusConflict, codeConflict),
		sentinelHandler(catalog.ErrTagExists, http.StatusConflict, codeConflict),
		sentinelHandler(catalog.ErrCodeImmutable, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(catalog.ErrInvalidTag, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(search.ErrInvalidThreshold, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(keywords.ErrUnknownStrategy, http.StatusBadRequest, codeBadRequest),
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.health)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Post("/", s.createProduct)
		r.Get("/{code}", s.getProduct)
		r.Put("/{code}", s.updateProduct)
		r.Delete("/{code}", s.deleteProduct)
		r.Post("/{code}/favorite", s.toggleFavorite)
	})

	r.Get("/favorites", s.listFavorites)
	r.Get("/tags", s.listTags)
	r.Post("/tags", s.createTag)
	r.Get("/search", s.search)
	r.Post("/keywords", s.suggestKeywords)
	r.Get("/stats", s.stats)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortBy, err := catalog.ParseSortField(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	desc, _ := strconv.ParseBool(q.Get("desc"))

	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": catalog.FilterAndSort(products, catalog.ListOptions{
			Filter:     q.Get("filter"),
			Keyword:    q.Get("keyword"),
			SortBy:     sortBy,
			Descending: desc,
		}),
	})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if !decodeBody(w, r, &p) {
		return
	}

	added, err := s.catalog.Add(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if !decodeBody(w, r, &p) {
		return
	}

	updated, err := s.catalog.Update(r.Context(), chi.URLParam(r, "code"), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	fav, err := s.catalog.ToggleFavorite(r.Context(), code)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"code": code, "favorite": fav})
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.Favorites(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.catalog.Tags(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var tag catalog.TagDefinition
	if !decodeBody(w, r, &tag) {
		return
	}
	if err := s.catalog.AddTag(r.Context(), tag); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := search.Options{
		Query:     q.Get("q"),
		Threshold: s.opts.Threshold,
		Limit:     s.opts.Limit,
	}

	if raw := q.Get("threshold"); raw != "" {
		th, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "threshold must be a number")
			return
		}
		opts.Threshold = th
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = limit
	}

	start := time.Now()
	results, err := search.Search(r.Context(), s.catalog, opts)
	metrics.ObserveSearch("http", time.Since(start), len(results), err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":     opts.Query,
		"threshold": opts.Threshold,
		"count":     len(results),
		"results":   results,
	})
}

type keywordsRequest struct {
	Text       string `json:"text"`
	Strategy   string `json:"strategy"`
	MaxResults int    `json:"max_results"`
}

func (s *Server) suggestKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	strategy := s.opts.Strategy
	if req.Strategy != "" {
		parsed, err := keywords.ParseStrategy(req.Strategy)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		strategy = parsed
	}
	max := req.MaxResults
	if max <= 0 {
		max = s.opts.MaxKeywords
	}

	suggested := s.extractor.Suggest(strategy, req.Text, max)
	metrics.ObserveKeywords(string(strategy), len(suggested))

	writeJSON(w, http.StatusOK, map[string]any{
		"strategy": strategy,
		"keywords": suggested,
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.ComputeStats(products))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Issues  []catalog.Issue `json:"issues,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// validationHandler reports every field problem of a *catalog.ValidationError.
func validationHandler(w http.ResponseWriter, err error) bool {
	var ve *catalog.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]errorBody{"error": {
		Code:    codeValidationFailed,
		Message: ve.Error(),
		Issues:  ve.Issues,
	}})
	return true
}

// handleDomainError maps err to an error response and logs it with the request logger.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
