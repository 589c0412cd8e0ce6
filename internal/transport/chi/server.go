// Package chi implements the HTTP API on the go-chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/domain"
	domart "github.com/relocation-quest/atlas/internal/domain/article"
	domdest "github.com/relocation-quest/atlas/internal/domain/destination"
	healthuc "github.com/relocation-quest/atlas/internal/usecase/health"
)

// errorCode is the machine-readable error discriminator in API responses.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeArticleNotFound      errorCode = "article_not_found"
	codeDestinationNotFound  errorCode = "destination_not_found"
	codeNotFound             errorCode = "not_found"
	codeEmbeddingUnavailable errorCode = "embedding_provider_error"
	codeStoreUnavailable     errorCode = "store_unavailable"
	codeInternalError        errorCode = "internal_error"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services into HTTP handlers.
type Server struct {
	search        SearchService
	destinations  DestinationService
	research      ResearchService
	articles      ArticleReader
	profiles      ProfileReader
	health        *healthuc.Service
	maxLimit      int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search SearchService,
	destinations DestinationService,
	research ResearchService,
	articles ArticleReader,
	profiles ProfileReader,
	health *healthuc.Service,
	maxLimit int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:       search,
		destinations: destinations,
		research:     research,
		articles:     articles,
		profiles:     profiles,
		health:       health,
		maxLimit:     maxLimit,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrArticleNotFound, http.StatusNotFound, codeArticleNotFound),
		sentinelHandler(domain.ErrDestinationNotFound, http.StatusNotFound, codeDestinationNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/search", s.handleSearch)
	r.Get("/v1/articles", s.handleListArticles)
	r.Get("/v1/articles/{slug}", s.handleGetArticle)

	r.Get("/v1/destinations", s.handleListDestinations)
	r.Get("/v1/destinations/search", s.handleSearchDestinations)
	r.Get("/v1/destinations/compare", s.handleCompareDestinations)
	r.Get("/v1/destinations/{slug}", s.handleGetDestination)
	r.Get("/v1/visas", s.handleVisas)
	r.Get("/v1/cost-of-living", s.handleCostOfLiving)

	r.Get("/v1/research/guides", s.handleResearchGuides)
	r.Get("/v1/research/map", s.handleResearchMap)
	r.Get("/v1/research/timeline", s.handleResearchTimeline)
	r.Get("/v1/research/featured", s.handleResearchFeatured)
	r.Get("/v1/research/image", s.handleResearchImage)
	r.Get("/v1/research/context", s.handleResearchContext)

	r.Get("/v1/profiles/{userID}/name", s.handlePreferredName)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Query is required")
		return
	}

	res, err := s.search.Search(r.Context(), req.Query, s.clampLimit(req.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	rec, err := s.articles.GetBySlug(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	mode := r.URL.Query().Get("mode")
	limit := s.clampLimit(queryInt(r, "limit"))
	if limit == 0 {
		limit = s.maxLimit
	}

	var (
		records []domart.Record
		err     error
	)
	switch {
	case country != "":
		records, err = s.articles.ListByCountry(r.Context(), country, limit)
	case mode != "":
		records, err = s.articles.ListByMode(r.Context(), mode, limit)
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed, "country or mode query parameter is required")
		return
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if records == nil {
		records = []domart.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": records})
}

func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"destinations": s.destinations.ListAll(r.Context()),
	})
}

func (s *Server) handleSearchDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	records, err := s.destinations.Search(r.Context(), q, s.clampLimit(queryInt(r, "limit")))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if records == nil {
		records = []domdest.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": records})
}

func (s *Server) handleGetDestination(w http.ResponseWriter, r *http.Request) {
	rec, err := s.destinations.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCompareDestinations(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "a and b query parameters are required")
		return
	}

	cmp, err := s.destinations.Compare(r.Context(), a, b)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleVisas(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "country query parameter is required")
		return
	}
	info, err := s.destinations.Visas(r.Context(), country)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleCostOfLiving(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "country query parameter is required")
		return
	}
	info, err := s.destinations.CostOfLiving(r.Context(), country)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleResearchGuides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "q query parameter is required")
		return
	}
	grid, err := s.research.Guides(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) handleResearchMap(w http.ResponseWriter, r *http.Request) {
	locations := s.research.Map(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
}

func (s *Server) handleResearchTimeline(w http.ResponseWriter, r *http.Request) {
	dest := r.URL.Query().Get("destination")
	if dest == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "destination query parameter is required")
		return
	}
	tl, err := s.research.Timeline(r.Context(), dest)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tl)
}

func (s *Server) handleResearchFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.research.Featured(r.Context()))
}

func (s *Server) handleResearchImage(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "topic query parameter is required")
		return
	}
	img, err := s.research.Image(r.Context(), topic)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (s *Server) handleResearchContext(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "topic query parameter is required")
		return
	}
	out, err := s.research.Context(r.Context(), topic)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePreferredName(w http.ResponseWriter, r *http.Request) {
	name, err := s.profiles.PreferredName(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"preferred_name": name})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// clampLimit bounds a client-supplied page size. Zero or negative falls back
// to the use case default.
func (s *Server) clampLimit(limit int) int {
	if limit > s.maxLimit {
		return s.maxLimit
	}
	if limit < 0 {
		return 0
	}
	return limit
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrArticleNotFound,
		domain.ErrDestinationNotFound,
		domain.ErrNotFound,
		domain.ErrEmbeddingUnavailable,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
