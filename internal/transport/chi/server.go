package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/screenfind/screenfind/internal/domain"
	domrec "github.com/screenfind/screenfind/internal/domain/record"
	logpkg "github.com/screenfind/screenfind/internal/logger"
	"github.com/screenfind/screenfind/internal/metrics"
	healthuc "github.com/screenfind/screenfind/internal/usecase/health"
	ingestuc "github.com/screenfind/screenfind/internal/usecase/ingest"
	screenshotuc "github.com/screenfind/screenfind/internal/usecase/screenshot"
	searchuc "github.com/screenfind/screenfind/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the REST API over a chi router.
type Server struct {
	ingest        *ingestuc.Service
	screenshots   *screenshotuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	screenshots *screenshotuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest:      ingest,
		screenshots: screenshots,
		search:      search,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, CodeJobNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, CodeVectorDimMismatch),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/screenshots", func(r chi.Router) {
		r.Post("/", s.IngestScreenshots)
		r.Get("/", s.ListScreenshots)
		r.Get("/status/{jobID}", s.JobStatus)
		r.Post("/search", s.SearchScreenshots)
		r.Delete("/{id}", s.DeleteScreenshot)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/ready", s.Ready)
	r.Get("/metrics", s.Metrics)
}

// IngestScreenshots handles POST /api/screenshots.
func (s *Server) IngestScreenshots(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	j, err := s.ingest.Submit(r.Context(), ingestItemsFromRequest(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, jobToResponse(j))
}

// JobStatus handles GET /api/screenshots/status/{jobID}.
func (s *Server) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	j, err := s.ingest.Status(r.Context(), jobID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jobToResponse(j))
}

// ListScreenshots handles GET /api/screenshots.
func (s *Server) ListScreenshots(w http.ResponseWriter, r *http.Request) {
	recs, err := s.screenshots.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]ScreenshotItem, len(recs))
	for i, rec := range recs {
		items[i] = screenshotToItem(rec)
	}

	writeJSON(w, http.StatusOK, ScreenshotListResponse{
		Items: items,
		Total: len(items),
	})
}

// DeleteScreenshot handles DELETE /api/screenshots/{id}.
func (s *Server) DeleteScreenshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.screenshots.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchScreenshots handles POST /api/screenshots/search.
func (s *Server) SearchScreenshots(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Query is required")
		return
	}

	limit := -1
	if req.Limit != nil {
		limit = *req.Limit
	}

	start := time.Now()
	results, scanned, err := s.search.Search(r.Context(), req.Query, limit)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	metrics.SearchDuration.Observe(elapsed.Seconds())
	metrics.SearchRecordsScanned.Observe(float64(scanned))
	metrics.SearchResultsReturned.Observe(float64(len(results)))

	items := make([]SearchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultToItem(res)
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results:       items,
		TotalSearched: scanned,
		QueryTimeMs:   float64(elapsed.Microseconds()) / 1000.0,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Ready handles GET /ready. Readiness only requires storage.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	if report.Checks["database"] != healthuc.CheckOK {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func screenshotToItem(rec domrec.Record) ScreenshotItem {
	return ScreenshotItem{
		ID:                rec.ID(),
		Filename:          rec.Filename(),
		RecognizedText:    rec.RecognizedText(),
		VisualDescription: rec.VisualDescription(),
		PreviewRef:        rec.PreviewRef(),
		CreatedAt:         rec.CreatedAt(),
		Searchable:        rec.HasEmbedding(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrJobNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrVectorDimMismatch,
		domain.ErrRateLimited,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Request-scoped logger carries the request_id set by the wide-event middleware.
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
