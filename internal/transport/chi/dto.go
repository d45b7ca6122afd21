package chi

import (
	domjob "github.com/screenfind/screenfind/internal/domain/job"
	domres "github.com/screenfind/screenfind/internal/domain/search/result"
	ingestuc "github.com/screenfind/screenfind/internal/usecase/ingest"
)

// ErrorCode is a machine-readable error identifier returned to clients.
type ErrorCode string

const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeNotFound               ErrorCode = "not_found"
	CodeJobNotFound            ErrorCode = "job_not_found"
	CodeAlreadyExists          ErrorCode = "already_exists"
	CodeRateLimited            ErrorCode = "rate_limited"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeVectorDimMismatch      ErrorCode = "vector_dim_mismatch"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// IngestItem is one capture in an ingest request.
type IngestItem struct {
	Filename          string `json:"filename"`
	RecognizedText    string `json:"recognized_text,omitempty"`
	VisualDescription string `json:"visual_description,omitempty"`
	PreviewRef        string `json:"preview_ref,omitempty"`
}

// IngestRequest is the POST /api/screenshots body.
type IngestRequest struct {
	Items []IngestItem `json:"items"`
}

// JobResponse reports ingest job state.
type JobResponse struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// ScreenshotItem is one stored capture in list responses.
type ScreenshotItem struct {
	ID                string `json:"id"`
	Filename          string `json:"filename"`
	RecognizedText    string `json:"recognized_text,omitempty"`
	VisualDescription string `json:"visual_description,omitempty"`
	PreviewRef        string `json:"preview_ref,omitempty"`
	CreatedAt         int64  `json:"created_at"`
	Searchable        bool   `json:"searchable"`
}

// ScreenshotListResponse is the GET /api/screenshots envelope.
type ScreenshotListResponse struct {
	Items []ScreenshotItem `json:"items"`
	Total int              `json:"total"`
}

// SearchRequest is the POST /api/screenshots/search body.
type SearchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// SearchResultItem is one ranked hit.
type SearchResultItem struct {
	ID                string   `json:"id"`
	Filename          string   `json:"filename"`
	ConfidenceScore   float64  `json:"confidence_score"`
	PreviewRef        string   `json:"preview_ref,omitempty"`
	RecognizedText    string   `json:"recognized_text,omitempty"`
	VisualDescription string   `json:"visual_description,omitempty"`
	MatchedElements   []string `json:"matched_elements"`
}

// SearchResponse is the search envelope.
type SearchResponse struct {
	Results       []SearchResultItem `json:"results"`
	TotalSearched int                `json:"total_searched"`
	QueryTimeMs   float64            `json:"query_time_ms"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func jobToResponse(j domjob.Job) JobResponse {
	return JobResponse{
		JobID:     j.ID(),
		Status:    string(j.Status()),
		Progress:  j.Progress(),
		Total:     j.Total(),
		Processed: j.Processed(),
		Failed:    j.Failed(),
	}
}

func searchResultToItem(r domres.Result) SearchResultItem {
	return SearchResultItem{
		ID:                r.ID(),
		Filename:          r.Filename(),
		ConfidenceScore:   r.ConfidenceScore(),
		PreviewRef:        r.PreviewRef(),
		RecognizedText:    r.RecognizedText(),
		VisualDescription: r.VisualDescription(),
		MatchedElements:   r.MatchedElements(),
	}
}

func ingestItemsFromRequest(req IngestRequest) []ingestuc.Item {
	items := make([]ingestuc.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = ingestuc.Item{
			Filename:          it.Filename,
			RecognizedText:    it.RecognizedText,
			VisualDescription: it.VisualDescription,
			PreviewRef:        it.PreviewRef,
		}
	}
	return items
}
