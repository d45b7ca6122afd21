// Package health aggregates component probes into a single service report.
package health

import "context"

// Status is the aggregated service health.
type Status string

const (
	// Healthy means every probed component responded.
	Healthy Status = "ok"
	// Degraded means at least one component failed its probe.
	Degraded Status = "degraded"
)

// CheckResult is the outcome of one component probe.
type CheckResult string

const (
	// CheckOK marks a passing probe.
	CheckOK CheckResult = "ok"
	// CheckError marks a failing probe.
	CheckError CheckResult = "error"
)

// Report carries the aggregate status and the per-component outcomes.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service probes storage and, when configured, the embedding provider.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
}

// New creates a health service. embedding may be nil when the fallback
// embedder is in use; its check is then skipped entirely.
func New(db DBPinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, embedding: embedding}
}

// Check probes every configured component.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		"database": resultOf(s.db.Ping(ctx)),
	}
	if s.embedding != nil {
		checks["embedding"] = resultOf(s.embedding.HealthCheck(ctx))
	}
	return Report{Status: overall(checks), Checks: checks}
}

func resultOf(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}

func overall(checks map[string]CheckResult) Status {
	for _, r := range checks {
		if r == CheckError {
			return Degraded
		}
	}
	return Healthy
}
