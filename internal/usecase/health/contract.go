package health

import "context"

// DBPinger probes storage connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker probes embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
