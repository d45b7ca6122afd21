package domain

import "errors"

var (
	// ErrNotFound signals a missing screenshot record.
	ErrNotFound = errors.New("screenshot not found")
	// ErrAlreadyExists signals a duplicate screenshot record.
	ErrAlreadyExists = errors.New("screenshot already exists")
	// ErrJobNotFound signals a missing ingest job.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidInput signals a malformed client request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorDimMismatch signals a stored vector with the wrong dimension.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
