package embedding

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/screenfind/screenfind/internal/domain"
)

// Fallback produces deterministic pseudo-embeddings from an MD5 digest of the
// input text. It keeps the service functional when no real embedding provider
// is configured: identical texts still map to identical vectors, so ranking
// stays stable, but the vectors carry no semantic signal.
type Fallback struct{}

// NewFallback returns a provider-free embedder.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Embed hashes the text and expands the digest into a unit-range vector of
// domain.EmbeddingDim dimensions. Empty text yields the zero vector.
func (f *Fallback) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, domain.EmbeddingDim)
	if strings.TrimSpace(text) == "" {
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	sum := md5.Sum([]byte(text))
	digest := hex.EncodeToString(sum[:])

	for i := 0; i < domain.EmbeddingDim; i++ {
		pos := (i * 2) % len(digest)
		v, err := strconv.ParseUint(digest[pos:pos+2], 16, 16)
		if err != nil {
			// digest is hex by construction
			continue
		}
		vec[i] = float32((float64(v) - 127.5) / 127.5)
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}

// HealthCheck always succeeds; the fallback has no external dependency.
func (f *Fallback) HealthCheck(_ context.Context) error {
	return nil
}
