package screenshot

import (
	"encoding/binary"
	"math"
	"strconv"

	domrec "github.com/screenfind/screenfind/internal/domain/record"
)

// buildHashFields converts a domain Record into a flat map[string]string for HSET.
func buildHashFields(rec domrec.Record) map[string]string {
	m := map[string]string{
		"filename":           rec.Filename(),
		"recognized_text":    rec.RecognizedText(),
		"visual_description": rec.VisualDescription(),
		"preview_ref":        rec.PreviewRef(),
		"created_at":         strconv.FormatInt(rec.CreatedAt(), 10),
	}
	if rec.HasEmbedding() {
		m["embedding"] = vectorToBytes(rec.Embedding())
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Record.
func parseHashFields(id string, m map[string]string) domrec.Record {
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)

	var vector []float32
	if raw, ok := m["embedding"]; ok {
		vector = bytesToVector(raw)
	}

	return domrec.Reconstruct(
		id,
		m["filename"],
		m["recognized_text"],
		m["visual_description"],
		vector,
		m["preview_ref"],
		createdAt,
	)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
