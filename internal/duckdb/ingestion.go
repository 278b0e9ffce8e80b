package duckdb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"graphgrade/internal/runner"
)

// CanonicalJSON returns deterministic JSON bytes for hashing and storage.
func CanonicalJSON(value any) ([]byte, error) {
	normalized, err := normalizeJSON(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// FingerprintJSON returns a SHA-256 hex digest for the canonical JSON.
func FingerprintJSON(value any) (string, error) {
	data, err := CanonicalJSON(value)
	if err != nil {
		return "", err
	}
	return fingerprintBytes(data), nil
}

// RunKey fingerprints the inputs and grading settings of a run. Runs with
// the same key graded the same files the same way and are comparable.
func RunKey(results runner.Results) (string, error) {
	segments := make([]string, 0, len(results.Segments))
	for _, segment := range results.Segments {
		segments = append(segments, string(segment))
	}
	return FingerprintJSON(map[string]any{
		"profile":  results.Profile,
		"results":  results.Inputs.Results,
		"standard": results.Inputs.Standard,
		"segments": segments,
	})
}

func joinSegments(results runner.Results) string {
	names := make([]string, 0, len(results.Segments))
	for _, segment := range results.Segments {
		names = append(names, string(segment))
	}
	return strings.Join(names, ",")
}

func fingerprintBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// normalizeJSON decodes raw JSON inputs into generic values so that map keys
// are re-sorted on marshal.
func normalizeJSON(value any) (any, error) {
	switch v := value.(type) {
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json raw: %w", err)
		}
		return normalizeJSON(decoded)
	case []byte:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json bytes: %w", err)
		}
		return normalizeJSON(decoded)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			norm, err := normalizeJSON(inner)
			if err != nil {
				return nil, err
			}
			out[k] = norm
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i := range v {
			norm, err := normalizeJSON(v[i])
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	default:
		return v, nil
	}
}
