// Package rerrors defines the sentinel error categories shared across the
// preprocessing pipeline. Callers should compare against these with
// errors.Is; internal packages wrap them with fmt.Errorf("...: %w", err)
// to add call-site context.
package rerrors

import "errors"

var (
	// ErrInvalidInput is returned when a required text argument is nil where
	// the API explicitly documents non-nil. Empty strings are NOT an error —
	// every public entry point accepts "" and returns an empty result.
	ErrInvalidInput = errors.New("ragprep: invalid input")

	// ErrInvalidOption is returned for malformed ChunkOptions or
	// PIIMaskingOptions: target_size > max_size, overlap_size >= target_size,
	// negative sizes, similarity threshold outside [0,1].
	ErrInvalidOption = errors.New("ragprep: invalid option")

	// ErrStrategyUnavailable is returned when a requested chunker strategy
	// has not been registered with the factory (e.g. Semantic without an
	// embedder).
	ErrStrategyUnavailable = errors.New("ragprep: chunking strategy unavailable")

	// ErrEmbedderFailed wraps an error surfaced verbatim from an Embedder
	// implementation, or a batch response whose length does not match the
	// request.
	ErrEmbedderFailed = errors.New("ragprep: embedder failed")

	// ErrCancelled is returned when a cooperative cancellation signal fires
	// mid-operation. Callers never observe a partial result alongside this
	// error.
	ErrCancelled = errors.New("ragprep: operation cancelled")
)
