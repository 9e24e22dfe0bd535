package ai

import (
	"context"
	"errors"
)

// ErrDimensionMismatch is returned when an embedding does not match the
// configured vector dimensionality. This indicates a misconfigured model
// rather than an expected runtime condition.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionOptions controls a single text completion call.
type CompletionOptions struct {
	// Temperature controls sampling randomness. 0 is the most deterministic
	// setting and is what the query interpreter uses.
	Temperature float64

	// MaxTokens caps the response length. 0 means the model default.
	MaxTokens int

	// JSONMode requests that the model return valid JSON only.
	JSONMode bool
}

// TextCompleter performs single-shot text completions against a language
// model. Implementations must be thread-safe for concurrent use.
type TextCompleter interface {
	// Complete sends one prompt to the model and returns the raw response
	// text. Callers own prompt shape, response parsing, and fallback
	// behavior; implementations only own transport.
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and TextCompleter instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Completer returns the text completion service.
	// The returned TextCompleter is safe for concurrent use.
	Completer() TextCompleter

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
