package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage"
)

// BatchProcessor handles embedding generation for batches of packages.
type BatchProcessor struct {
	catalog        storage.CatalogRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(catalog storage.CatalogRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		catalog:        catalog,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of packages and updates them in
// the catalog. Vectors are normalized after embedding so the dot-product
// search computes true cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, pkgs []*core.Package) error {
	if len(pkgs) == 0 {
		return nil
	}

	texts := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		texts[i] = pkg.MatchText()
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(pkgs) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(pkgs), len(embeddings))
	}

	// All vectors in a batch must share one dimensionality, otherwise the
	// store would mix incomparable embeddings
	for i := 1; i < len(embeddings); i++ {
		if len(embeddings[i]) != len(embeddings[0]) {
			return fmt.Errorf("embedding dimension mismatch within batch: %d vs %d", len(embeddings[0]), len(embeddings[i]))
		}
	}

	// Normalize vectors and assign to packages
	for i := range pkgs {
		pkgs[i].Vector = ai.NormalizeVector(embeddings[i])
	}

	_, err = bp.catalog.UpdatePackages(ctx, pkgs...)
	if err != nil {
		return fmt.Errorf("failed to update packages: %w", err)
	}

	return nil
}
