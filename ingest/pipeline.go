package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage"
)

// Pipeline orchestrates ingestion of service packages into the catalog.
// Packages are stored synchronously; embeddings are generated on a worker
// pool so submission does not block on the embedding model.
type Pipeline struct {
	catalog  storage.CatalogRepository
	embedder ai.Embedder
	pool     *ants.Pool
	pending  sync.WaitGroup
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	catalog storage.CatalogRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		catalog:  catalog,
		embedder: provider.Embedder(),
		pool:     pool,
		logger:   slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest stores packages and schedules embedding generation for them.
// Packages without SearchText get one composed from their other fields.
// Embedding errors are logged but do not fail the ingestion; the backfill
// job picks up anything left without a vector.
func (p *Pipeline) Ingest(ctx context.Context, pkgs ...*core.Package) ([]*core.Package, error) {
	for _, pkg := range pkgs {
		if pkg.SearchText == "" {
			pkg.SearchText = composeSearchText(pkg)
		}
	}

	added, err := p.catalog.AddPackages(ctx, pkgs...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, pkg := range added {
		ids[i] = pkg.Id
	}

	p.pending.Add(1)
	submitErr := p.pool.Submit(func() {
		defer p.pending.Done()
		if err := p.embedPackages(context.Background(), ids...); err != nil {
			p.logger.Error("error embedding packages", "err", err)
		}
	})
	if submitErr != nil {
		p.pending.Done()
		p.logger.Error("error scheduling embedding job", "err", submitErr)
	}

	return added, nil
}

// Wait blocks until all scheduled embedding jobs have finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// embedPackages generates and stores embeddings for the given packages.
func (p *Pipeline) embedPackages(ctx context.Context, ids ...core.ID) error {
	p.logger.Info("embedding packages", "packages", len(ids))

	pkgs, err := p.catalog.GetPackages(ctx, ids...)
	if err != nil {
		p.logger.Error("error retrieving packages", "err", err)
		return err
	}

	texts := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		texts[i] = pkg.MatchText()
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		p.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(pkgs) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(pkgs), len(embeddings))
	}

	for i := range embeddings {
		pkgs[i].Vector = ai.NormalizeVector(embeddings[i])
	}

	_, err = p.catalog.UpdatePackages(ctx, pkgs...)
	return err
}

// composeSearchText builds a keyword-matching blob from a package's fields.
func composeSearchText(pkg *core.Package) string {
	parts := []string{pkg.Name, pkg.Description, pkg.Location}
	for _, details := range []map[string]string{pkg.VenueDetails, pkg.CateringDetails, pkg.EntertainmentDetails} {
		if len(details) == 0 {
			continue
		}
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, details[k])
		}
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}
