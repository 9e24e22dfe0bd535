package search

import (
	"context"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage"
)

// CandidateProvider supplies candidate packages for a query. Implementations
// own retrieval and any pre-filtering; the searcher ranks whatever comes back.
type CandidateProvider interface {
	// RetrieveCandidates returns up to limit candidates for the query,
	// each carrying a similarity score in [0,1].
	RetrieveCandidates(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error)
}

const defaultMinSimilarity = 0.30

// CatalogProvider retrieves candidates from a catalog repository by
// embedding the query text and running a vector search.
type CatalogProvider struct {
	catalog       storage.CatalogRepository
	embedder      ai.Embedder
	minSimilarity float32
}

var _ CandidateProvider = (*CatalogProvider)(nil)

// CatalogProviderOption configures a CatalogProvider.
type CatalogProviderOption func(*CatalogProvider) error

// WithMinSimilarity sets the similarity floor for vector retrieval.
// Default is 0.30.
func WithMinSimilarity(min float32) CatalogProviderOption {
	return func(p *CatalogProvider) error {
		p.minSimilarity = min
		return nil
	}
}

// NewCatalogProvider creates a provider backed by a catalog repository.
func NewCatalogProvider(catalog storage.CatalogRepository, embedder ai.Embedder, opts ...CatalogProviderOption) (*CatalogProvider, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &CatalogProvider{
		catalog:       catalog,
		embedder:      embedder,
		minSimilarity: defaultMinSimilarity,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// RetrieveCandidates embeds the query and delegates to the catalog's vector search.
func (p *CatalogProvider) RetrieveCandidates(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
	vector, err := p.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	// Stored vectors are unit length; normalize the query vector so the
	// dot product is a true cosine similarity.
	vector = ai.NormalizeVector(vector)

	return p.catalog.FindSimilar(ctx, vector, p.minSimilarity, limit)
}
