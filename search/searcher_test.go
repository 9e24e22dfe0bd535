package search

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/banquet/ai/mock"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scriptable CandidateProvider for pipeline tests.
type fakeProvider struct {
	retrieveFunc func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error)
	queries      []string
}

func (f *fakeProvider) RetrieveCandidates(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
	f.queries = append(f.queries, query)
	if f.retrieveFunc != nil {
		return f.retrieveFunc(ctx, query, params, limit)
	}
	return nil, nil
}

// stubInterpreter returns fixed interpretation results.
type stubInterpreter struct {
	params   *core.ExtractedParams
	expanded string
	variants []core.QueryVariant
}

func (s *stubInterpreter) ExtractParameters(ctx context.Context, query string) *core.ExtractedParams {
	return s.params
}

func (s *stubInterpreter) ExpandQuery(ctx context.Context, query string) string {
	if s.expanded == "" {
		return query
	}
	return s.expanded
}

func (s *stubInterpreter) GenerateVariants(ctx context.Context, query string) []core.QueryVariant {
	return s.variants
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestNewSearcher(t *testing.T) {
	provider := &fakeProvider{}
	aiProvider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(provider, aiProvider)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(nil, aiProvider)
		assert.Equal(t, ErrProviderRequired, err)
	})

	t.Run("nil AI provider", func(t *testing.T) {
		_, err := NewSearcher(provider, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("invalid top K", func(t *testing.T) {
		_, err := NewSearcher(provider, aiProvider, WithTopK(0))
		assert.Equal(t, ErrInvalidTopK, err)
	})

	t.Run("invalid retrieval limit", func(t *testing.T) {
		_, err := NewSearcher(provider, aiProvider, WithRetrievalLimit(-5))
		assert.Equal(t, ErrInvalidRetrievalLimit, err)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(provider, aiProvider, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})
}

func TestSearch_EmptyRetrieval(t *testing.T) {
	searcher, err := NewSearcher(&fakeProvider{}, mock.NewMockProvider())
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "wedding venue", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_RetrievalErrorSurfaces(t *testing.T) {
	retrievalErr := errors.New("vector store unavailable")
	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			return nil, retrievalErr
		},
	}

	searcher, err := NewSearcher(provider, mock.NewMockProvider())
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "wedding venue", nil)
	assert.ErrorIs(t, err, retrievalErr)
}

func TestSearch_DegradesWhenModelUnavailable(t *testing.T) {
	// A completer that always fails forces every interpreter stage into
	// its fallback. Search must still return similarity-ranked results.
	completer := mock.NewMockCompleter("")
	completer.Err = errors.New("model offline")
	aiProvider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), completer)

	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			return []core.Candidate{
				{Package: &core.Package{Id: 1, Name: "Ballroom A", Description: "Grand hall downtown"}, Similarity: 0.70},
				{Package: &core.Package{Id: 2, Name: "Ballroom B", Description: "Grand hall uptown"}, Similarity: 0.90},
				{Package: &core.Package{Id: 3, Name: "Ballroom C", Description: "Grand hall midtown"}, Similarity: 0.80},
			}, nil
		},
	}

	searcher, err := NewSearcher(provider, aiProvider, WithMultiQuery(true))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "elegant reception", nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Similarity is the only live signal, so order follows it
	assert.Equal(t, core.ID(2), results[0].Package.Id)
	assert.Equal(t, core.ID(3), results[1].Package.Id)
	assert.Equal(t, core.ID(1), results[2].Package.Id)

	// Every result carries at least one explanation
	for _, r := range results {
		assert.NotEmpty(t, r.Explanations)
	}

	// Identity expansion: the provider saw the original query once
	assert.Equal(t, []string{"elegant reception"}, provider.queries)
}

func TestSearch_ParametersSteerRanking(t *testing.T) {
	// A caterer that fits budget, headcount, and cuisine should beat a
	// slightly more similar package that misses on capacity and cuisine.
	interpreter := &stubInterpreter{
		params: &core.ExtractedParams{
			BudgetMax:   floatPtr(3000),
			CapacityMin: intPtr(200),
			FoodType:    strPtr("seafood"),
		},
	}

	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			return []core.Candidate{
				{
					Package: &core.Package{
						Id:              1,
						Name:            "Prime Grill Buffet",
						Description:     "Dry-aged cuts carved to order",
						PriceMin:        2900,
						PriceMax:        3500,
						Capacity:        180,
						CateringDetails: map[string]string{"cuisine": "steak american"},
					},
					Similarity: 0.85,
				},
				{
					Package: &core.Package{
						Id:              2,
						Name:            "Harborview Seafood Catering",
						Description:     "Coastal raw bar and grilled fish stations",
						PriceMin:        2600,
						PriceMax:        3000,
						Capacity:        250,
						CateringDetails: map[string]string{"cuisine": "seafood"},
					},
					Similarity: 0.80,
				},
			}, nil
		},
	}

	searcher, err := NewSearcher(provider, mock.NewMockProvider(), WithInterpreter(interpreter))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "seafood catering for 200 guests", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, core.ID(2), results[0].Package.Id)
	assert.Greater(t, results[0].FinalScore, results[1].FinalScore)
}

func TestSearch_HintsOverrideExtraction(t *testing.T) {
	interpreter := &stubInterpreter{
		params: &core.ExtractedParams{BudgetMax: floatPtr(10000)},
	}

	var seen *core.ExtractedParams
	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			seen = params
			return nil, nil
		},
	}

	searcher, err := NewSearcher(provider, mock.NewMockProvider(), WithInterpreter(interpreter))
	require.NoError(t, err)

	hints := &core.ExtractedParams{BudgetMax: floatPtr(2500), CapacityMin: intPtr(80)}
	_, err = searcher.Search(context.Background(), "birthday party", hints)
	require.NoError(t, err)

	require.NotNil(t, seen)
	require.NotNil(t, seen.BudgetMax)
	assert.Equal(t, 2500.0, *seen.BudgetMax)
	require.NotNil(t, seen.CapacityMin)
	assert.Equal(t, 80, *seen.CapacityMin)
}

func TestSearch_MultiQueryMergesByMaxSimilarity(t *testing.T) {
	interpreter := &stubInterpreter{
		expanded: "rooftop party venue",
		variants: []core.QueryVariant{"rooftop event space", "terrace venue rental"},
	}

	pkg := &core.Package{Id: 7, Name: "Skyline Terrace"}
	other := &core.Package{Id: 8, Name: "Cellar Lounge"}

	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			switch query {
			case "rooftop party venue":
				return []core.Candidate{{Package: pkg, Similarity: 0.60}}, nil
			case "rooftop event space":
				return []core.Candidate{{Package: pkg, Similarity: 0.90}, {Package: other, Similarity: 0.55}}, nil
			default:
				return []core.Candidate{{Package: pkg, Similarity: 0.70}}, nil
			}
		},
	}

	searcher, err := NewSearcher(provider, mock.NewMockProvider(),
		WithInterpreter(interpreter), WithMultiQuery(true))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "rooftop venue", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// All three queries hit the provider
	assert.Len(t, provider.queries, 3)

	// The terrace keeps its best similarity across variants
	assert.Equal(t, core.ID(7), results[0].Package.Id)
	assert.Equal(t, 0.90, results[0].Scores.Similarity)
}

func TestSearch_TopKLimitsResults(t *testing.T) {
	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			candidates := make([]core.Candidate, 12)
			for i := range candidates {
				candidates[i] = core.Candidate{
					Package:    &core.Package{Id: core.ID(i + 1), Name: "Venue"},
					Similarity: 1.0 - float64(i)*0.05,
				}
			}
			return candidates, nil
		},
	}

	searcher, err := NewSearcher(provider, mock.NewMockProvider(), WithTopK(5))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "venue", nil)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestSearch_MonitorReceivesCallbacks(t *testing.T) {
	provider := &fakeProvider{
		retrieveFunc: func(ctx context.Context, query string, params *core.ExtractedParams, limit int) ([]core.Candidate, error) {
			return []core.Candidate{
				{Package: &core.Package{Id: 1, Name: "Garden Pavilion"}, Similarity: 0.8},
			}, nil
		},
	}

	monitor := &testMonitor{}
	searcher, err := NewSearcher(provider, mock.NewMockProvider(), WithMonitor(monitor))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "garden wedding", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, results)

	assert.True(t, monitor.startCalled)
	assert.True(t, monitor.interpretCalled)
	assert.True(t, monitor.retrievalCalled)
	assert.True(t, monitor.scoringCalled)
	assert.True(t, monitor.diversifyCalled)
	assert.True(t, monitor.finishCalled)
}

// testMonitor is a simple test implementation of PipelineMonitor
type testMonitor struct {
	startCalled     bool
	interpretCalled bool
	retrievalCalled bool
	scoringCalled   bool
	diversifyCalled bool
	finishCalled    bool
}

func (m *testMonitor) Start(query string) { m.startCalled = true }

func (m *testMonitor) AfterInterpret(params *core.ExtractedParams, expanded string, variants []core.QueryVariant) {
	m.interpretCalled = true
}

func (m *testMonitor) AfterRetrieval(candidates []core.Candidate) { m.retrievalCalled = true }

func (m *testMonitor) AfterScoring(scored []*core.ScoredCandidate) { m.scoringCalled = true }

func (m *testMonitor) AfterDiversification(selected []*core.ScoredCandidate) {
	m.diversifyCalled = true
}

func (m *testMonitor) Finish(results []*core.ScoredCandidate) { m.finishCalled = true }

func TestCatalogProvider(t *testing.T) {
	catalog, err := badger.NewMemoryCatalog()
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()

	_, err = catalog.AddPackages(ctx,
		&core.Package{Name: "Match", Vector: []float32{1, 0, 0}},
		&core.Package{Name: "Miss", Vector: []float32{0, 0, 1}},
	)
	require.NoError(t, err)

	// Embedder output is deliberately unnormalized; the provider must
	// scale it to unit length before the dot-product search.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{2, 0, 0}, nil
	}

	provider, err := NewCatalogProvider(catalog, embedder)
	require.NoError(t, err)

	candidates, err := provider.RetrieveCandidates(ctx, "query", nil, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Match", candidates[0].Package.Name)
	assert.InDelta(t, 1.0, candidates[0].Similarity, 1e-6)

	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewCatalogProvider(nil, embedder)
		assert.Equal(t, ErrCatalogRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewCatalogProvider(catalog, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}
