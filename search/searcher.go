package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/interpret"
	"github.com/poiesic/banquet/relevance"
)

const (
	defaultTopK           = 10
	defaultRetrievalLimit = 50
)

// Interpreter covers the query understanding operations the pipeline uses.
// Satisfied by interpret.Interpreter.
type Interpreter interface {
	ExtractParameters(ctx context.Context, query string) *core.ExtractedParams
	ExpandQuery(ctx context.Context, query string) string
	GenerateVariants(ctx context.Context, query string) []core.QueryVariant
}

// Searcher runs the full relevance pipeline: query interpretation, candidate
// retrieval, multi-signal scoring, reranking, and diversity-aware selection.
type Searcher struct {
	provider       CandidateProvider
	interpreter    Interpreter
	cfg            relevance.Config
	logger         *slog.Logger
	topK           int
	retrievalLimit int
	multiQuery     bool
	monitor        PipelineMonitor
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithTopK sets the number of results returned by Search.
// Default is 10.
func WithTopK(k int) Option {
	return func(s *Searcher) error {
		if k <= 0 {
			return ErrInvalidTopK
		}
		s.topK = k
		return nil
	}
}

// WithRetrievalLimit sets how many candidates are pulled from the provider
// before ranking. Default is 50.
func WithRetrievalLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit <= 0 {
			return ErrInvalidRetrievalLimit
		}
		s.retrievalLimit = limit
		return nil
	}
}

// WithMultiQuery enables retrieval over generated query variants in addition
// to the expanded query. Variant result sets are merged by keeping the
// highest similarity seen for each package.
func WithMultiQuery(enabled bool) Option {
	return func(s *Searcher) error {
		s.multiQuery = enabled
		return nil
	}
}

// WithMonitor sets a pipeline monitor that receives callbacks at each stage.
func WithMonitor(monitor PipelineMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithInterpreter replaces the default interpreter.
func WithInterpreter(interpreter Interpreter) Option {
	return func(s *Searcher) error {
		if interpreter != nil {
			s.interpreter = interpreter
		}
		return nil
	}
}

// WithRelevanceConfig replaces the default scoring configuration.
func WithRelevanceConfig(cfg relevance.Config) Option {
	return func(s *Searcher) error {
		s.cfg = cfg
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	provider CandidateProvider,
	aiProvider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if aiProvider == nil {
		return nil, ErrAIProviderRequired
	}

	interpreter, err := interpret.NewInterpreter(aiProvider.Completer())
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		provider:       provider,
		interpreter:    interpreter,
		cfg:            relevance.DefaultConfig(),
		logger:         slog.Default(),
		topK:           defaultTopK,
		retrievalLimit: defaultRetrievalLimit,
		monitor:        &noopMonitor{},
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the pipeline for a query and returns up to the configured
// number of results, ranked and diversified.
//
// Caller hints override extracted parameters field by field. Interpreter
// failures degrade to similarity and keyword ranking; a retrieval failure
// is returned because without candidates there is nothing to rank.
func (s *Searcher) Search(ctx context.Context, query string, hints *core.ExtractedParams) ([]*core.ScoredCandidate, error) {
	s.monitor.Start(query)

	// 1. Interpret the query. The operations are independent, so run them
	// concurrently. Each has its own documented fallback and never fails.
	var (
		wg       sync.WaitGroup
		params   *core.ExtractedParams
		expanded string
		variants []core.QueryVariant
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		params = s.interpreter.ExtractParameters(ctx, query)
	}()
	go func() {
		defer wg.Done()
		expanded = s.interpreter.ExpandQuery(ctx, query)
	}()
	if s.multiQuery {
		wg.Add(1)
		go func() {
			defer wg.Done()
			variants = s.interpreter.GenerateVariants(ctx, query)
		}()
	}
	wg.Wait()

	params = params.Merge(hints)
	s.monitor.AfterInterpret(params, expanded, variants)

	// 2. Retrieve candidates
	candidates, err := s.retrieve(ctx, expanded, variants, params)
	if err != nil {
		s.logger.Error("error retrieving candidates", "query", query, "err", err)
		return nil, err
	}
	s.monitor.AfterRetrieval(candidates)

	if len(candidates) == 0 {
		s.monitor.Finish(nil)
		return []*core.ScoredCandidate{}, nil
	}

	// 3. Score and rerank. Scoring uses the original query for keyword
	// matching so expansion terms don't dilute exact matches.
	scored := relevance.Score(query, params, candidates, s.cfg)
	ranked := relevance.Rerank(scored, s.cfg)
	s.monitor.AfterScoring(ranked)

	// 4. Diversify. topK is validated at construction, so the only error
	// Diversify can return cannot occur here.
	selected, err := relevance.Diversify(ranked, s.topK)
	if err != nil {
		s.logger.Error("diversification failed, falling back to ranked order", "err", err)
		selected = ranked
		if len(selected) > s.topK {
			selected = selected[:s.topK]
		}
	}
	s.monitor.AfterDiversification(selected)

	s.monitor.Finish(selected)
	return selected, nil
}

// retrieve pulls candidates for the expanded query, plus each variant when
// multi-query is enabled, merging result sets by max similarity per package.
func (s *Searcher) retrieve(ctx context.Context, expanded string, variants []core.QueryVariant, params *core.ExtractedParams) ([]core.Candidate, error) {
	queries := []string{expanded}
	for _, v := range variants {
		if string(v) != expanded {
			queries = append(queries, string(v))
		}
	}

	if len(queries) == 1 {
		return s.provider.RetrieveCandidates(ctx, queries[0], params, s.retrievalLimit)
	}

	best := make(map[core.ID]core.Candidate)
	order := make([]core.ID, 0, s.retrievalLimit)
	for _, q := range queries {
		candidates, err := s.provider.RetrieveCandidates(ctx, q, params, s.retrievalLimit)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			existing, seen := best[c.Package.Id]
			if !seen {
				best[c.Package.Id] = c
				order = append(order, c.Package.Id)
				continue
			}
			if c.Similarity > existing.Similarity {
				best[c.Package.Id] = c
			}
		}
	}

	merged := make([]core.Candidate, 0, len(order))
	for _, id := range order {
		merged = append(merged, best[id])
	}
	return merged, nil
}
