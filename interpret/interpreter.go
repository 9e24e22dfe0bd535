package interpret

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/core"
)

const (
	// defaultTimeout bounds each language-model round trip. A timed-out
	// call takes the same fallback path as any other failure.
	defaultTimeout = 10 * time.Second

	extractionMaxTokens = 300
	expansionMaxTokens  = 120
	variantsMaxTokens   = 160

	maxExpansionTerms = 12
	variantCount      = 3
)

// Interpreter converts a free-text query into structured parameters, an
// expanded query, and alternate phrasings by delegating natural-language
// understanding to a TextCompleter. It owns the contract of those calls:
// prompt shape, requested output shape, and fallback behavior on failure.
//
// The three operations are independent and side-effect-free given the same
// input; they may be invoked concurrently or selectively.
type Interpreter struct {
	completer ai.TextCompleter
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter) error

// WithTimeout sets the per-call timeout for language-model round trips.
// Default is 10 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(i *Interpreter) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		i.timeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewInterpreter creates a new query interpreter.
func NewInterpreter(completer ai.TextCompleter, opts ...Option) (*Interpreter, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	i := &Interpreter{
		completer: completer,
		timeout:   defaultTimeout,
		logger:    slog.Default().With("component", "interpreter"),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// paramsResponse mirrors the JSON object the extraction prompt requests.
type paramsResponse struct {
	BudgetMax   *float64 `json:"budget_max"`
	CapacityMin *int     `json:"capacity_min"`
	Location    *string  `json:"location"`
	FoodType    *string  `json:"food_type"`
	EventType   *string  `json:"event_type"`
	VenueType   *string  `json:"venue_type"`
}

// ExtractParameters parses structured search hints out of a free-text query
// with one JSON-mode language-model call at temperature zero.
//
// On any failure (network error, timeout, malformed JSON) it returns
// all-nil params so that downstream scoring degrades to pure-similarity
// ranking instead of failing the search.
func (i *Interpreter) ExtractParameters(ctx context.Context, query string) *core.ExtractedParams {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	response, err := i.completer.Complete(ctx, buildExtractionPrompt(query), ai.CompletionOptions{
		Temperature: 0,
		MaxTokens:   extractionMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		i.logger.Warn("parameter extraction failed, degrading to similarity ranking", "err", err)
		return &core.ExtractedParams{}
	}

	var parsed paramsResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &parsed); err != nil {
		i.logger.Warn("error parsing extraction response", "response", response, "err", err)
		return &core.ExtractedParams{}
	}

	return sanitizeParams(&parsed)
}

// sanitizeParams converts the wire shape into domain params, dropping
// values the model should not have produced (empty strings, non-positive
// budgets or capacities).
func sanitizeParams(parsed *paramsResponse) *core.ExtractedParams {
	params := &core.ExtractedParams{}
	if parsed.BudgetMax != nil && *parsed.BudgetMax > 0 {
		params.BudgetMax = parsed.BudgetMax
	}
	if parsed.CapacityMin != nil && *parsed.CapacityMin > 0 {
		params.CapacityMin = parsed.CapacityMin
	}
	params.Location = cleanStringParam(parsed.Location)
	params.FoodType = cleanStringParam(parsed.FoodType)
	params.EventType = cleanStringParam(parsed.EventType)
	params.VenueType = cleanStringParam(parsed.VenueType)
	return params
}

func cleanStringParam(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := strings.ToLower(strings.TrimSpace(*s))
	if cleaned == "" || cleaned == "null" {
		return nil
	}
	return &cleaned
}

// ExpandQuery augments the query with related search terms from one
// language-model call and returns "original + expansion terms".
//
// On any failure it returns the original query unchanged.
func (i *Interpreter) ExpandQuery(ctx context.Context, query string) string {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	response, err := i.completer.Complete(ctx, buildExpansionPrompt(query), ai.CompletionOptions{
		Temperature: 0,
		MaxTokens:   expansionMaxTokens,
	})
	if err != nil {
		i.logger.Warn("query expansion failed, using original query", "err", err)
		return query
	}

	terms := strings.Fields(strings.ToLower(stripCodeFences(response)))
	if len(terms) == 0 {
		return query
	}
	if len(terms) > maxExpansionTerms {
		terms = terms[:maxExpansionTerms]
	}

	return query + " " + strings.Join(terms, " ")
}

// GenerateVariants produces exactly three alternate phrasings of the query
// for multi-query retrieval, each 3-6 words.
//
// On any failure it returns a single-element slice containing the original
// query, so multi-query callers always have at least one query to run.
func (i *Interpreter) GenerateVariants(ctx context.Context, query string) []core.QueryVariant {
	fallback := []core.QueryVariant{core.QueryVariant(query)}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	response, err := i.completer.Complete(ctx, buildVariantsPrompt(query), ai.CompletionOptions{
		Temperature: 0,
		MaxTokens:   variantsMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		i.logger.Warn("variant generation failed, using original query", "err", err)
		return fallback
	}

	var phrasings []string
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &phrasings); err != nil {
		i.logger.Warn("error parsing variants response", "response", response, "err", err)
		return fallback
	}

	variants := make([]core.QueryVariant, 0, variantCount)
	for _, phrasing := range phrasings {
		phrasing = strings.TrimSpace(phrasing)
		if phrasing == "" {
			continue
		}
		variants = append(variants, core.QueryVariant(phrasing))
		if len(variants) == variantCount {
			break
		}
	}

	if len(variants) == 0 {
		return fallback
	}
	return variants
}
