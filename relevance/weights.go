package relevance

// Weights are the fixed multipliers combining sub-scores into a final score.
// Similarity dominates, but structured signals can reorder close results.
// They are constant across a candidate set so that ranking is stable and
// reproducible for a fixed query and fixed candidate list.
type Weights struct {
	Similarity float64
	Keyword    float64
	Budget     float64
	Capacity   float64
	FoodType   float64
	VenueType  float64
}

// DefaultWeights returns the hand-tuned production weighting.
//
// The weights do not sum to 1 across every query: when a conditional signal
// is absent its term is omitted entirely, so queries with more extracted
// parameters can reach a higher maximum score. Relative ordering within one
// query's result set is unaffected, which is the only thing that matters
// to the user.
func DefaultWeights() Weights {
	return Weights{
		Similarity: 0.40,
		Keyword:    0.20,
		Budget:     0.15,
		Capacity:   0.15,
		FoodType:   0.05,
		VenueType:  0.05,
	}
}

// BudgetBand maps a maximum relative distance from the price-range midpoint
// to a score. Bands are evaluated in order; the first match wins.
type BudgetBand struct {
	MaxRelativeDiff float64
	Score           float64
}

// BudgetBands configures the budget score decay outside the price range.
type BudgetBands struct {
	Bands []BudgetBand
	// Floor is the score for budgets beyond the last band.
	Floor float64
}

// DefaultBudgetBands rewards being in range sharply but still ranks
// near-misses above wildly-off candidates.
func DefaultBudgetBands() BudgetBands {
	return BudgetBands{
		Bands: []BudgetBand{
			{MaxRelativeDiff: 0.10, Score: 0.9},
			{MaxRelativeDiff: 0.20, Score: 0.7},
			{MaxRelativeDiff: 0.30, Score: 0.5},
			{MaxRelativeDiff: 0.50, Score: 0.3},
		},
		Floor: 0.1,
	}
}

// CapacityBands configures the capacity score over the ratio of candidate
// capacity to expected guest count. The band structure is intentionally
// asymmetric: an undersized venue is a hard failure mode for an event,
// an oversized one is merely suboptimal cost.
type CapacityBands struct {
	// Ratio breakpoints.
	TightMin     float64 // below this the venue is probably too small
	IdealMin     float64 // start of the ideal headroom band
	IdealMax     float64 // end of the ideal headroom band
	GenerousMax  float64 // generous but workable oversizing
	OversizedMax float64 // likely overpriced for the need

	// Scores per band.
	Ideal     float64 // ratio in [IdealMin, IdealMax]
	Tight     float64 // ratio in [TightMin, IdealMin)
	Generous  float64 // ratio in (IdealMax, GenerousMax]
	Oversized float64 // ratio in (GenerousMax, OversizedMax]
	TooSmall  float64 // ratio below TightMin
	Wasteful  float64 // ratio above OversizedMax
}

// DefaultCapacityBands returns the production capacity bands.
func DefaultCapacityBands() CapacityBands {
	return CapacityBands{
		TightMin:     0.8,
		IdealMin:     1.0,
		IdealMax:     1.5,
		GenerousMax:  2.0,
		OversizedMax: 3.0,
		Ideal:        1.0,
		Tight:        0.7,
		Generous:     0.8,
		Oversized:    0.5,
		TooSmall:     0.2,
		Wasteful:     0.1,
	}
}

// Config aggregates the tuning surface of the relevance pipeline.
// The values are hand-tuned defaults, not a calibrated model; changing a
// band or weight changes which of two close candidates wins and must be
// treated as a behavior change.
type Config struct {
	Weights       Weights
	Budget        BudgetBands
	Capacity      CapacityBands
	// ExplanationThreshold is the sub-score a signal must exceed to earn
	// its canned explanation sentence.
	ExplanationThreshold float64
}

// DefaultConfig returns the production relevance configuration.
func DefaultConfig() Config {
	return Config{
		Weights:              DefaultWeights(),
		Budget:               DefaultBudgetBands(),
		Capacity:             DefaultCapacityBands(),
		ExplanationThreshold: 0.7,
	}
}
