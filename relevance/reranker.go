package relevance

import (
	"slices"

	"github.com/poiesic/banquet/core"
)

// Canned explanation sentences, one per signal that clears the threshold.
const (
	explainSimilarity = "Closely matches what you're looking for"
	explainKeyword    = "Mentions your search terms directly"
	explainBudget     = "Matches your budget"
	explainCapacity   = "Perfect capacity for your guest count"
	explainFoodType   = "Serves the food style you asked for"
	explainVenueType  = "Matches your preferred venue style"
	explainGeneric    = "Related to your search"
)

// Rerank combines each candidate's sub-scores into a final score using the
// configured weights, attaches ranking explanations, and sorts the slice.
//
// Terms for nil sub-scores are omitted from the sum, not zeroed, which keeps
// final scores comparable in magnitude across queries with differing amounts
// of structured information. The final score is monotonically non-decreasing
// in every individual sub-score.
//
// Sort order: final score descending, ties broken by similarity descending,
// then candidate ID ascending for determinism. The input slice is sorted in
// place and returned.
func Rerank(scored []*core.ScoredCandidate, cfg Config) []*core.ScoredCandidate {
	for _, sc := range scored {
		sc.FinalScore = combine(sc.Scores, cfg.Weights)
		sc.Explanations = explain(sc.Scores, cfg.ExplanationThreshold)
	}

	slices.SortStableFunc(scored, func(a, b *core.ScoredCandidate) int {
		if a.FinalScore != b.FinalScore {
			if a.FinalScore > b.FinalScore {
				return -1
			}
			return 1
		}
		if a.Similarity != b.Similarity {
			if a.Similarity > b.Similarity {
				return -1
			}
			return 1
		}
		if a.Package.Id != b.Package.Id {
			if a.Package.Id < b.Package.Id {
				return -1
			}
			return 1
		}
		return 0
	})

	return scored
}

// combine computes the weighted sum over the active signals.
func combine(s core.SubScores, w Weights) float64 {
	final := w.Similarity*s.Similarity + w.Keyword*s.Keyword
	if s.Budget != nil {
		final += w.Budget * *s.Budget
	}
	if s.Capacity != nil {
		final += w.Capacity * *s.Capacity
	}
	if s.FoodType != nil {
		final += w.FoodType * *s.FoodType
	}
	if s.VenueType != nil {
		final += w.VenueType * *s.VenueType
	}
	return final
}

// explain emits one canned sentence per signal above the threshold.
// Every candidate gets at least one explanation; when nothing clears the
// bar a single generic sentence is used.
func explain(s core.SubScores, threshold float64) []string {
	var explanations []string

	if s.Similarity > threshold {
		explanations = append(explanations, explainSimilarity)
	}
	if s.Keyword > threshold {
		explanations = append(explanations, explainKeyword)
	}
	if s.Budget != nil && *s.Budget > threshold {
		explanations = append(explanations, explainBudget)
	}
	if s.Capacity != nil && *s.Capacity > threshold {
		explanations = append(explanations, explainCapacity)
	}
	if s.FoodType != nil && *s.FoodType > threshold {
		explanations = append(explanations, explainFoodType)
	}
	if s.VenueType != nil && *s.VenueType > threshold {
		explanations = append(explanations, explainVenueType)
	}

	if len(explanations) == 0 {
		explanations = []string{explainGeneric}
	}
	return explanations
}
