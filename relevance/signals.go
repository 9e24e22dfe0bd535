package relevance

import (
	"math"
	"sort"
	"strings"

	"github.com/poiesic/banquet/core"
)

const (
	// exactPhraseBonus is added when the full query appears verbatim in the
	// candidate text.
	exactPhraseBonus = 0.5

	// significantTokenLength is the minimum length (exclusive) for a token
	// to count toward keyword or detail matching.
	significantTokenLength = 3
)

// Score computes the sub-scores for every candidate against the query and
// its extracted parameters. Pure function, no I/O, deterministic.
//
// Conditional scores (budget, capacity, food type, venue type) are nil, not
// zero, when the corresponding parameter is absent from the query:
// "irrelevant to this query" is distinct from "poor match". Candidates with
// missing detail blobs score 0 on the type signals instead, since a package
// without food-type data cannot claim a food-type match.
func Score(query string, params *core.ExtractedParams, candidates []core.Candidate, cfg Config) []*core.ScoredCandidate {
	scored := make([]*core.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, &core.ScoredCandidate{
			Candidate: candidate,
			Scores:    scoreCandidate(query, params, candidate, cfg),
		})
	}
	return scored
}

func scoreCandidate(query string, params *core.ExtractedParams, candidate core.Candidate, cfg Config) core.SubScores {
	scores := core.SubScores{
		Similarity: clamp01(candidate.Similarity),
		Keyword:    KeywordScore(query, candidate.Package.MatchText()),
	}

	if params == nil {
		return scores
	}

	if params.BudgetMax != nil {
		s := BudgetScore(*params.BudgetMax, candidate.Package.PriceMin, candidate.Package.PriceMax, cfg.Budget)
		scores.Budget = &s
	}
	if params.CapacityMin != nil {
		s := CapacityScore(candidate.Package.Capacity, *params.CapacityMin, cfg.Capacity)
		scores.Capacity = &s
	}
	if params.FoodType != nil {
		s := DetailMatchScore(*params.FoodType, candidate.Package.CateringDetails)
		scores.FoodType = &s
	}
	if params.VenueType != nil {
		s := DetailMatchScore(*params.VenueType, candidate.Package.VenueDetails)
		scores.VenueType = &s
	}

	return scores
}

// KeywordScore measures lexical overlap between the query and the candidate
// text. Query tokens longer than three characters that appear in the
// candidate's token set count toward the base score, normalized by the query
// token count. An exact-phrase substring match adds a flat bonus. The result
// is clamped to [0, 1].
func KeywordScore(query, text string) float64 {
	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)

	queryTokens := strings.Fields(queryLower)
	if len(queryTokens) == 0 {
		return 0
	}

	textTokens := strings.Fields(textLower)
	textSet := make(map[string]bool, len(textTokens))
	for _, token := range textTokens {
		textSet[token] = true
	}

	matched := 0
	for _, token := range queryTokens {
		if len(token) > significantTokenLength && textSet[token] {
			matched++
		}
	}

	score := float64(matched) / float64(len(queryTokens))
	if strings.Contains(textLower, queryLower) {
		score += exactPhraseBonus
	}

	return clamp01(score)
}

// BudgetScore scores how well a maximum budget fits a price range: 1.0 when
// the budget falls inside [priceMin, priceMax], otherwise a banded decay on
// the relative distance between the budget and the range midpoint.
func BudgetScore(budgetMax, priceMin, priceMax float64, bands BudgetBands) float64 {
	if budgetMax >= priceMin && budgetMax <= priceMax {
		return 1.0
	}

	midpoint := (priceMin + priceMax) / 2
	if midpoint <= 0 {
		return bands.Floor
	}

	diff := math.Abs(budgetMax-midpoint) / midpoint
	for _, band := range bands.Bands {
		if diff <= band.MaxRelativeDiff {
			return band.Score
		}
	}
	return bands.Floor
}

// CapacityScore scores a candidate capacity against the expected guest
// count via the ratio capacity/guests, favoring slight oversizing over
// undersizing.
func CapacityScore(capacity, guests int, bands CapacityBands) float64 {
	if guests <= 0 {
		return bands.TooSmall
	}

	ratio := float64(capacity) / float64(guests)
	switch {
	case ratio >= bands.IdealMin && ratio <= bands.IdealMax:
		return bands.Ideal
	case ratio >= bands.TightMin && ratio < bands.IdealMin:
		return bands.Tight
	case ratio > bands.IdealMax && ratio <= bands.GenerousMax:
		return bands.Generous
	case ratio > bands.GenerousMax && ratio <= bands.OversizedMax:
		return bands.Oversized
	case ratio < bands.TightMin:
		return bands.TooSmall
	default:
		return bands.Wasteful
	}
}

// DetailMatchScore tests a requested type against a candidate's detail blob.
// A verbatim substring match scores 1.0; otherwise partial credit is the
// fraction of the requested type's significant words found anywhere in the
// blob. A missing blob scores 0.
func DetailMatchScore(requested string, details map[string]string) float64 {
	if len(details) == 0 {
		return 0
	}

	blob := serializeDetails(details)
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" {
		return 0
	}

	if strings.Contains(blob, requested) {
		return 1.0
	}

	words := strings.Fields(requested)
	significant := 0
	matched := 0
	for _, word := range words {
		if len(word) <= significantTokenLength {
			continue
		}
		significant++
		if strings.Contains(blob, word) {
			matched++
		}
	}
	if significant == 0 {
		return 0
	}

	return float64(matched) / float64(significant)
}

// serializeDetails flattens a detail map into a lowercase text blob.
// Keys are sorted so the result is deterministic.
func serializeDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(strings.ToLower(k))
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(details[k]))
		sb.WriteString(" ")
	}
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
