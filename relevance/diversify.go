package relevance

import (
	"github.com/poiesic/banquet/core"
)

const (
	// headProtectCount is how many top-ranked candidates are admitted
	// unconditionally, protecting head relevance.
	headProtectCount = 3

	// diversitySoftCap is the fraction of the target slots that may be
	// filled with repeat tiers/venue types before repeats are deferred.
	diversitySoftCap = 0.8
)

// Diversify selects the final top-k from a score-sorted list so that no
// single venue type or price tier dominates the page, while still
// respecting the ranking.
//
// The top three ranked candidates are always admitted. Each subsequent
// candidate is admitted if it introduces a new price tier or venue type;
// otherwise it is admitted only while fewer than 80% of the k slots are
// filled. Remaining slots are backfilled with the highest-ranked skipped
// candidates in rank order.
//
// Guarantees: the output is a duplicate-free subset of the input with
// length min(k, len(ranked)), and the top three inputs are always present
// when k >= 3. A list no longer than k is returned unchanged.
//
// Returns ErrInvalidLimit if k <= 0, since that indicates a caller bug.
func Diversify(ranked []*core.ScoredCandidate, k int) ([]*core.ScoredCandidate, error) {
	if k <= 0 {
		return nil, ErrInvalidLimit
	}

	if len(ranked) <= k {
		return ranked, nil
	}

	selected := make([]*core.ScoredCandidate, 0, k)
	skipped := make([]*core.ScoredCandidate, 0, len(ranked))
	seenTiers := make(map[core.PriceTier]bool)
	seenVenueTypes := make(map[string]bool)
	softCap := int(float64(k) * diversitySoftCap)

	admit := func(sc *core.ScoredCandidate) {
		selected = append(selected, sc)
		seenTiers[sc.Package.Tier()] = true
		seenVenueTypes[sc.Package.VenueTypeTag()] = true
	}

	for i, sc := range ranked {
		if len(selected) == k {
			break
		}

		if i < headProtectCount {
			admit(sc)
			continue
		}

		newTier := !seenTiers[sc.Package.Tier()]
		newVenue := !seenVenueTypes[sc.Package.VenueTypeTag()]
		if newTier || newVenue || len(selected) < softCap {
			admit(sc)
			continue
		}

		skipped = append(skipped, sc)
	}

	// Backfill with the best skipped candidates, ignoring diversity.
	for _, sc := range skipped {
		if len(selected) == k {
			break
		}
		selected = append(selected, sc)
	}

	return selected, nil
}
