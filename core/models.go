package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Package represents one service package offered on the marketplace:
// a venue, a catering offer, an entertainment act, or a rental bundle.
// Detail maps are nil when the package does not provide that service type.
type Package struct {
	Id          ID
	Name        string
	Description string
	SearchText  string // Denormalized text blob used for keyword matching
	Location    string
	PriceMin    float64
	PriceMax    float64
	Capacity    int

	VenueDetails         map[string]string
	CateringDetails      map[string]string
	EntertainmentDetails map[string]string

	Vector     []float32 // Embedding vector for semantic search (populated by processors)
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// MatchText returns the text used for keyword matching: SearchText when
// present, otherwise name and description concatenated.
func (p *Package) MatchText() string {
	if p.SearchText != "" {
		return p.SearchText
	}
	return p.Name + " " + p.Description
}

// AveragePrice returns the midpoint of the package's price range.
func (p *Package) AveragePrice() float64 {
	return (p.PriceMin + p.PriceMax) / 2
}

// PriceTier classifies packages into coarse price buckets for diversification.
type PriceTier string

const (
	TierBudget   PriceTier = "budget"
	TierMidRange PriceTier = "mid-range"
	TierPremium  PriceTier = "premium"
	TierLuxury   PriceTier = "luxury"
)

// Price tier breakpoints, applied to the price range midpoint.
const (
	tierBudgetMax   = 2000
	tierMidRangeMax = 5000
	tierPremiumMax  = 10000
)

// Tier returns the package's price tier based on its average price.
func (p *Package) Tier() PriceTier {
	avg := p.AveragePrice()
	switch {
	case avg < tierBudgetMax:
		return TierBudget
	case avg < tierMidRangeMax:
		return TierMidRange
	case avg < tierPremiumMax:
		return TierPremium
	default:
		return TierLuxury
	}
}

// VenueTypeTagUnknown is the venue type tag for packages without venue data.
const VenueTypeTagUnknown = "unknown"

// VenueTypeTag returns the package's venue type for diversification,
// or "unknown" when no venue details are present.
func (p *Package) VenueTypeTag() string {
	if p.VenueDetails == nil {
		return VenueTypeTagUnknown
	}
	if t, ok := p.VenueDetails["type"]; ok && t != "" {
		return strings.ToLower(t)
	}
	return VenueTypeTagUnknown
}

// Candidate is a package as returned by the retrieval step, carrying the
// vector similarity score against the query. Candidates are supplied fresh
// per request and never mutated by the relevance pipeline.
type Candidate struct {
	Package    *Package
	Similarity float64 // 0..1, from vector search
}

// ExtractedParams holds structured hints parsed from a free-text query.
// All fields are nullable: nil means the query carried no such hint,
// which is distinct from an explicit value.
type ExtractedParams struct {
	BudgetMax   *float64
	CapacityMin *int
	Location    *string
	FoodType    *string
	EventType   *string
	VenueType   *string
}

// Merge returns a copy of p with any non-nil fields of hints taking
// precedence. Either argument may be nil.
func (p *ExtractedParams) Merge(hints *ExtractedParams) *ExtractedParams {
	merged := &ExtractedParams{}
	if p != nil {
		*merged = *p
	}
	if hints == nil {
		return merged
	}
	if hints.BudgetMax != nil {
		merged.BudgetMax = hints.BudgetMax
	}
	if hints.CapacityMin != nil {
		merged.CapacityMin = hints.CapacityMin
	}
	if hints.Location != nil {
		merged.Location = hints.Location
	}
	if hints.FoodType != nil {
		merged.FoodType = hints.FoodType
	}
	if hints.EventType != nil {
		merged.EventType = hints.EventType
	}
	if hints.VenueType != nil {
		merged.VenueType = hints.VenueType
	}
	return merged
}

// IsEmpty reports whether no structured hint is present.
func (p *ExtractedParams) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.BudgetMax == nil && p.CapacityMin == nil && p.Location == nil &&
		p.FoodType == nil && p.EventType == nil && p.VenueType == nil
}

// QueryVariant is one alternate phrasing of a search intent, used for
// multi-query retrieval. Variants are siblings; none is authoritative.
type QueryVariant string

// SubScores records the independently computed relevance components for one
// candidate. A nil conditional score means "no signal available" for this
// query and must be omitted from the weighted sum, not treated as zero.
type SubScores struct {
	Similarity float64
	Keyword    float64
	Budget     *float64
	Capacity   *float64
	FoodType   *float64
	VenueType  *float64
}

// ScoredCandidate is a candidate with its sub-scores, combined final score,
// and human-readable ranking explanations. This is the unit the reranker
// sorts and the diversifier selects from.
type ScoredCandidate struct {
	Candidate
	Scores       SubScores
	FinalScore   float64
	Explanations []string
}
