package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// One table for the weight ceilings and the explanation cut-points, so
// what is scored and what is explained cannot drift apart.
const (
	CulturalCeiling   = 30.0
	BudgetCeiling     = 20.0
	ReputationCeiling = 20.0
	ExperienceCeiling = 10.0
	LocationCeiling   = 10.0

	culturalExplainAbove   = 20.0
	budgetExplainAbove     = 15.0
	reputationExplainAbove = 15.0
	experienceExplainAbove = 7.0

	// Any budget overlap is worth at least the floor; the remainder
	// scales with how much of the smaller range is covered.
	budgetOverlapFloor = 8.0

	// Review count n contributes confidence n/(n+pivot).
	reputationConfidencePivot = 5.0

	// Experience saturates: 10*(1-exp(-years/saturation)).
	experienceSaturationYears = 7.0

	explanationSeparator = " · "
	genericExplanation   = "prestataire qualifié"
)

// ScoringEngine computes deterministic weighted scores for enriched
// candidates. Pure in-memory computation: no I/O, no clock, no
// randomness, so identical inputs always produce identical output.
type ScoringEngine struct{}

func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// ScoreAndRank scores every candidate, sorts descending by total score
// (stable, so ties keep input order) and assigns dense ranks 1..N.
// No candidate is dropped; missing facets just contribute 0.
func (e *ScoringEngine) ScoreAndRank(criteria *SearchCriteria, candidates []*ProviderCandidate) []*ScoredMatch {
	matches := make([]*ScoredMatch, 0, len(candidates))

	for _, c := range candidates {
		breakdown := e.scoreCandidate(criteria, c)
		matches = append(matches, &ScoredMatch{
			ProviderID:  c.ID,
			Provider:    c,
			Score:       breakdown.Total(),
			Breakdown:   breakdown,
			Explanation: buildExplanation(breakdown, c),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	for i, m := range matches {
		m.Rank = i + 1
	}

	return matches
}

func (e *ScoringEngine) scoreCandidate(criteria *SearchCriteria, c *ProviderCandidate) ScoreBreakdown {
	return ScoreBreakdown{
		Cultural:   e.culturalScore(criteria.Cultures, c.Cultures),
		Budget:     e.budgetScore(criteria, c),
		Reputation: e.reputationScore(c.AverageRating, c.ReviewCount),
		Experience: e.experienceScore(c.ExperienceYears),
		Location:   e.locationScore(criteria.Zone, c.Zones),
	}
}

// culturalScore scales with the fraction of the requested cultures the
// provider declares. No request or no overlap means 0; covering the
// whole requested set reaches the ceiling.
func (e *ScoringEngine) culturalScore(requested []string, declared []string) float64 {
	requestedSet := toSet(requested)
	if len(requestedSet) == 0 {
		return 0
	}

	declaredSet := toSet(declared)
	matched := 0
	for culture := range requestedSet {
		if declaredSet[culture] {
			matched++
		}
	}

	return CulturalCeiling * float64(matched) / float64(len(requestedSet))
}

// budgetScore applies the full bidirectional interval-overlap check that
// retrieval deliberately defers: requesterMin <= providerMax AND
// providerMin <= requesterMax. Disjoint ranges score 0. Overlapping
// ranges score the floor plus a share that grows with how much of the
// smaller range is covered, reaching the ceiling on full containment.
func (e *ScoringEngine) budgetScore(criteria *SearchCriteria, c *ProviderCandidate) float64 {
	if criteria.BudgetMin == nil && criteria.BudgetMax == nil {
		return 0
	}
	if c.BudgetMin == nil && c.BudgetMax == nil {
		return 0
	}

	reqMin, reqMax := boundsOf(criteria.BudgetMin, criteria.BudgetMax)
	provMin, provMax := boundsOf(c.BudgetMin, c.BudgetMax)

	if reqMin > provMax || provMin > reqMax {
		return 0
	}

	overlap := math.Min(reqMax, provMax) - math.Max(reqMin, provMin)
	if overlap < 0 {
		return 0
	}
	smaller := math.Min(reqMax-reqMin, provMax-provMin)

	ratio := 1.0
	if smaller > 0 && !math.IsInf(smaller, 1) {
		ratio = clamp(overlap/smaller, 0, 1)
	}

	return budgetOverlapFloor + (BudgetCeiling-budgetOverlapFloor)*ratio
}

// reputationScore is monotone in both rating and review count; the count
// acts as a confidence modifier so a 5.0 from one review cannot outrank
// a 4.8 from fifty.
func (e *ScoringEngine) reputationScore(rating float64, reviewCount int) float64 {
	if rating <= 0 || reviewCount <= 0 {
		return 0
	}

	rating = clamp(rating, 0, 5)
	confidence := float64(reviewCount) / (float64(reviewCount) + reputationConfidencePivot)

	return math.Min(ReputationCeiling, 4*rating*confidence)
}

// experienceScore saturates rather than growing without bound.
func (e *ScoringEngine) experienceScore(years int) float64 {
	if years <= 0 {
		return 0
	}
	return ExperienceCeiling * (1 - math.Exp(-float64(years)/experienceSaturationYears))
}

// locationScore is the one step-function sub-score: full credit when the
// provider covers the requested zone, nothing otherwise.
func (e *ScoringEngine) locationScore(zone string, zones []string) float64 {
	zone = strings.ToLower(strings.TrimSpace(zone))
	if zone == "" {
		return 0
	}

	for _, z := range zones {
		if strings.ToLower(strings.TrimSpace(z)) == zone {
			return LocationCeiling
		}
	}

	return 0
}

// buildExplanation derives a short human-readable string from the
// breakdown using the shared thresholds. Purely presentational; it never
// feeds back into scoring.
func buildExplanation(b ScoreBreakdown, c *ProviderCandidate) string {
	var parts []string

	if b.Cultural > culturalExplainAbove {
		parts = append(parts, "excellente affinité culturelle")
	}
	if b.Budget > budgetExplainAbove {
		parts = append(parts, "budget bien aligné")
	}
	if b.Reputation > reputationExplainAbove {
		parts = append(parts, fmt.Sprintf("très bien noté (%.1f/5)", c.AverageRating))
	}
	if b.Experience > experienceExplainAbove {
		parts = append(parts, fmt.Sprintf("%d ans d'expérience", c.ExperienceYears))
	}
	if b.Location == LocationCeiling {
		parts = append(parts, "intervient dans votre région")
	}

	if len(parts) == 0 {
		return genericExplanation
	}

	return strings.Join(parts, explanationSeparator)
}

// boundsOf converts optional integer bounds into a closed float interval,
// treating a missing min as 0 and a missing max as unbounded.
func boundsOf(min, max *int) (float64, float64) {
	lo := 0.0
	hi := math.Inf(1)
	if min != nil {
		lo = float64(*min)
	}
	if max != nil {
		hi = float64(*max)
	}
	return lo, hi
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
