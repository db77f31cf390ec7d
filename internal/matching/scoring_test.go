package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testCriteria() *SearchCriteria {
	return &SearchCriteria{
		ServiceType: "photographe",
		BudgetMin:   intPtr(1000),
		BudgetMax:   intPtr(3000),
		Cultures:    []string{"marocaine", "française"},
		Zone:        "ile-de-france",
	}
}

func testCandidate(id int64) *ProviderCandidate {
	return &ProviderCandidate{
		ID:              id,
		BusinessName:    "Studio Lumière",
		ServiceType:     "photographe",
		BudgetMin:       intPtr(1500),
		BudgetMax:       intPtr(2500),
		ExperienceYears: 15,
		Cultures:        []string{"marocaine", "française"},
		Zones:           []string{"ile-de-france"},
		AverageRating:   4.8,
		ReviewCount:     50,
	}
}

func TestScoreAndRankDeterministic(t *testing.T) {
	engine := NewScoringEngine()
	criteria := testCriteria()
	candidates := []*ProviderCandidate{testCandidate(1), testCandidate(2), testCandidate(3)}

	first := engine.ScoreAndRank(criteria, candidates)
	second := engine.ScoreAndRank(criteria, candidates)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ProviderID, second[i].ProviderID)
		assert.Equal(t, first[i].Score, second[i].Score)
		assert.Equal(t, first[i].Rank, second[i].Rank)
		assert.Equal(t, first[i].Explanation, second[i].Explanation)
	}
}

func TestScoreBounds(t *testing.T) {
	engine := NewScoringEngine()
	criteria := testCriteria()

	candidates := []*ProviderCandidate{
		testCandidate(1),
		{ID: 2, ServiceType: "photographe"},
		{ID: 3, ServiceType: "photographe", BudgetMin: intPtr(5000), BudgetMax: intPtr(9000)},
	}

	for _, m := range engine.ScoreAndRank(criteria, candidates) {
		assert.GreaterOrEqual(t, m.Score, 0.0)
		assert.LessOrEqual(t, m.Score, 90.0)
		assert.InDelta(t, m.Score, m.Breakdown.Total(), 1e-9)
		assert.LessOrEqual(t, m.Breakdown.Cultural, CulturalCeiling)
		assert.LessOrEqual(t, m.Breakdown.Budget, BudgetCeiling)
		assert.LessOrEqual(t, m.Breakdown.Reputation, ReputationCeiling)
		assert.LessOrEqual(t, m.Breakdown.Experience, ExperienceCeiling)
		assert.LessOrEqual(t, m.Breakdown.Location, LocationCeiling)
	}
}

func TestRanksAreDenseAndMonotone(t *testing.T) {
	engine := NewScoringEngine()
	criteria := testCriteria()

	strong := testCandidate(1)
	weak := &ProviderCandidate{ID: 2, ServiceType: "photographe"}
	middling := &ProviderCandidate{
		ID:              3,
		ServiceType:     "photographe",
		BudgetMin:       intPtr(1000),
		BudgetMax:       intPtr(3000),
		ExperienceYears: 3,
	}

	matches := engine.ScoreAndRank(criteria, []*ProviderCandidate{weak, strong, middling})

	require.Len(t, matches, 3)
	for i, m := range matches {
		assert.Equal(t, i+1, m.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, matches[i-1].Score, m.Score)
		}
	}
	assert.Equal(t, int64(1), matches[0].ProviderID)
}

func TestStableOrderOnTies(t *testing.T) {
	engine := NewScoringEngine()
	criteria := testCriteria()

	// Identical candidates apart from ID score identically.
	a := testCandidate(10)
	b := testCandidate(20)
	c := testCandidate(30)

	matches := engine.ScoreAndRank(criteria, []*ProviderCandidate{a, b, c})

	require.Len(t, matches, 3)
	assert.Equal(t, []int64{10, 20, 30},
		[]int64{matches[0].ProviderID, matches[1].ProviderID, matches[2].ProviderID})
	assert.Equal(t, matches[0].Score, matches[1].Score)
}

func TestCulturalScoreScalesWithOverlap(t *testing.T) {
	engine := NewScoringEngine()

	full := engine.culturalScore([]string{"marocaine", "française"}, []string{"marocaine", "française", "italienne"})
	half := engine.culturalScore([]string{"marocaine", "française"}, []string{"marocaine"})
	none := engine.culturalScore([]string{"marocaine"}, []string{"italienne"})

	assert.Equal(t, CulturalCeiling, full)
	assert.Equal(t, CulturalCeiling/2, half)
	assert.Equal(t, 0.0, none)
	assert.Equal(t, 0.0, engine.culturalScore(nil, []string{"marocaine"}))
}

func TestCulturalScoreIsCaseInsensitive(t *testing.T) {
	engine := NewScoringEngine()
	score := engine.culturalScore([]string{"Marocaine"}, []string{"  marocaine "})
	assert.Equal(t, CulturalCeiling, score)
}

func TestBudgetScore(t *testing.T) {
	engine := NewScoringEngine()

	tests := []struct {
		name      string
		criteria  *SearchCriteria
		candidate *ProviderCandidate
		check     func(t *testing.T, score float64)
	}{
		{
			name:      "full containment reaches ceiling",
			criteria:  &SearchCriteria{BudgetMin: intPtr(1000), BudgetMax: intPtr(5000)},
			candidate: &ProviderCandidate{BudgetMin: intPtr(2000), BudgetMax: intPtr(3000)},
			check: func(t *testing.T, score float64) {
				assert.Equal(t, BudgetCeiling, score)
			},
		},
		{
			name:      "disjoint scores zero",
			criteria:  &SearchCriteria{BudgetMin: intPtr(1000), BudgetMax: intPtr(2000)},
			candidate: &ProviderCandidate{BudgetMin: intPtr(5000), BudgetMax: intPtr(9000)},
			check: func(t *testing.T, score float64) {
				assert.Equal(t, 0.0, score)
			},
		},
		{
			name:      "partial overlap lands between floor and ceiling",
			criteria:  &SearchCriteria{BudgetMin: intPtr(1000), BudgetMax: intPtr(3000)},
			candidate: &ProviderCandidate{BudgetMin: intPtr(2000), BudgetMax: intPtr(6000)},
			check: func(t *testing.T, score float64) {
				assert.Greater(t, score, 0.0)
				assert.Less(t, score, BudgetCeiling)
			},
		},
		{
			name:      "requester without budget scores zero",
			criteria:  &SearchCriteria{},
			candidate: &ProviderCandidate{BudgetMin: intPtr(1000), BudgetMax: intPtr(2000)},
			check: func(t *testing.T, score float64) {
				assert.Equal(t, 0.0, score)
			},
		},
		{
			name:      "provider without budget scores zero",
			criteria:  &SearchCriteria{BudgetMin: intPtr(1000), BudgetMax: intPtr(2000)},
			candidate: &ProviderCandidate{},
			check: func(t *testing.T, score float64) {
				assert.Equal(t, 0.0, score)
			},
		},
		{
			name:      "open ended requester max still overlaps",
			criteria:  &SearchCriteria{BudgetMin: intPtr(1000)},
			candidate: &ProviderCandidate{BudgetMin: intPtr(2000), BudgetMax: intPtr(3000)},
			check: func(t *testing.T, score float64) {
				assert.Equal(t, BudgetCeiling, score)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, engine.budgetScore(tt.criteria, tt.candidate))
		})
	}
}

func TestReputationScoreConfidence(t *testing.T) {
	engine := NewScoringEngine()

	// A perfect rating from one review must not beat a strong rating
	// backed by many reviews.
	oneReview := engine.reputationScore(5.0, 1)
	manyReviews := engine.reputationScore(4.8, 50)

	assert.Greater(t, manyReviews, oneReview)
	assert.LessOrEqual(t, manyReviews, ReputationCeiling)
	assert.Equal(t, 0.0, engine.reputationScore(0, 10))
	assert.Equal(t, 0.0, engine.reputationScore(4.5, 0))
}

func TestReputationScoreMonotoneInReviewCount(t *testing.T) {
	engine := NewScoringEngine()

	previous := 0.0
	for _, n := range []int{1, 5, 20, 100, 1000} {
		score := engine.reputationScore(4.5, n)
		assert.Greater(t, score, previous)
		previous = score
	}
}

func TestExperienceScoreSaturates(t *testing.T) {
	engine := NewScoringEngine()

	assert.Equal(t, 0.0, engine.experienceScore(0))
	assert.Equal(t, 0.0, engine.experienceScore(-3))

	five := engine.experienceScore(5)
	twenty := engine.experienceScore(20)
	forty := engine.experienceScore(40)

	assert.Greater(t, twenty, five)
	assert.Greater(t, forty, twenty)
	assert.Less(t, forty, ExperienceCeiling)
	// Doubling late-career experience barely moves the score.
	assert.Less(t, forty-twenty, twenty-five)
}

func TestLocationScoreIsBinary(t *testing.T) {
	engine := NewScoringEngine()

	assert.Equal(t, LocationCeiling, engine.locationScore("Ile-De-France", []string{"ile-de-france", "normandie"}))
	assert.Equal(t, 0.0, engine.locationScore("bretagne", []string{"ile-de-france"}))
	assert.Equal(t, 0.0, engine.locationScore("", []string{"ile-de-france"}))
}

func TestExplanationThresholds(t *testing.T) {
	engine := NewScoringEngine()
	criteria := testCriteria()

	matches := engine.ScoreAndRank(criteria, []*ProviderCandidate{testCandidate(1)})
	require.Len(t, matches, 1)

	explanation := matches[0].Explanation
	assert.Contains(t, explanation, "excellente affinité culturelle")
	assert.Contains(t, explanation, "budget bien aligné")
	assert.Contains(t, explanation, "très bien noté (4.8/5)")
	assert.Contains(t, explanation, "15 ans d'expérience")
	assert.Contains(t, explanation, "intervient dans votre région")
}

func TestExplanationFallsBackToGeneric(t *testing.T) {
	engine := NewScoringEngine()

	matches := engine.ScoreAndRank(
		&SearchCriteria{ServiceType: "photographe"},
		[]*ProviderCandidate{{ID: 1, ServiceType: "photographe"}},
	)

	require.Len(t, matches, 1)
	assert.Equal(t, "prestataire qualifié", matches[0].Explanation)
}
