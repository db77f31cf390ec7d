package matching

import (
	"time"

	"github.com/lib/pq"
)

// SearchCriteria is what a couple asks for. ServiceType is required and
// normalized before anything else happens; every other field is a soft
// preference consumed only by scoring.
type SearchCriteria struct {
	ServiceType   string   `json:"service_type"`
	BudgetMin     *int     `json:"budget_min,omitempty"`
	BudgetMax     *int     `json:"budget_max,omitempty"`
	Cultures      []string `json:"cultures,omitempty"`
	Zone          string   `json:"zone,omitempty"`
	GuestCountMin *int     `json:"guest_count_min,omitempty"`
	GuestCountMax *int     `json:"guest_count_max,omitempty"`
	Languages     []string `json:"languages,omitempty"`
}

// ProviderCandidate is a provider row assembled per request: the base
// profile fields plus the enrichment facets (cultures, zones, portfolio
// count, aggregate rating). Never mutated after scoring.
type ProviderCandidate struct {
	ID               int64          `json:"id" db:"id"`
	BusinessName     string         `json:"business_name" db:"business_name"`
	AvatarURL        *string        `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio              *string        `json:"bio,omitempty" db:"bio"`
	ServiceType      string         `json:"service_type" db:"service_type"`
	BudgetMin        *int           `json:"budget_min,omitempty" db:"budget_min"`
	BudgetMax        *int           `json:"budget_max,omitempty" db:"budget_max"`
	Location         *string        `json:"location,omitempty" db:"location"`
	ExperienceYears  int            `json:"experience_years" db:"experience_years"`
	Languages        pq.StringArray `json:"languages" db:"languages"`
	GuestCapacityMin *int           `json:"guest_capacity_min,omitempty" db:"guest_capacity_min"`
	GuestCapacityMax *int           `json:"guest_capacity_max,omitempty" db:"guest_capacity_max"`
	ResponseRate     *float64       `json:"response_rate,omitempty" db:"response_rate"`

	// Enrichment facets
	Cultures       pq.StringArray `json:"cultures" db:"cultures"`
	Zones          pq.StringArray `json:"zones" db:"zones"`
	PortfolioCount int            `json:"portfolio_count" db:"portfolio_count"`
	AverageRating  float64        `json:"average_rating" db:"average_rating"`
	ReviewCount    int            `json:"review_count" db:"review_count"`
}

// ScoreBreakdown holds the five named sub-scores. They always sum to the
// total score; the same constants drive scoring and explanations.
type ScoreBreakdown struct {
	Cultural   float64 `json:"cultural"`
	Budget     float64 `json:"budget"`
	Reputation float64 `json:"reputation"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
}

// Total returns the sum of the sub-scores.
func (b ScoreBreakdown) Total() float64 {
	return b.Cultural + b.Budget + b.Reputation + b.Experience + b.Location
}

// ScoredMatch is one ranked result.
type ScoredMatch struct {
	ProviderID  int64              `json:"provider_id"`
	Provider    *ProviderCandidate `json:"provider"`
	Score       float64            `json:"score"`
	Rank        int                `json:"rank"`
	Breakdown   ScoreBreakdown     `json:"breakdown"`
	Explanation string             `json:"explanation"`
}

// ProviderRating is the public aggregate pulled during enrichment.
type ProviderRating struct {
	ProviderID    int64   `db:"provider_id"`
	AverageRating float64 `db:"average_rating"`
	ReviewCount   int     `db:"review_count"`
}

// HistoryRecord is the immutable snapshot of what the couple saw: the
// criteria as searched and the complete ranked result set. Written once
// per matching request, never updated.
type HistoryRecord struct {
	ID             string         `json:"id" db:"id"`
	CoupleID       int64          `json:"couple_id" db:"couple_id"`
	ConversationID *string        `json:"conversation_id,omitempty" db:"conversation_id"`
	ServiceType    string         `json:"service_type" db:"service_type"`
	Criteria       SearchCriteria `json:"search_criteria"`
	Results        []*ScoredMatch `json:"results"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}
