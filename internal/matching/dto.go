package matching

import "time"

// MatchRequest is the POST /matching payload. CoupleID identifies the
// requester; the criteria carry the service type and soft preferences.
type MatchRequest struct {
	CoupleID       int64          `json:"couple_id" validate:"required"`
	ConversationID *string        `json:"conversation_id,omitempty"`
	SearchCriteria SearchCriteria `json:"search_criteria"`
}

// Suggestions is returned instead of matches when every provider was
// filtered out: a human-readable message plus a small sample of
// providers in the same service category.
type Suggestions struct {
	Message                  string               `json:"message"`
	AlternativeProviders     []*ProviderCandidate `json:"alternative_providers"`
	TotalProvidersForService int                  `json:"total_providers_for_service"`
	ServiceType              string               `json:"service_type"`
}

// MatchResponse is the success envelope. Matches is the top slice of
// AllMatches; both come from the same ranked ordering. On an empty
// result Matches is an empty array, AllMatches and CreatedAt are
// omitted, and Suggestions is populated.
type MatchResponse struct {
	Matches         []*ScoredMatch `json:"matches"`
	AllMatches      []*ScoredMatch `json:"all_matches,omitempty"`
	TotalCandidates int            `json:"total_candidates"`
	SearchCriteria  SearchCriteria `json:"search_criteria"`
	CreatedAt       *time.Time     `json:"created_at,omitempty"`
	Suggestions     *Suggestions   `json:"suggestions,omitempty"`
}
