package matching

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Service runs the matching pipeline: normalize, validate the requester,
// retrieve, score, rank, snapshot. One call per couple search.
type Service interface {
	Match(ctx context.Context, req *MatchRequest) (*MatchResponse, error)
	History(ctx context.Context, coupleID int64, limit int) ([]*HistoryRecord, error)
}

type service struct {
	repo       Repository
	retriever  *Retriever
	engine     *ScoringEngine
	topN       int
	sampleSize int
}

func NewService(repo Repository, topN, sampleSize int) Service {
	return &service{
		repo:       repo,
		retriever:  NewRetriever(repo),
		engine:     NewScoringEngine(),
		topN:       topN,
		sampleSize: sampleSize,
	}
}

func (s *service) Match(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	criteria := req.SearchCriteria
	criteria.ServiceType = NormalizeServiceType(criteria.ServiceType)
	if criteria.ServiceType == "" {
		RecordRequest("invalid")
		return nil, ErrMissingServiceType
	}

	exists, err := s.repo.CoupleExists(ctx, req.CoupleID)
	if err != nil {
		RecordRequest("error")
		return nil, err
	}
	if !exists {
		RecordRequest("not_found")
		return nil, ErrCoupleNotFound
	}

	candidates, err := s.retriever.Retrieve(ctx, criteria.ServiceType, criteria.BudgetMax)
	if err != nil {
		RecordRequest("error")
		return nil, err
	}

	RecordCandidateCount(len(candidates))

	if len(candidates) == 0 {
		RecordRequest("empty")
		return &MatchResponse{
			Matches:         []*ScoredMatch{},
			TotalCandidates: 0,
			SearchCriteria:  criteria,
			Suggestions:     s.buildSuggestions(ctx, criteria.ServiceType),
		}, nil
	}

	matches := s.engine.ScoreAndRank(&criteria, candidates)
	for _, m := range matches {
		RecordScore(m.Score)
	}

	top := matches
	if len(top) > s.topN {
		top = top[:s.topN]
	}

	createdAt := time.Now().UTC()
	s.persistHistory(ctx, req, criteria, matches, createdAt)

	RecordRequest("success")
	return &MatchResponse{
		Matches:         top,
		AllMatches:      matches,
		TotalCandidates: len(matches),
		SearchCriteria:  criteria,
		CreatedAt:       &createdAt,
	}, nil
}

// buildSuggestions assembles the empty-result guidance. Both lookups are
// best effort: if they fail the response still carries the message with
// zero alternatives.
func (s *service) buildSuggestions(ctx context.Context, serviceType string) *Suggestions {
	total, err := s.repo.CountProvidersByService(ctx, serviceType)
	if err != nil {
		log.Printf("matching: suggestion count failed for %q: %v", serviceType, err)
		total = 0
	}

	sample, err := s.repo.SampleProvidersByService(ctx, serviceType, s.sampleSize)
	if err != nil {
		log.Printf("matching: suggestion sample failed for %q: %v", serviceType, err)
		sample = nil
	}
	if sample == nil {
		sample = []*ProviderCandidate{}
	}

	return &Suggestions{
		Message: fmt.Sprintf(
			"Aucun prestataire ne correspond exactement à vos critères, mais %d prestataires « %s » sont disponibles. Essayez d'élargir votre budget ou votre zone.",
			total, serviceType,
		),
		AlternativeProviders:     sample,
		TotalProvidersForService: total,
		ServiceType:              serviceType,
	}
}

// persistHistory writes the snapshot best effort. A failure is logged and
// counted but never propagated: the couple already has their results.
func (s *service) persistHistory(ctx context.Context, req *MatchRequest, criteria SearchCriteria, matches []*ScoredMatch, createdAt time.Time) {
	record := &HistoryRecord{
		ID:             uuid.NewString(),
		CoupleID:       req.CoupleID,
		ConversationID: req.ConversationID,
		ServiceType:    criteria.ServiceType,
		Criteria:       criteria,
		Results:        matches,
		CreatedAt:      createdAt,
	}

	if err := s.repo.InsertHistory(ctx, record); err != nil {
		log.Printf("matching: history write failed for couple %d: %v", req.CoupleID, err)
		RecordHistoryWriteFailure()
	}
}

func (s *service) History(ctx context.Context, coupleID int64, limit int) ([]*HistoryRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListHistory(ctx, coupleID, limit)
}
