package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository for pipeline tests.
type fakeRepository struct {
	couples    map[int64]bool
	candidates []*ProviderCandidate

	joinedErr  error
	basicErr   error
	historyErr error

	cultures map[int64][]string
	zones    map[int64][]string
	counts   map[int64]int
	ratings  map[int64]ProviderRating

	totalForService int
	sample          []*ProviderCandidate

	insertedHistory []*HistoryRecord
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		couples:  map[int64]bool{42: true},
		cultures: map[int64][]string{},
		zones:    map[int64][]string{},
		counts:   map[int64]int{},
		ratings:  map[int64]ProviderRating{},
	}
}

func (f *fakeRepository) FindCandidates(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error) {
	if f.joinedErr != nil {
		return nil, f.joinedErr
	}
	return f.filter(serviceType, budgetMax), nil
}

func (f *fakeRepository) FindCandidatesBasic(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error) {
	if f.basicErr != nil {
		return nil, f.basicErr
	}

	// Strip facets like the basic query does.
	var out []*ProviderCandidate
	for _, c := range f.filter(serviceType, budgetMax) {
		stripped := *c
		stripped.Cultures = nil
		stripped.Zones = nil
		stripped.PortfolioCount = 0
		stripped.AverageRating = 0
		stripped.ReviewCount = 0
		out = append(out, &stripped)
	}
	return out, nil
}

func (f *fakeRepository) filter(serviceType string, budgetMax *int) []*ProviderCandidate {
	var out []*ProviderCandidate
	for _, c := range f.candidates {
		if c.ServiceType != serviceType {
			continue
		}
		if budgetMax != nil && c.BudgetMin != nil && *c.BudgetMin > *budgetMax {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out
}

func (f *fakeRepository) CulturesByProvider(ctx context.Context, ids []int64) (map[int64][]string, error) {
	return f.cultures, nil
}

func (f *fakeRepository) ZonesByProvider(ctx context.Context, ids []int64) (map[int64][]string, error) {
	return f.zones, nil
}

func (f *fakeRepository) PortfolioCountsByProvider(ctx context.Context, ids []int64) (map[int64]int, error) {
	return f.counts, nil
}

func (f *fakeRepository) RatingsByProvider(ctx context.Context, ids []int64) (map[int64]ProviderRating, error) {
	return f.ratings, nil
}

func (f *fakeRepository) CountProvidersByService(ctx context.Context, serviceType string) (int, error) {
	return f.totalForService, nil
}

func (f *fakeRepository) SampleProvidersByService(ctx context.Context, serviceType string, limit int) ([]*ProviderCandidate, error) {
	return f.sample, nil
}

func (f *fakeRepository) CoupleExists(ctx context.Context, coupleID int64) (bool, error) {
	return f.couples[coupleID], nil
}

func (f *fakeRepository) InsertHistory(ctx context.Context, record *HistoryRecord) error {
	if f.historyErr != nil {
		return f.historyErr
	}
	f.insertedHistory = append(f.insertedHistory, record)
	return nil
}

func (f *fakeRepository) ListHistory(ctx context.Context, coupleID int64, limit int) ([]*HistoryRecord, error) {
	return f.insertedHistory, nil
}

func seedCandidates(repo *fakeRepository) {
	for i := int64(1); i <= 5; i++ {
		repo.candidates = append(repo.candidates, &ProviderCandidate{
			ID:              i,
			BusinessName:    "Provider",
			ServiceType:     "photographe",
			BudgetMin:       intPtr(1000),
			BudgetMax:       intPtr(3000),
			ExperienceYears: int(i) * 3,
			Cultures:        []string{"française"},
			Zones:           []string{"ile-de-france"},
			AverageRating:   4.0,
			ReviewCount:     int(i) * 10,
		})
		repo.cultures[i] = []string{"française"}
		repo.zones[i] = []string{"ile-de-france"}
		repo.ratings[i] = ProviderRating{ProviderID: i, AverageRating: 4.0, ReviewCount: int(i) * 10}
	}
}

func matchRequest() *MatchRequest {
	return &MatchRequest{
		CoupleID: 42,
		SearchCriteria: SearchCriteria{
			ServiceType: "Photographe",
			BudgetMin:   intPtr(1000),
			BudgetMax:   intPtr(3000),
			Cultures:    []string{"française"},
			Zone:        "ile-de-france",
		},
	}
}

func TestMatchTopMatchesArePrefixOfAllMatches(t *testing.T) {
	repo := newFakeRepository()
	seedCandidates(repo)
	svc := NewService(repo, 3, 5)

	resp, err := svc.Match(context.Background(), matchRequest())
	require.NoError(t, err)

	require.Len(t, resp.Matches, 3)
	require.Len(t, resp.AllMatches, 5)
	assert.Equal(t, 5, resp.TotalCandidates)

	for i, m := range resp.Matches {
		assert.Equal(t, resp.AllMatches[i].ProviderID, m.ProviderID)
		assert.Equal(t, i+1, m.Rank)
	}
	assert.NotNil(t, resp.CreatedAt)
	assert.Nil(t, resp.Suggestions)
	assert.Equal(t, "photographe", resp.SearchCriteria.ServiceType)
}

func TestMatchFewerCandidatesThanTopN(t *testing.T) {
	repo := newFakeRepository()
	repo.candidates = []*ProviderCandidate{{
		ID: 1, ServiceType: "photographe", AverageRating: 4.0, ReviewCount: 3,
	}}
	svc := NewService(repo, 3, 5)

	resp, err := svc.Match(context.Background(), matchRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Matches, 1)
	assert.Len(t, resp.AllMatches, 1)
}

func TestMatchMissingServiceType(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 3, 5)

	req := matchRequest()
	req.SearchCriteria.ServiceType = "   "

	_, err := svc.Match(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingServiceType)
}

func TestMatchUnknownCouple(t *testing.T) {
	repo := newFakeRepository()
	seedCandidates(repo)
	svc := NewService(repo, 3, 5)

	req := matchRequest()
	req.CoupleID = 999

	_, err := svc.Match(context.Background(), req)
	assert.ErrorIs(t, err, ErrCoupleNotFound)
}

func TestMatchEmptyResultCarriesSuggestions(t *testing.T) {
	repo := newFakeRepository()
	repo.totalForService = 12
	repo.sample = []*ProviderCandidate{{ID: 7, ServiceType: "photographe"}}
	svc := NewService(repo, 3, 5)

	resp, err := svc.Match(context.Background(), matchRequest())
	require.NoError(t, err)

	assert.NotNil(t, resp.Matches)
	assert.Empty(t, resp.Matches)
	assert.Nil(t, resp.AllMatches)
	assert.Equal(t, 0, resp.TotalCandidates)
	assert.Nil(t, resp.CreatedAt)

	require.NotNil(t, resp.Suggestions)
	assert.Contains(t, resp.Suggestions.Message, "photographe")
	assert.Equal(t, 12, resp.Suggestions.TotalProvidersForService)
	assert.Len(t, resp.Suggestions.AlternativeProviders, 1)
	assert.Equal(t, "photographe", resp.Suggestions.ServiceType)

	// No snapshot for empty searches.
	assert.Empty(t, repo.insertedHistory)
}

func TestMatchHistorySnapshotMatchesResponse(t *testing.T) {
	repo := newFakeRepository()
	seedCandidates(repo)
	svc := NewService(repo, 3, 5)

	resp, err := svc.Match(context.Background(), matchRequest())
	require.NoError(t, err)

	require.Len(t, repo.insertedHistory, 1)
	record := repo.insertedHistory[0]

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, int64(42), record.CoupleID)
	assert.Equal(t, "photographe", record.ServiceType)
	assert.Equal(t, *resp.CreatedAt, record.CreatedAt)

	require.Len(t, record.Results, len(resp.AllMatches))
	for i := range record.Results {
		assert.Equal(t, resp.AllMatches[i].ProviderID, record.Results[i].ProviderID)
		assert.Equal(t, resp.AllMatches[i].Rank, record.Results[i].Rank)
	}
}

func TestMatchHistoryFailureDoesNotFailRequest(t *testing.T) {
	repo := newFakeRepository()
	seedCandidates(repo)
	repo.historyErr = errors.New("disk full")
	svc := NewService(repo, 3, 5)

	resp, err := svc.Match(context.Background(), matchRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 3)
}

func TestMatchStructuralFailureFallsBackEquivalently(t *testing.T) {
	healthy := newFakeRepository()
	seedCandidates(healthy)

	degraded := newFakeRepository()
	seedCandidates(degraded)
	degraded.joinedErr = &StructuralError{Op: "find_candidates", Err: errors.New("relation does not exist")}

	healthyResp, err := NewService(healthy, 3, 5).Match(context.Background(), matchRequest())
	require.NoError(t, err)

	degradedResp, err := NewService(degraded, 3, 5).Match(context.Background(), matchRequest())
	require.NoError(t, err)

	require.Len(t, degradedResp.AllMatches, len(healthyResp.AllMatches))
	for i := range healthyResp.AllMatches {
		assert.Equal(t, healthyResp.AllMatches[i].ProviderID, degradedResp.AllMatches[i].ProviderID)
		assert.Equal(t, healthyResp.AllMatches[i].Score, degradedResp.AllMatches[i].Score)
		assert.Equal(t, healthyResp.AllMatches[i].Rank, degradedResp.AllMatches[i].Rank)
	}
}

func TestMatchTransientFailureIsFatal(t *testing.T) {
	repo := newFakeRepository()
	seedCandidates(repo)
	repo.joinedErr = &RetrievalError{Op: "find_candidates", Err: errors.New("connection reset")}
	svc := NewService(repo, 3, 5)

	_, err := svc.Match(context.Background(), matchRequest())
	require.Error(t, err)

	var re *RetrievalError
	assert.ErrorAs(t, err, &re)
}
