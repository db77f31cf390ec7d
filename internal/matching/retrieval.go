package matching

import (
	"context"
	"log"
	"sync"
)

// Retriever fetches scoreable candidates. The joined query is the fast
// path; when it fails structurally (schema drift, partial migration) the
// retriever falls back to a basic select plus concurrent facet lookups so
// the request still completes with equivalent data.
type Retriever struct {
	repo Repository
}

func NewRetriever(repo Repository) *Retriever {
	return &Retriever{repo: repo}
}

func (r *Retriever) Retrieve(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error) {
	candidates, err := r.repo.FindCandidates(ctx, serviceType, budgetMax)
	if err == nil {
		return candidates, nil
	}

	if !IsStructural(err) {
		return nil, err
	}

	log.Printf("matching: joined retrieval failed structurally, using degraded path: %v", err)
	RecordRetrievalFallback()

	return r.retrieveDegraded(ctx, serviceType, budgetMax)
}

// retrieveDegraded runs the basic select then enriches the candidates
// with four concurrent facet lookups. Any lookup failure is fatal: a
// partially enriched set would score candidates inconsistently.
func (r *Retriever) retrieveDegraded(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error) {
	candidates, err := r.repo.FindCandidatesBasic(ctx, serviceType, budgetMax)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error

		cultures map[int64][]string
		zones    map[int64][]string
		counts   map[int64]int
		ratings  map[int64]ProviderRating
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if cultures, err = r.repo.CulturesByProvider(ctx, ids); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if zones, err = r.repo.ZonesByProvider(ctx, ids); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if counts, err = r.repo.PortfolioCountsByProvider(ctx, ids); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if ratings, err = r.repo.RatingsByProvider(ctx, ids); err != nil {
			fail(err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	for _, c := range candidates {
		c.Cultures = cultures[c.ID]
		c.Zones = zones[c.ID]
		c.PortfolioCount = counts[c.ID]
		if rating, ok := ratings[c.ID]; ok {
			c.AverageRating = rating.AverageRating
			c.ReviewCount = rating.ReviewCount
		}
	}

	return candidates, nil
}
