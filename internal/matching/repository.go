package matching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository is the data access surface the matching core needs: filtered
// selects, batch facet lookups, count queries, an existence check and a
// best-effort history insert.
type Repository interface {
	// Joined retrieval: candidates with all enrichment facets in one pass.
	FindCandidates(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error)

	// Degraded retrieval: candidates without facets, enriched separately.
	FindCandidatesBasic(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error)
	CulturesByProvider(ctx context.Context, providerIDs []int64) (map[int64][]string, error)
	ZonesByProvider(ctx context.Context, providerIDs []int64) (map[int64][]string, error)
	PortfolioCountsByProvider(ctx context.Context, providerIDs []int64) (map[int64]int, error)
	RatingsByProvider(ctx context.Context, providerIDs []int64) (map[int64]ProviderRating, error)

	// Empty-result suggestions.
	CountProvidersByService(ctx context.Context, serviceType string) (int, error)
	SampleProvidersByService(ctx context.Context, serviceType string, limit int) ([]*ProviderCandidate, error)

	// Requester existence check.
	CoupleExists(ctx context.Context, coupleID int64) (bool, error)

	// History snapshots: insert-only from this subsystem.
	InsertHistory(ctx context.Context, record *HistoryRecord) error
	ListHistory(ctx context.Context, coupleID int64, limit int) ([]*HistoryRecord, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const candidateColumns = `
	p.id, p.business_name, p.avatar_url, p.bio, p.service_type,
	p.budget_min, p.budget_max, p.location, p.experience_years,
	p.languages, p.guest_capacity_min, p.guest_capacity_max, p.response_rate`

// FindCandidates applies the hard filters and pulls every enrichment
// facet in a single joined select. The budget filter is deliberately
// asymmetric: only providers whose floor exceeds the requester's ceiling
// are excluded here; full overlap semantics live in scoring.
func (r *postgresRepository) FindCandidates(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error) {
	query := `
		SELECT` + candidateColumns + `,
		       COALESCE(array_agg(DISTINCT pc.culture) FILTER (WHERE pc.culture IS NOT NULL), '{}') AS cultures,
		       COALESCE(array_agg(DISTINCT pz.zone) FILTER (WHERE pz.zone IS NOT NULL), '{}') AS zones,
		       COALESCE(pf.cnt, 0) AS portfolio_count,
		       COALESCE(pr.average_rating, 0) AS average_rating,
		       COALESCE(pr.review_count, 0) AS review_count
		FROM profiles p
		LEFT JOIN provider_cultures pc ON pc.provider_id = p.id
		LEFT JOIN provider_zones pz ON pz.provider_id = p.id
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS cnt FROM portfolio_items pi WHERE pi.provider_id = p.id
		) pf ON TRUE
		LEFT JOIN provider_ratings pr ON pr.provider_id = p.id
		WHERE p.role = 'provider'
		  AND p.service_type = $1
		  AND ($2::int IS NULL OR p.budget_min IS NULL OR p.budget_min <= $2)
		GROUP BY p.id, pf.cnt, pr.average_rating, pr.review_count
		ORDER BY p.id
	`

	var candidates []*ProviderCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, serviceType, budgetMax); err != nil {
		return nil, classify("find_candidates", err)
	}

	return candidates, nil
}

// FindCandidatesBasic is the degraded retrieval: same hard filters, no
// joins, facets left at their zero values.
func (r *postgresRepository) FindCandidatesBasic(ctx context.Context, serviceType string, budgetMax *int) ([]*ProviderCandidate, error) {
	query := `
		SELECT` + candidateColumns + `,
		       '{}'::text[] AS cultures,
		       '{}'::text[] AS zones,
		       0 AS portfolio_count,
		       0::numeric AS average_rating,
		       0 AS review_count
		FROM profiles p
		WHERE p.role = 'provider'
		  AND p.service_type = $1
		  AND ($2::int IS NULL OR p.budget_min IS NULL OR p.budget_min <= $2)
		ORDER BY p.id
	`

	var candidates []*ProviderCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, serviceType, budgetMax); err != nil {
		return nil, classify("find_candidates_basic", err)
	}

	return candidates, nil
}

func (r *postgresRepository) CulturesByProvider(ctx context.Context, providerIDs []int64) (map[int64][]string, error) {
	return r.facetByProvider(ctx, "cultures_by_provider",
		`SELECT provider_id, culture FROM provider_cultures WHERE provider_id = ANY($1)`, providerIDs)
}

func (r *postgresRepository) ZonesByProvider(ctx context.Context, providerIDs []int64) (map[int64][]string, error) {
	return r.facetByProvider(ctx, "zones_by_provider",
		`SELECT provider_id, zone FROM provider_zones WHERE provider_id = ANY($1)`, providerIDs)
}

func (r *postgresRepository) facetByProvider(ctx context.Context, op, query string, providerIDs []int64) (map[int64][]string, error) {
	rows, err := r.db.QueryxContext(ctx, query, pq.Array(providerIDs))
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var providerID int64
		var value string
		if err := rows.Scan(&providerID, &value); err != nil {
			return nil, classify(op, err)
		}
		result[providerID] = append(result[providerID], value)
	}

	return result, rows.Err()
}

func (r *postgresRepository) PortfolioCountsByProvider(ctx context.Context, providerIDs []int64) (map[int64]int, error) {
	query := `
		SELECT provider_id, COUNT(*) AS cnt
		FROM portfolio_items
		WHERE provider_id = ANY($1)
		GROUP BY provider_id
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(providerIDs))
	if err != nil {
		return nil, classify("portfolio_counts", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var providerID int64
		var count int
		if err := rows.Scan(&providerID, &count); err != nil {
			return nil, classify("portfolio_counts", err)
		}
		counts[providerID] = count
	}

	return counts, rows.Err()
}

func (r *postgresRepository) RatingsByProvider(ctx context.Context, providerIDs []int64) (map[int64]ProviderRating, error) {
	query := `
		SELECT provider_id, average_rating, review_count
		FROM provider_ratings
		WHERE provider_id = ANY($1)
	`

	var ratings []ProviderRating
	if err := r.db.SelectContext(ctx, &ratings, query, pq.Array(providerIDs)); err != nil {
		return nil, classify("ratings_by_provider", err)
	}

	result := make(map[int64]ProviderRating, len(ratings))
	for _, rating := range ratings {
		result[rating.ProviderID] = rating
	}

	return result, nil
}

func (r *postgresRepository) CountProvidersByService(ctx context.Context, serviceType string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM profiles WHERE role = 'provider' AND service_type = $1`

	if err := r.db.GetContext(ctx, &count, query, serviceType); err != nil {
		return 0, classify("count_providers", err)
	}

	return count, nil
}

func (r *postgresRepository) SampleProvidersByService(ctx context.Context, serviceType string, limit int) ([]*ProviderCandidate, error) {
	query := `
		SELECT` + candidateColumns + `,
		       '{}'::text[] AS cultures,
		       '{}'::text[] AS zones,
		       0 AS portfolio_count,
		       COALESCE(pr.average_rating, 0) AS average_rating,
		       COALESCE(pr.review_count, 0) AS review_count
		FROM profiles p
		LEFT JOIN provider_ratings pr ON pr.provider_id = p.id
		WHERE p.role = 'provider' AND p.service_type = $1
		ORDER BY pr.average_rating DESC NULLS LAST, p.id
		LIMIT $2
	`

	var providers []*ProviderCandidate
	if err := r.db.SelectContext(ctx, &providers, query, serviceType, limit); err != nil {
		return nil, classify("sample_providers", err)
	}

	return providers, nil
}

func (r *postgresRepository) CoupleExists(ctx context.Context, coupleID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1 AND role = 'couple')`

	if err := r.db.GetContext(ctx, &exists, query, coupleID); err != nil {
		return false, classify("couple_exists", err)
	}

	return exists, nil
}

// InsertHistory writes the immutable snapshot. Criteria and results are
// stored as JSONB so the record replays exactly what the couple saw.
func (r *postgresRepository) InsertHistory(ctx context.Context, record *HistoryRecord) error {
	criteriaJSON, err := json.Marshal(record.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	resultsJSON, err := json.Marshal(record.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	query := `
		INSERT INTO matching_history (
			id, couple_id, conversation_id, service_type, criteria, results, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(
		ctx, query,
		record.ID, record.CoupleID, record.ConversationID,
		record.ServiceType, criteriaJSON, resultsJSON, record.CreatedAt,
	)

	return err
}

func (r *postgresRepository) ListHistory(ctx context.Context, coupleID int64, limit int) ([]*HistoryRecord, error) {
	query := `
		SELECT id, couple_id, conversation_id, service_type, criteria, results, created_at
		FROM matching_history
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryxContext(ctx, query, coupleID, limit)
	if err != nil {
		return nil, classify("list_history", err)
	}
	defer rows.Close()

	var records []*HistoryRecord
	for rows.Next() {
		var record HistoryRecord
		var criteriaJSON, resultsJSON []byte

		err := rows.Scan(
			&record.ID, &record.CoupleID, &record.ConversationID,
			&record.ServiceType, &criteriaJSON, &resultsJSON, &record.CreatedAt,
		)
		if err != nil {
			return nil, classify("list_history", err)
		}

		if err := json.Unmarshal(criteriaJSON, &record.Criteria); err != nil {
			return nil, fmt.Errorf("unmarshal criteria for %s: %w", record.ID, err)
		}
		if err := json.Unmarshal(resultsJSON, &record.Results); err != nil {
			return nil, fmt.Errorf("unmarshal results for %s: %w", record.ID, err)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// Postgres error classes that mean the schema does not match what the
// query expects. Only these trigger the degraded retrieval path.
var structuralPQCodes = map[string]bool{
	"42P01": true, // undefined_table
	"42703": true, // undefined_column
	"42883": true, // undefined_function
	"42704": true, // undefined_object
}

// classify wraps data-store errors so callers can branch on kind with
// errors.As instead of inspecting driver internals.
func classify(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok && structuralPQCodes[string(pqErr.Code)] {
		return &StructuralError{Op: op, Err: err}
	}
	return &RetrievalError{Op: op, Err: err}
}
