package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrAlreadyRated = errors.New("couple already reviewed this provider")
)

type Repository interface {
	Create(ctx context.Context, review *Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*Review, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]*Review, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Create inserts the review and refreshes the provider's aggregate in
// the same transaction, so matching never sees a stale or torn rating.
func (r *postgresRepository) Create(ctx context.Context, review *Review) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin review insert: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.GetContext(ctx, &existing,
		`SELECT COUNT(*) FROM reviews WHERE provider_id = $1 AND couple_id = $2`,
		review.ProviderID, review.CoupleID)
	if err != nil {
		return 0, fmt.Errorf("check existing review: %w", err)
	}
	if existing > 0 {
		return 0, ErrAlreadyRated
	}

	var id int64
	err = tx.GetContext(ctx, &id,
		`INSERT INTO reviews (provider_id, couple_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id`,
		review.ProviderID, review.CoupleID, review.Rating, review.Comment)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO provider_ratings (provider_id, average_rating, review_count)
		 SELECT provider_id, AVG(rating)::numeric(3,2), COUNT(*)
		 FROM reviews
		 WHERE provider_id = $1
		 GROUP BY provider_id
		 ON CONFLICT (provider_id) DO UPDATE
		 SET average_rating = EXCLUDED.average_rating,
		     review_count = EXCLUDED.review_count`,
		review.ProviderID)
	if err != nil {
		return 0, fmt.Errorf("refresh provider rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit review insert: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var review Review
	query := `
		SELECT id, provider_id, couple_id, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &review, nil
}

func (r *postgresRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]*Review, error) {
	query := `
		SELECT id, provider_id, couple_id, rating, comment, created_at
		FROM reviews
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var reviews []*Review
	if err := r.db.SelectContext(ctx, &reviews, query, providerID, limit, offset); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}
