package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("portfolio item not found")

type Repository interface {
	Create(ctx context.Context, item *Item) (int64, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*Item, error)
	Delete(ctx context.Context, id, providerID int64) error
	CountByProvider(ctx context.Context, providerID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, item *Item) (int64, error) {
	query := `
		INSERT INTO portfolio_items (provider_id, title, description, media_url, media_type, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		item.ProviderID, item.Title, item.Description, item.MediaURL, item.MediaType)
	if err != nil {
		return 0, fmt.Errorf("insert portfolio item: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	var item Item
	query := `
		SELECT id, provider_id, title, description, media_url, media_type, created_at
		FROM portfolio_items
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get portfolio item: %w", err)
	}

	return &item, nil
}

func (r *postgresRepository) ListByProvider(ctx context.Context, providerID int64) ([]*Item, error) {
	query := `
		SELECT id, provider_id, title, description, media_url, media_type, created_at
		FROM portfolio_items
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	var items []*Item
	if err := r.db.SelectContext(ctx, &items, query, providerID); err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}

	return items, nil
}

// Delete removes an item only when it belongs to the given provider.
func (r *postgresRepository) Delete(ctx context.Context, id, providerID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM portfolio_items WHERE id = $1 AND provider_id = $2`, id, providerID)
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) CountByProvider(ctx context.Context, providerID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM portfolio_items WHERE provider_id = $1`, providerID)
	if err != nil {
		return 0, fmt.Errorf("count portfolio items: %w", err)
	}

	return count, nil
}
