package couples

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("couple not found")

type Repository interface {
	Create(ctx context.Context, profile *Profile) (int64, error)
	GetByID(ctx context.Context, id int64) (*Profile, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, req *UpdateRequest) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, profile *Profile) (int64, error) {
	query := `
		INSERT INTO profiles (
			role, partner_one, partner_two, email, wedding_date, location,
			guest_count, budget_total, cultures, languages, created_at, updated_at
		) VALUES ('couple', $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(
		ctx, &id, query,
		profile.PartnerOne, profile.PartnerTwo, profile.Email,
		profile.WeddingDate, profile.Location, profile.GuestCount,
		profile.BudgetTotal, profile.Cultures, profile.Languages,
	)
	if err != nil {
		return 0, fmt.Errorf("insert couple profile: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	query := `
		SELECT id, partner_one, partner_two, email, wedding_date, location,
		       guest_count, budget_total, cultures, languages, created_at, updated_at
		FROM profiles
		WHERE id = $1 AND role = 'couple'
	`

	var profile Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get couple profile: %w", err)
	}

	return &profile, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1 AND role = 'couple')`

	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check couple exists: %w", err)
	}

	return exists, nil
}

// Update builds a dynamic SET clause from the non-nil fields.
func (r *postgresRepository) Update(ctx context.Context, id int64, req *UpdateRequest) error {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.PartnerOne != nil {
		add("partner_one", *req.PartnerOne)
	}
	if req.PartnerTwo != nil {
		add("partner_two", *req.PartnerTwo)
	}
	if req.WeddingDate != nil {
		add("wedding_date", *req.WeddingDate)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.GuestCount != nil {
		add("guest_count", *req.GuestCount)
	}
	if req.BudgetTotal != nil {
		add("budget_total", *req.BudgetTotal)
	}
	if req.Cultures != nil {
		add("cultures", pq.Array(req.Cultures))
	}
	if req.Languages != nil {
		add("languages", pq.Array(req.Languages))
	}

	query := fmt.Sprintf(
		"UPDATE profiles SET %s WHERE id = $%d AND role = 'couple'",
		strings.Join(sets, ", "), idx,
	)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update couple profile: %w", err)
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
