package providers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("provider not found")

type Repository interface {
	Create(ctx context.Context, req *CreateRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*Profile, error)
	ListByServiceType(ctx context.Context, serviceType string, limit, offset int) ([]*Profile, error)
	Update(ctx context.Context, id int64, req *UpdateRequest) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Create inserts the profile row and its facet rows in one transaction.
func (r *postgresRepository) Create(ctx context.Context, req *CreateRequest) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin provider create: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO profiles (
			role, business_name, email, bio, service_type, budget_min, budget_max,
			location, experience_years, languages, guest_capacity_min,
			guest_capacity_max, created_at, updated_at
		) VALUES ('provider', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err = tx.GetContext(
		ctx, &id, query,
		req.BusinessName, req.Email, req.Bio, req.ServiceType,
		req.BudgetMin, req.BudgetMax, req.Location, req.ExperienceYears,
		pq.Array(req.Languages), req.GuestCapacityMin, req.GuestCapacityMax,
	)
	if err != nil {
		return 0, fmt.Errorf("insert provider profile: %w", err)
	}

	if err := replaceFacets(ctx, tx, "provider_cultures", "culture", id, req.Cultures); err != nil {
		return 0, err
	}
	if err := replaceFacets(ctx, tx, "provider_zones", "zone", id, req.Zones); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit provider create: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	query := `
		SELECT id, business_name, email, avatar_url, bio, service_type,
		       budget_min, budget_max, location, experience_years, languages,
		       guest_capacity_min, guest_capacity_max, response_rate,
		       created_at, updated_at
		FROM profiles
		WHERE id = $1 AND role = 'provider'
	`

	var profile Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get provider profile: %w", err)
	}

	if err := r.loadFacets(ctx, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *postgresRepository) loadFacets(ctx context.Context, profile *Profile) error {
	var cultures pq.StringArray
	err := r.db.GetContext(ctx, &cultures,
		`SELECT COALESCE(array_agg(culture ORDER BY culture), '{}') FROM provider_cultures WHERE provider_id = $1`,
		profile.ID)
	if err != nil {
		return fmt.Errorf("load provider cultures: %w", err)
	}

	var zones pq.StringArray
	err = r.db.GetContext(ctx, &zones,
		`SELECT COALESCE(array_agg(zone ORDER BY zone), '{}') FROM provider_zones WHERE provider_id = $1`,
		profile.ID)
	if err != nil {
		return fmt.Errorf("load provider zones: %w", err)
	}

	profile.Cultures = cultures
	profile.Zones = zones
	return nil
}

func (r *postgresRepository) ListByServiceType(ctx context.Context, serviceType string, limit, offset int) ([]*Profile, error) {
	query := `
		SELECT id, business_name, email, avatar_url, bio, service_type,
		       budget_min, budget_max, location, experience_years, languages,
		       guest_capacity_min, guest_capacity_max, response_rate,
		       created_at, updated_at
		FROM profiles
		WHERE role = 'provider' AND service_type = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	var profiles []*Profile
	if err := r.db.SelectContext(ctx, &profiles, query, serviceType, limit, offset); err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	return profiles, nil
}

// Update builds a dynamic SET clause from the non-nil fields and replaces
// facet lists when their slices are present.
func (r *postgresRepository) Update(ctx context.Context, id int64, req *UpdateRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin provider update: %w", err)
	}
	defer tx.Rollback()

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.BusinessName != nil {
		add("business_name", *req.BusinessName)
	}
	if req.Bio != nil {
		add("bio", *req.Bio)
	}
	if req.AvatarURL != nil {
		add("avatar_url", *req.AvatarURL)
	}
	if req.ServiceType != nil {
		add("service_type", *req.ServiceType)
	}
	if req.BudgetMin != nil {
		add("budget_min", *req.BudgetMin)
	}
	if req.BudgetMax != nil {
		add("budget_max", *req.BudgetMax)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.ExperienceYears != nil {
		add("experience_years", *req.ExperienceYears)
	}
	if req.Languages != nil {
		add("languages", pq.Array(req.Languages))
	}
	if req.GuestCapacityMin != nil {
		add("guest_capacity_min", *req.GuestCapacityMin)
	}
	if req.GuestCapacityMax != nil {
		add("guest_capacity_max", *req.GuestCapacityMax)
	}

	query := fmt.Sprintf(
		"UPDATE profiles SET %s WHERE id = $%d AND role = 'provider'",
		strings.Join(sets, ", "), idx,
	)
	args = append(args, id)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update provider profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	if req.Cultures != nil {
		if err := replaceFacets(ctx, tx, "provider_cultures", "culture", id, req.Cultures); err != nil {
			return err
		}
	}
	if req.Zones != nil {
		if err := replaceFacets(ctx, tx, "provider_zones", "zone", id, req.Zones); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit provider update: %w", err)
	}

	return nil
}

// replaceFacets swaps a provider's facet rows for the given list.
func replaceFacets(ctx context.Context, tx *sqlx.Tx, table, column string, providerID int64, values []string) error {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE provider_id = $1", table), providerID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (provider_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", table, column),
			providerID, strings.ToLower(value)); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}

	return nil
}
