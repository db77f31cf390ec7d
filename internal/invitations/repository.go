package invitations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound = errors.New("invitation not found")
	ErrExpired  = errors.New("invitation expired")
)

type Repository interface {
	Create(ctx context.Context, invitation *Invitation) (int64, error)
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	ListByCouple(ctx context.Context, coupleID int64) ([]*Invitation, error)
	MarkAccepted(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, invitation *Invitation) (int64, error) {
	query := `
		INSERT INTO invitations (couple_id, email, service_type, token, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		invitation.CoupleID, invitation.Email, invitation.ServiceType,
		invitation.Token, invitation.Status, invitation.ExpiresAt)
	if err != nil {
		return 0, fmt.Errorf("insert invitation: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) GetByToken(ctx context.Context, token string) (*Invitation, error) {
	var invitation Invitation
	query := `
		SELECT id, couple_id, email, service_type, token, status, expires_at, accepted_at, created_at
		FROM invitations
		WHERE token = $1
	`

	if err := r.db.GetContext(ctx, &invitation, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return &invitation, nil
}

func (r *postgresRepository) ListByCouple(ctx context.Context, coupleID int64) ([]*Invitation, error) {
	query := `
		SELECT id, couple_id, email, service_type, token, status, expires_at, accepted_at, created_at
		FROM invitations
		WHERE couple_id = $1
		ORDER BY created_at DESC
	`

	var invitations []*Invitation
	if err := r.db.SelectContext(ctx, &invitations, query, coupleID); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invitations, nil
}

func (r *postgresRepository) MarkAccepted(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET status = $1, accepted_at = $2 WHERE id = $3 AND status = $4`,
		StatusAccepted, time.Now().UTC(), id, StatusPending)
	if err != nil {
		return fmt.Errorf("mark invitation accepted: %w", err)
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
