package providers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	profileRows := sqlmock.NewRows([]string{
		"id", "business_name", "email", "avatar_url", "bio", "service_type",
		"budget_min", "budget_max", "location", "experience_years", "languages",
		"guest_capacity_min", "guest_capacity_max", "response_rate",
		"created_at", "updated_at",
	}).AddRow(
		int64(7), "Studio Lumière", "studio@example.com", nil, nil, "photographe",
		1500, 3000, "Paris", 12, "{fr,en}",
		nil, nil, nil, now, now,
	)

	mock.ExpectQuery(`SELECT id, business_name`).
		WithArgs(int64(7)).
		WillReturnRows(profileRows)

	mock.ExpectQuery(`FROM provider_cultures`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"array_agg"}).AddRow("{française,marocaine}"))

	mock.ExpectQuery(`FROM provider_zones`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"array_agg"}).AddRow("{ile-de-france}"))

	profile, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Studio Lumière", profile.BusinessName)
	assert.Equal(t, "photographe", profile.ServiceType)
	assert.Equal(t, []string{"française", "marocaine"}, profile.Cultures)
	assert.Equal(t, []string{"ile-de-france"}, profile.Zones)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, business_name`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	name := "New Name"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE profiles SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), 99, &UpdateRequest{BusinessName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
