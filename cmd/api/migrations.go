// cmd/api/migrations.go
// Idempotent schema setup, applied on startup

package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func runMigrations(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			role VARCHAR(20) NOT NULL CHECK (role IN ('couple', 'provider')),
			email VARCHAR(255) NOT NULL,

			-- couple fields
			partner_one VARCHAR(255),
			partner_two VARCHAR(255),
			wedding_date TIMESTAMPTZ,
			guest_count INT,
			budget_total INT,
			cultures TEXT[] NOT NULL DEFAULT '{}',

			-- provider fields
			business_name VARCHAR(255),
			avatar_url TEXT,
			bio TEXT,
			service_type VARCHAR(100),
			budget_min INT,
			budget_max INT,
			experience_years INT NOT NULL DEFAULT 0,
			guest_capacity_min INT,
			guest_capacity_max INT,
			response_rate NUMERIC(5,2),

			-- shared
			location VARCHAR(255),
			languages TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_role_service
			ON profiles(role, service_type)`,

		`CREATE TABLE IF NOT EXISTS provider_cultures (
			provider_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			culture VARCHAR(100) NOT NULL,
			PRIMARY KEY (provider_id, culture)
		)`,

		`CREATE TABLE IF NOT EXISTS provider_zones (
			provider_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			zone VARCHAR(100) NOT NULL,
			PRIMARY KEY (provider_id, zone)
		)`,

		`CREATE TABLE IF NOT EXISTS portfolio_items (
			id BIGSERIAL PRIMARY KEY,
			provider_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			media_url TEXT NOT NULL,
			media_type VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_portfolio_provider
			ON portfolio_items(provider_id)`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGSERIAL PRIMARY KEY,
			provider_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			couple_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (provider_id, couple_id)
		)`,

		`CREATE TABLE IF NOT EXISTS provider_ratings (
			provider_id BIGINT PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
			average_rating NUMERIC(3,2) NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS matching_history (
			id UUID PRIMARY KEY,
			couple_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			conversation_id VARCHAR(255),
			service_type VARCHAR(100) NOT NULL,
			criteria JSONB NOT NULL,
			results JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_matching_history_couple
			ON matching_history(couple_id, created_at DESC)`,

		`CREATE TABLE IF NOT EXISTS invitations (
			id BIGSERIAL PRIMARY KEY,
			couple_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			email VARCHAR(255) NOT NULL,
			service_type VARCHAR(100),
			token UUID NOT NULL UNIQUE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			expires_at TIMESTAMPTZ NOT NULL,
			accepted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}

	return nil
}
