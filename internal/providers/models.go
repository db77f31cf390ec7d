package providers

import (
	"time"

	"github.com/lib/pq"
)

// Profile is a provider's public business profile plus its facet lists.
// The facets live in their own tables; the repository assembles them.
type Profile struct {
	ID               int64          `json:"id" db:"id"`
	BusinessName     string         `json:"business_name" db:"business_name"`
	Email            string         `json:"email" db:"email"`
	AvatarURL        *string        `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio              *string        `json:"bio,omitempty" db:"bio"`
	ServiceType      string         `json:"service_type" db:"service_type"`
	BudgetMin        *int           `json:"budget_min,omitempty" db:"budget_min"`
	BudgetMax        *int           `json:"budget_max,omitempty" db:"budget_max"`
	Location         *string        `json:"location,omitempty" db:"location"`
	ExperienceYears  int            `json:"experience_years" db:"experience_years"`
	Languages        pq.StringArray `json:"languages" db:"languages"`
	GuestCapacityMin *int           `json:"guest_capacity_min,omitempty" db:"guest_capacity_min"`
	GuestCapacityMax *int           `json:"guest_capacity_max,omitempty" db:"guest_capacity_max"`
	ResponseRate     *float64       `json:"response_rate,omitempty" db:"response_rate"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`

	Cultures []string `json:"cultures"`
	Zones    []string `json:"zones"`
}

// CreateRequest is the payload for registering a provider.
type CreateRequest struct {
	BusinessName     string   `json:"business_name" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	Bio              *string  `json:"bio,omitempty"`
	ServiceType      string   `json:"service_type" validate:"required"`
	BudgetMin        *int     `json:"budget_min,omitempty" validate:"omitempty,min=0"`
	BudgetMax        *int     `json:"budget_max,omitempty" validate:"omitempty,min=0"`
	Location         *string  `json:"location,omitempty"`
	ExperienceYears  int      `json:"experience_years" validate:"min=0"`
	Languages        []string `json:"languages,omitempty"`
	GuestCapacityMin *int     `json:"guest_capacity_min,omitempty" validate:"omitempty,min=1"`
	GuestCapacityMax *int     `json:"guest_capacity_max,omitempty" validate:"omitempty,min=1"`
	Cultures         []string `json:"cultures,omitempty"`
	Zones            []string `json:"zones,omitempty"`
}

// UpdateRequest carries partial updates; nil fields are left as is.
// Non-nil slices replace the stored facet lists entirely.
type UpdateRequest struct {
	BusinessName     *string  `json:"business_name,omitempty"`
	Bio              *string  `json:"bio,omitempty"`
	AvatarURL        *string  `json:"avatar_url,omitempty"`
	ServiceType      *string  `json:"service_type,omitempty"`
	BudgetMin        *int     `json:"budget_min,omitempty" validate:"omitempty,min=0"`
	BudgetMax        *int     `json:"budget_max,omitempty" validate:"omitempty,min=0"`
	Location         *string  `json:"location,omitempty"`
	ExperienceYears  *int     `json:"experience_years,omitempty" validate:"omitempty,min=0"`
	Languages        []string `json:"languages,omitempty"`
	GuestCapacityMin *int     `json:"guest_capacity_min,omitempty" validate:"omitempty,min=1"`
	GuestCapacityMax *int     `json:"guest_capacity_max,omitempty" validate:"omitempty,min=1"`
	Cultures         []string `json:"cultures,omitempty"`
	Zones            []string `json:"zones,omitempty"`
}
