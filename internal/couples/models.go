package couples

import (
	"time"

	"github.com/lib/pq"
)

// Profile is a couple's planning profile. Budget and guest count feed
// the default search criteria on the frontend; they are not enforced
// server side.
type Profile struct {
	ID          int64          `json:"id" db:"id"`
	PartnerOne  string         `json:"partner_one" db:"partner_one"`
	PartnerTwo  *string        `json:"partner_two,omitempty" db:"partner_two"`
	Email       string         `json:"email" db:"email"`
	WeddingDate *time.Time     `json:"wedding_date,omitempty" db:"wedding_date"`
	Location    *string        `json:"location,omitempty" db:"location"`
	GuestCount  *int           `json:"guest_count,omitempty" db:"guest_count"`
	BudgetTotal *int           `json:"budget_total,omitempty" db:"budget_total"`
	Cultures    pq.StringArray `json:"cultures" db:"cultures"`
	Languages   pq.StringArray `json:"languages" db:"languages"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// CreateRequest is the payload for registering a couple profile.
type CreateRequest struct {
	PartnerOne  string     `json:"partner_one" validate:"required"`
	PartnerTwo  *string    `json:"partner_two,omitempty"`
	Email       string     `json:"email" validate:"required,email"`
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	GuestCount  *int       `json:"guest_count,omitempty" validate:"omitempty,min=1"`
	BudgetTotal *int       `json:"budget_total,omitempty" validate:"omitempty,min=0"`
	Cultures    []string   `json:"cultures,omitempty"`
	Languages   []string   `json:"languages,omitempty"`
}

// UpdateRequest carries partial profile updates; nil fields are left as is.
type UpdateRequest struct {
	PartnerOne  *string    `json:"partner_one,omitempty"`
	PartnerTwo  *string    `json:"partner_two,omitempty"`
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	GuestCount  *int       `json:"guest_count,omitempty" validate:"omitempty,min=1"`
	BudgetTotal *int       `json:"budget_total,omitempty" validate:"omitempty,min=0"`
	Cultures    []string   `json:"cultures,omitempty"`
	Languages   []string   `json:"languages,omitempty"`
}
