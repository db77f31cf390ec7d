package reviews

import "time"

// Review is a couple's rating of a provider. The aggregate used by
// matching lives in provider_ratings and is maintained transactionally
// alongside each insert.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	ProviderID int64     `json:"provider_id" db:"provider_id"`
	CoupleID   int64     `json:"couple_id" db:"couple_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreateRequest struct {
	ProviderID int64   `json:"provider_id" validate:"required"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment,omitempty"`
}
