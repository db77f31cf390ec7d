package invitations

import "time"

// Invitation lets a couple invite a provider into their planning space.
// Tokens are single use and expire.
type Invitation struct {
	ID          int64      `json:"id" db:"id"`
	CoupleID    int64      `json:"couple_id" db:"couple_id"`
	Email       string     `json:"email" db:"email"`
	ServiceType *string    `json:"service_type,omitempty" db:"service_type"`
	Token       string     `json:"-" db:"token"`
	Status      string     `json:"status" db:"status"`
	ExpiresAt   time.Time  `json:"expires_at" db:"expires_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty" db:"accepted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusExpired  = "expired"
)

type CreateRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	ServiceType *string `json:"service_type,omitempty"`
	Message     *string `json:"message,omitempty"`
}
