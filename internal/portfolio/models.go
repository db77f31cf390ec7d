package portfolio

import "time"

// Item is one piece of a provider's portfolio. Media is stored by URL;
// upload handling happens outside this service.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	ProviderID  int64     `json:"provider_id" db:"provider_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	MediaURL    string    `json:"media_url" db:"media_url"`
	MediaType   string    `json:"media_type" db:"media_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	MediaURL    string  `json:"media_url" validate:"required,url"`
	MediaType   string  `json:"media_type" validate:"required,oneof=image video"`
}
