package models

import (
	"time"

	"github.com/google/uuid"
)

// CatalogExercise is a row in the admin-curated system_exercises table,
// shared by every user of the instance.
type CatalogExercise struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	MediaURL  string    `json:"media_url,omitempty"`
	MediaType string    `json:"media_type,omitempty"` // image, video or link
	CreatedAt time.Time `json:"created_at"`
}
