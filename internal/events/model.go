package events

import (
	"time"

	"github.com/conexion-ipp/backend/internal/patch"
)

// Event is a calendar item. The datetime partitions the listings into
// upcoming (>= now) and past (< now) views.
type Event struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	EventDatetime time.Time `json:"event_datetime"`
}

// CreateInput holds the validated fields for a new event. Description is the
// only optional field.
type CreateInput struct {
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	EventDatetime time.Time `json:"event_datetime"`
}

// UpdateInput is a field-level patch; absent fields are left untouched.
// Description is nullable, so it tracks presence separately: an explicit null
// clears the column.
type UpdateInput struct {
	Title         *string             `json:"title"`
	Description   patch.Field[string] `json:"description"`
	EventDatetime *time.Time          `json:"event_datetime"`
}
