package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Deleted reports whether the row was soft-deleted. The core never hard
// deletes; rows with a tombstone are invisible to scheduling and metrics.
func (b Base) Deleted() bool {
	return b.DeletedAt != nil
}

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// Interval is a half-open [Start, End) range of clinic-local wall-clock time,
// both ends "HH:MM". The unit the schedule resolver produces and the slot
// calculator consumes.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
