package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedPlan is a persisted plan slot. Content is the exact serialized form
// produced by the plan codec and is stored verbatim.
type SavedPlan struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
