package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Window represents bounded list parameters
type Window struct {
	Limit  int        `json:"limit" form:"limit"`
	Before *time.Time `json:"before" form:"before" time_format:"2006-01-02T15:04:05Z07:00"`
}

const (
	DefaultWindowLimit = 50
	MaxWindowLimit     = 100
)

// Clamp normalizes the window limit into the allowed range.
func (w *Window) Clamp() {
	if w.Limit <= 0 {
		w.Limit = DefaultWindowLimit
	}
	if w.Limit > MaxWindowLimit {
		w.Limit = MaxWindowLimit
	}
}
