package models

import (
	"time"

	"github.com/google/uuid"
)

// Zone is a geographic grouping of projects. ProjectCount is computed on
// read and never stored.
type Zone struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ProjectCount int       `json:"project_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
