package model

import (
	"github.com/google/uuid"
)

// User is a display name attached to boards and tickets through group
// memberships. Users have no account or lifecycle of their own: one is
// created per membership and deleted with it.
type User struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"not null"`
}
