package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	BoardID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"not null"`
	Description     string
	Creator         string
	CreationDate    time.Time `gorm:"autoCreateTime"`
	PasswordHash    string    `gorm:"not null"`
	Salt            string
	BackgroundColor string
	Notes           string

	// Template fields copied into new tickets when the client omits them.
	DefaultTicketTitle       string
	DefaultTicketDescription string
	DefaultTicketColor       string
	DefaultTicketStorypoints int
	DefaultTicketSize        int
	DefaultTicketCornernote  string
}
