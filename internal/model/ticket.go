package model

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	TicketID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColumnID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"not null"`
	Description  string
	Color        string
	Storypoints  int
	Size         int
	Order        int       `gorm:"column:order;not null"`
	CreationDate time.Time `gorm:"autoCreateTime"`
	Cornernote   string

	Column Column `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}
