package model

import (
	"time"

	"github.com/google/uuid"
)

// Action is a cell entry in a swimlane grid: it belongs to a ticket and
// sits in one swimlanecolumn row.
type Action struct {
	ActionID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SwimlanecolumnID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"not null"`
	Color            string
	Order            int       `gorm:"column:order;not null"`
	CreationDate     time.Time `gorm:"autoCreateTime"`

	Ticket         Ticket         `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Swimlanecolumn Swimlanecolumn `gorm:"foreignKey:SwimlanecolumnID;constraint:OnDelete:CASCADE"`
}
