package model

import (
	"github.com/google/uuid"
)

// Swimlanecolumn is a row definition inside a swimlane-type column.
type Swimlanecolumn struct {
	SwimlanecolumnID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColumnID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"not null"`
	Color            string
	OrderNum         int `gorm:"column:ordernum;not null"`

	Column Column `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}

// Rows seeded into every new swimlane column, in order.
var DefaultSwimlaneTitles = []string{"To Do", "Doing", "Verify", "Done"}
