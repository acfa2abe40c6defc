package model

import (
	"time"

	"github.com/google/uuid"
)

type Column struct {
	ColumnID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"not null"`
	Description  string
	Color        string
	WipLimit     int
	OrderNum     int       `gorm:"column:ordernum;not null"`
	CreationDate time.Time `gorm:"autoCreateTime"`
	Swimlane     bool      `gorm:"not null;default:false"`

	Board Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}
