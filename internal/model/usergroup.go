package model

import (
	"github.com/google/uuid"
)

// Group owner kinds. Exactly one of the owning references on Usergroup is
// set and it must match the type discriminator.
const (
	GroupTypeBoard  = "board"
	GroupTypeTicket = "ticket"
	GroupTypeAction = "action"
)

// Usergroup is "the set of users attached to this thing" for exactly one
// board, ticket or action.
type Usergroup struct {
	UsergroupID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type        string     `gorm:"not null;check:type IN ('board', 'ticket', 'action')"`
	BoardID     *uuid.UUID `gorm:"type:uuid;index"`
	TicketID    *uuid.UUID `gorm:"type:uuid;index"`
	ActionID    *uuid.UUID `gorm:"type:uuid;index"`

	Board  *Board  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Ticket *Ticket `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Action *Action `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE"`
}

// UsergroupUser is the membership join row between a group and a user.
type UsergroupUser struct {
	UsergroupUserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UsergroupID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`

	Usergroup Usergroup `gorm:"foreignKey:UsergroupID;constraint:OnDelete:CASCADE"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
