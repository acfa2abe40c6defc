package repository

import (
	"futuboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group bookkeeping shared by the repositories. Every board, ticket and
// action owns exactly one usergroup; members are throwaway users that live
// and die with their membership row, so deleting a group must also delete
// the users it references.

func createBoardGroupTx(tx *gorm.DB, boardID uuid.UUID) error {
	group := model.Usergroup{
		UsergroupID: uuid.New(),
		Type:        model.GroupTypeBoard,
		BoardID:     &boardID,
	}
	return tx.Create(&group).Error
}

func createTicketGroupTx(tx *gorm.DB, ticketID uuid.UUID) error {
	group := model.Usergroup{
		UsergroupID: uuid.New(),
		Type:        model.GroupTypeTicket,
		TicketID:    &ticketID,
	}
	return tx.Create(&group).Error
}

func createActionGroupTx(tx *gorm.DB, actionID uuid.UUID) error {
	group := model.Usergroup{
		UsergroupID: uuid.New(),
		Type:        model.GroupTypeAction,
		ActionID:    &actionID,
	}
	return tx.Create(&group).Error
}

// deleteGroupsTx removes the groups, their membership rows and every user
// those rows reference.
func deleteGroupsTx(tx *gorm.DB, groupIDs []uuid.UUID) error {
	if len(groupIDs) == 0 {
		return nil
	}

	var userIDs []uuid.UUID
	if err := tx.Model(&model.UsergroupUser{}).
		Where("usergroup_id IN ?", groupIDs).
		Pluck("user_id", &userIDs).Error; err != nil {
		return err
	}

	if err := tx.Where("usergroup_id IN ?", groupIDs).
		Delete(&model.UsergroupUser{}).Error; err != nil {
		return err
	}

	if len(userIDs) > 0 {
		if err := tx.Where("user_id IN ?", userIDs).
			Delete(&model.User{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("usergroup_id IN ?", groupIDs).
		Delete(&model.Usergroup{}).Error
}

// groupIDsForTicketsTx collects the usergroups owned by tickets in the
// given columns, including groups of the tickets' actions.
func groupIDsForTicketsTx(tx *gorm.DB, columnIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(columnIDs) == 0 {
		return nil, nil
	}

	var ticketIDs []uuid.UUID
	if err := tx.Model(&model.Ticket{}).
		Where("column_id IN ?", columnIDs).
		Pluck("ticket_id", &ticketIDs).Error; err != nil {
		return nil, err
	}
	if len(ticketIDs) == 0 {
		return nil, nil
	}

	var actionIDs []uuid.UUID
	if err := tx.Model(&model.Action{}).
		Where("ticket_id IN ?", ticketIDs).
		Pluck("action_id", &actionIDs).Error; err != nil {
		return nil, err
	}

	var groupIDs []uuid.UUID
	if err := tx.Model(&model.Usergroup{}).
		Where("ticket_id IN ?", ticketIDs).
		Pluck("usergroup_id", &groupIDs).Error; err != nil {
		return nil, err
	}

	if len(actionIDs) > 0 {
		var actionGroupIDs []uuid.UUID
		if err := tx.Model(&model.Usergroup{}).
			Where("action_id IN ?", actionIDs).
			Pluck("usergroup_id", &actionGroupIDs).Error; err != nil {
			return nil, err
		}
		groupIDs = append(groupIDs, actionGroupIDs...)
	}

	return groupIDs, nil
}
