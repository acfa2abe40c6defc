package repository

import (
	"context"
	"errors"

	"futuboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) groupFor(ctx context.Context, ownerColumn string, ownerID uuid.UUID) (*model.Usergroup, error) {
	var group model.Usergroup
	err := r.db.WithContext(ctx).Where(ownerColumn+" = ?", ownerID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUsergroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *UserRepository) membersOf(ctx context.Context, group *model.Usergroup) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN usergroup_users ON usergroup_users.user_id = users.user_id").
		Where("usergroup_users.usergroup_id = ?", group.UsergroupID).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.User, error) {
	group, err := r.groupFor(ctx, "board_id", boardID)
	if err != nil {
		return nil, err
	}
	return r.membersOf(ctx, group)
}

func (r *UserRepository) GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]model.User, error) {
	group, err := r.groupFor(ctx, "ticket_id", ticketID)
	if err != nil {
		return nil, err
	}
	return r.membersOf(ctx, group)
}

func (r *UserRepository) addMember(ctx context.Context, group *model.Usergroup, name string) (*model.User, error) {
	user := &model.User{
		UserID: uuid.New(),
		Name:   name,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		membership := model.UsergroupUser{
			UsergroupUserID: uuid.New(),
			UsergroupID:     group.UsergroupID,
			UserID:          user.UserID,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AddToBoard creates a fresh user and joins it to the board's group. Users
// are per-membership throwaways, so there is no lookup-or-reuse step.
func (r *UserRepository) AddToBoard(ctx context.Context, boardID uuid.UUID, name string) (*model.User, error) {
	group, err := r.groupFor(ctx, "board_id", boardID)
	if err != nil {
		return nil, err
	}
	return r.addMember(ctx, group, name)
}

func (r *UserRepository) AddToTicket(ctx context.Context, ticketID uuid.UUID, name string) (*model.User, error) {
	group, err := r.groupFor(ctx, "ticket_id", ticketID)
	if err != nil {
		return nil, err
	}
	return r.addMember(ctx, group, name)
}

// ReplaceTicketUsers swaps the ticket's member set for the submitted user
// ids. Members dropped from the set lose their membership row and are
// deleted outright; listed users keep or gain a membership.
func (r *UserRepository) ReplaceTicketUsers(ctx context.Context, ticketID uuid.UUID, userIDs []uuid.UUID) error {
	group, err := r.groupFor(ctx, "ticket_id", ticketID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wanted := make(map[uuid.UUID]bool, len(userIDs))
		for _, id := range userIDs {
			wanted[id] = true
		}

		var current []uuid.UUID
		if err := tx.Model(&model.UsergroupUser{}).
			Where("usergroup_id = ?", group.UsergroupID).
			Pluck("user_id", &current).Error; err != nil {
			return err
		}
		existing := make(map[uuid.UUID]bool, len(current))

		for _, id := range current {
			existing[id] = true
			if wanted[id] {
				continue
			}
			if err := tx.Where("usergroup_id = ? AND user_id = ?", group.UsergroupID, id).
				Delete(&model.UsergroupUser{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&model.User{}).Error; err != nil {
				return err
			}
		}

		for _, id := range userIDs {
			if existing[id] {
				continue
			}
			var user model.User
			if err := tx.Where("user_id = ?", id).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			membership := model.UsergroupUser{
				UsergroupUserID: uuid.New(),
				UsergroupID:     group.UsergroupID,
				UserID:          id,
			}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveFromTicket drops one member from the ticket and deletes the user.
func (r *UserRepository) RemoveFromTicket(ctx context.Context, ticketID, userID uuid.UUID) error {
	group, err := r.groupFor(ctx, "ticket_id", ticketID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("usergroup_id = ? AND user_id = ?", group.UsergroupID, userID).
			Delete(&model.UsergroupUser{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Where("user_id = ?", userID).Delete(&model.User{}).Error
	})
}

// Delete removes the user and any membership rows referencing it.
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&model.UsergroupUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// ResolveBoardID walks user -> membership -> group -> owner up to the
// board the user lives under, so user deletion can be token checked.
func (r *UserRepository) ResolveBoardID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var membership model.UsergroupUser
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrUserNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	var group model.Usergroup
	if err := r.db.WithContext(ctx).
		Where("usergroup_id = ?", membership.UsergroupID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrUsergroupNotFound
		}
		return uuid.Nil, err
	}

	switch group.Type {
	case model.GroupTypeBoard:
		if group.BoardID == nil {
			return uuid.Nil, ErrUsergroupNotFound
		}
		return *group.BoardID, nil
	case model.GroupTypeTicket:
		if group.TicketID == nil {
			return uuid.Nil, ErrUsergroupNotFound
		}
		return r.resolveTicketBoard(ctx, *group.TicketID)
	case model.GroupTypeAction:
		if group.ActionID == nil {
			return uuid.Nil, ErrUsergroupNotFound
		}
		var action model.Action
		if err := r.db.WithContext(ctx).
			Where("action_id = ?", *group.ActionID).
			First(&action).Error; err != nil {
			return uuid.Nil, err
		}
		return r.resolveTicketBoard(ctx, action.TicketID)
	}
	return uuid.Nil, ErrUsergroupNotFound
}

func (r *UserRepository) resolveTicketBoard(ctx context.Context, ticketID uuid.UUID) (uuid.UUID, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&ticket).Error; err != nil {
		return uuid.Nil, err
	}
	var column model.Column
	if err := r.db.WithContext(ctx).Where("column_id = ?", ticket.ColumnID).First(&column).Error; err != nil {
		return uuid.Nil, err
	}
	return column.BoardID, nil
}
