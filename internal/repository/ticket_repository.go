package repository

import (
	"context"
	"errors"

	"futuboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create appends the ticket at the end of its column's sequence and gives
// it an empty assigned-users group.
func (r *TicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Ticket{}).
			Where("column_id = ?", ticket.ColumnID).
			Count(&count).Error; err != nil {
			return err
		}
		ticket.Order = int(count)

		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		return createTicketGroupTx(tx, ticket.TicketID)
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).Where("ticket_id = ?", id).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order(`"order"`).
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// Reorder makes the column's contents match the submitted list exactly:
// listed tickets are pulled into the column if they live elsewhere and
// renumbered 0-based by list position, and tickets still in the column but
// absent from the list are deleted with their groups. The delete-absent
// policy is specific to this endpoint; column updates reparent instead.
func (r *TicketRepository) Reorder(ctx context.Context, columnID uuid.UUID, ticketIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listed := make(map[uuid.UUID]bool, len(ticketIDs))
		for _, id := range ticketIDs {
			listed[id] = true
		}

		var current []uuid.UUID
		if err := tx.Model(&model.Ticket{}).
			Where("column_id = ?", columnID).
			Pluck("ticket_id", &current).Error; err != nil {
			return err
		}

		var absent []uuid.UUID
		for _, id := range current {
			if !listed[id] {
				absent = append(absent, id)
			}
		}
		for _, id := range absent {
			if err := deleteTicketTx(tx, id); err != nil {
				return err
			}
		}

		for index, ticketID := range ticketIDs {
			result := tx.Model(&model.Ticket{}).
				Where("ticket_id = ?", ticketID).
				Updates(map[string]interface{}{
					"column_id": columnID,
					"order":     index,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTicketNotFound
			}
		}
		return nil
	})
}

// Delete removes the ticket, its assigned-users group and the groups of
// its actions. Sibling tickets keep their order values.
func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket model.Ticket
		if err := tx.Where("ticket_id = ?", id).First(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		return deleteTicketTx(tx, id)
	})
}

func deleteTicketTx(tx *gorm.DB, ticketID uuid.UUID) error {
	var actionIDs []uuid.UUID
	if err := tx.Model(&model.Action{}).
		Where("ticket_id = ?", ticketID).
		Pluck("action_id", &actionIDs).Error; err != nil {
		return err
	}

	var groupIDs []uuid.UUID
	if err := tx.Model(&model.Usergroup{}).
		Where("ticket_id = ?", ticketID).
		Pluck("usergroup_id", &groupIDs).Error; err != nil {
		return err
	}
	if len(actionIDs) > 0 {
		var actionGroupIDs []uuid.UUID
		if err := tx.Model(&model.Usergroup{}).
			Where("action_id IN ?", actionIDs).
			Pluck("usergroup_id", &actionGroupIDs).Error; err != nil {
			return err
		}
		groupIDs = append(groupIDs, actionGroupIDs...)
	}

	if err := deleteGroupsTx(tx, groupIDs); err != nil {
		return err
	}

	return tx.Where("ticket_id = ?", ticketID).Delete(&model.Ticket{}).Error
}

// ResolveBoardID walks ticket -> column -> board for token checks on
// routes that carry only a ticket id.
func (r *TicketRepository) ResolveBoardID(ctx context.Context, ticketID uuid.UUID) (uuid.UUID, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTicketNotFound
		}
		return uuid.Nil, err
	}

	var column model.Column
	if err := r.db.WithContext(ctx).Where("column_id = ?", ticket.ColumnID).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrColumnNotFound
		}
		return uuid.Nil, err
	}
	return column.BoardID, nil
}
