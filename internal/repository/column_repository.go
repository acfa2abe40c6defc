package repository

import (
	"context"
	"errors"

	"futuboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// Create appends the column at the end of the board's sequence. Swimlane
// columns are seeded with the default swimlanecolumn rows.
func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Column{}).
			Where("board_id = ?", column.BoardID).
			Count(&count).Error; err != nil {
			return err
		}
		column.OrderNum = int(count)

		if err := tx.Create(column).Error; err != nil {
			return err
		}

		if !column.Swimlane {
			return nil
		}
		for i, title := range model.DefaultSwimlaneTitles {
			lane := model.Swimlanecolumn{
				SwimlanecolumnID: uuid.New(),
				ColumnID:         column.ColumnID,
				Title:            title,
				Color:            "white",
				OrderNum:         i,
			}
			if err := tx.Create(&lane).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("column_id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("ordernum").
		Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// AdoptTickets moves the listed tickets into the column and renumbers them
// to match the submitted order. Tickets already in the column but absent
// from the list keep their order values untouched.
func (r *ColumnRepository) AdoptTickets(ctx context.Context, columnID uuid.UUID, ticketIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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

// Reorder rewrites ordernum so each listed column gets its index in the
// submitted list. Every listed column must belong to the board; columns of
// the board absent from the list are left unmoved.
func (r *ColumnRepository) Reorder(ctx context.Context, boardID uuid.UUID, columnIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, columnID := range columnIDs {
			result := tx.Model(&model.Column{}).
				Where("column_id = ? AND board_id = ?", columnID, boardID).
				Update("ordernum", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrColumnNotOnBoard
			}
		}
		return nil
	})
}

// Delete removes the column with its tickets, swimlane rows and actions.
// Surviving columns keep their ordernum values; the next explicit reorder
// call re-establishes contiguity.
func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column model.Column
		if err := tx.Where("column_id = ?", id).First(&column).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return err
		}

		groupIDs, err := groupIDsForTicketsTx(tx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if err := deleteGroupsTx(tx, groupIDs); err != nil {
			return err
		}

		return tx.Delete(&column).Error
	})
}
