package repository

import (
	"context"
	"errors"

	"futuboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SwimlaneRepository struct {
	db *gorm.DB
}

func NewSwimlaneRepository(db *gorm.DB) *SwimlaneRepository {
	return &SwimlaneRepository{db: db}
}

func (r *SwimlaneRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Swimlanecolumn, error) {
	var lanes []model.Swimlanecolumn
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("ordernum").
		Find(&lanes).Error
	return lanes, err
}

func (r *SwimlaneRepository) GetLaneByID(ctx context.Context, id uuid.UUID) (*model.Swimlanecolumn, error) {
	var lane model.Swimlanecolumn
	if err := r.db.WithContext(ctx).Where("swimlanecolumn_id = ?", id).First(&lane).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwimlanecolumnNotFound
		}
		return nil, err
	}
	return &lane, nil
}

// GetActionsByColumnID returns every grid cell entry in a swimlane column,
// across all of its rows.
func (r *SwimlaneRepository) GetActionsByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Action, error) {
	var actions []model.Action
	err := r.db.WithContext(ctx).
		Joins("JOIN swimlanecolumns ON swimlanecolumns.swimlanecolumn_id = actions.swimlanecolumn_id").
		Where("swimlanecolumns.column_id = ?", columnID).
		Order(`actions."order"`).
		Find(&actions).Error
	return actions, err
}

func (r *SwimlaneRepository) GetActionByID(ctx context.Context, id uuid.UUID) (*model.Action, error) {
	var action model.Action
	if err := r.db.WithContext(ctx).Where("action_id = ?", id).First(&action).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}
	return &action, nil
}

// CreateAction appends the action at the end of its grid cell and gives it
// an empty assigned-users group.
func (r *SwimlaneRepository) CreateAction(ctx context.Context, action *model.Action) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Action{}).
			Where("swimlanecolumn_id = ? AND ticket_id = ?", action.SwimlanecolumnID, action.TicketID).
			Count(&count).Error; err != nil {
			return err
		}
		action.Order = int(count)

		if err := tx.Create(action).Error; err != nil {
			return err
		}
		return createActionGroupTx(tx, action.ActionID)
	})
}

func (r *SwimlaneRepository) UpdateAction(ctx context.Context, action *model.Action) error {
	return r.db.WithContext(ctx).Save(action).Error
}

// ReorderActions moves the listed actions into the cell and renumbers them
// by list position. Actions come along from other cells; none are deleted.
func (r *SwimlaneRepository) ReorderActions(ctx context.Context, laneID, ticketID uuid.UUID, actionIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, actionID := range actionIDs {
			result := tx.Model(&model.Action{}).
				Where("action_id = ?", actionID).
				Updates(map[string]interface{}{
					"swimlanecolumn_id": laneID,
					"ticket_id":         ticketID,
					"order":             index,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrActionNotFound
			}
		}
		return nil
	})
}

func (r *SwimlaneRepository) DeleteAction(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var action model.Action
		if err := tx.Where("action_id = ?", id).First(&action).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActionNotFound
			}
			return err
		}

		var groupIDs []uuid.UUID
		if err := tx.Model(&model.Usergroup{}).
			Where("action_id = ?", id).
			Pluck("usergroup_id", &groupIDs).Error; err != nil {
			return err
		}
		if err := deleteGroupsTx(tx, groupIDs); err != nil {
			return err
		}

		return tx.Delete(&action).Error
	})
}

// ResolveBoardIDForLane walks swimlanecolumn -> column -> board for token
// checks.
func (r *SwimlaneRepository) ResolveBoardIDForLane(ctx context.Context, laneID uuid.UUID) (uuid.UUID, error) {
	lane, err := r.GetLaneByID(ctx, laneID)
	if err != nil {
		return uuid.Nil, err
	}

	var column model.Column
	if err := r.db.WithContext(ctx).Where("column_id = ?", lane.ColumnID).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrColumnNotFound
		}
		return uuid.Nil, err
	}
	return column.BoardID, nil
}
