package repository

import (
	"context"
	"errors"

	"futuboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetAll(ctx context.Context) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create stores the board together with its root usergroup.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		return createBoardGroupTx(tx, board.BoardID)
	})
}

func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("creation_date").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("board_id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Delete removes the board and every dependent row. Groups and their users
// are cleaned up explicitly since users are not reachable through foreign
// key cascades; columns, tickets, swimlanecolumns and actions fall to the
// store's cascades when the board row goes. The whole walk runs in one
// transaction so a failure leaves the store unchanged.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Board
		if err := tx.Where("board_id = ?", id).First(&board).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return err
		}

		var groupIDs []uuid.UUID
		if err := tx.Model(&model.Usergroup{}).
			Where("board_id = ?", id).
			Pluck("usergroup_id", &groupIDs).Error; err != nil {
			return err
		}

		var columnIDs []uuid.UUID
		if err := tx.Model(&model.Column{}).
			Where("board_id = ?", id).
			Pluck("column_id", &columnIDs).Error; err != nil {
			return err
		}

		ticketGroupIDs, err := groupIDsForTicketsTx(tx, columnIDs)
		if err != nil {
			return err
		}
		groupIDs = append(groupIDs, ticketGroupIDs...)

		if err := deleteGroupsTx(tx, groupIDs); err != nil {
			return err
		}

		return tx.Delete(&board).Error
	})
}
