package repository_test

import (
	"context"
	"testing"

	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestColumnRepository_Reorder(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	boardID := uuid.New()
	columnIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	// One transaction, one positional update per listed column
	mock.ExpectBegin()
	for i, columnID := range columnIDs {
		mock.ExpectExec(`UPDATE "columns" SET "ordernum"=.+ WHERE column_id = .+ AND board_id = .+`).
			WithArgs(i, columnID, boardID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := columnRepo.Reorder(context.Background(), boardID, columnIDs)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnRepository_Reorder_ForeignColumn(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	boardID := uuid.New()
	columnID := uuid.New()

	// No row matches when the column belongs to another board; the whole
	// reorder rolls back
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "columns" SET "ordernum"=.+`).
		WithArgs(0, columnID, boardID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := columnRepo.Reorder(context.Background(), boardID, []uuid.UUID{columnID})

	assert.ErrorIs(t, err, repository.ErrColumnNotOnBoard)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnRepository_Create_AppendsOrder(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	boardID := uuid.New()
	column := &model.Column{
		ColumnID: uuid.New(),
		BoardID:  boardID,
		Title:    "In Progress",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "columns" WHERE board_id = .+`).
		WithArgs(boardID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO "columns"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := columnRepo.Create(context.Background(), column)

	assert.NoError(t, err)
	assert.Equal(t, 3, column.OrderNum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnRepository_Create_SwimlaneSeedsDefaultLanes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	column := &model.Column{
		ColumnID: uuid.New(),
		BoardID:  uuid.New(),
		Title:    "Sprint",
		Swimlane: true,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "columns"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "columns"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for range model.DefaultSwimlaneTitles {
		mock.ExpectExec(`INSERT INTO "swimlanecolumns"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := columnRepo.Create(context.Background(), column)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
