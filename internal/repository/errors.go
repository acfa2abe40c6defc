package repository

import "errors"

// Sentinel errors translated to HTTP status codes at the handler boundary.
var (
	ErrBoardNotFound          = errors.New("board not found")
	ErrColumnNotFound         = errors.New("column not found")
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrSwimlanecolumnNotFound = errors.New("swimlanecolumn not found")
	ErrActionNotFound         = errors.New("action not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrUsergroupNotFound      = errors.New("usergroup not found")

	// ErrColumnNotOnBoard is returned when a reorder submission lists a
	// column that belongs to a different board.
	ErrColumnNotOnBoard = errors.New("column does not belong to the board")
)
