package handler

import (
	"errors"
	"net/http"
	"time"

	"futuboard/internal/auth"
	"futuboard/internal/middleware"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps repository errors to HTTP status codes at the
// boundary. Store error text is never forwarded to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrBoardNotFound),
		errors.Is(err, repository.ErrColumnNotFound),
		errors.Is(err, repository.ErrTicketNotFound),
		errors.Is(err, repository.ErrSwimlanecolumnNotFound),
		errors.Is(err, repository.ErrActionNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrUsergroupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrColumnNotOnBoard):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}

// boardTokenFailed verifies the request's bearer token against the board
// owning the addressed resource. Used by routes that carry a column,
// ticket, action or user id instead of a board id; boardId routes go
// through the middleware instead. Writes the 401 itself and reports
// whether the caller should bail out.
func boardTokenFailed(c *gin.Context, issuer *auth.TokenIssuer, boardID uuid.UUID) bool {
	if err := issuer.CheckRequest(c.Request, boardID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": middleware.AuthErrorMessage(err)})
		return true
	}
	return false
}

func parseParamID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
