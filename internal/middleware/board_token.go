package middleware

import (
	"net/http"

	"futuboard/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BoardTokenMiddleware rejects requests whose bearer token was not issued
// for the board in the route. Routes without a boardId param resolve the
// board in their handlers instead.
func BoardTokenMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		boardID, err := uuid.Parse(c.Param("boardId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
			c.Abort()
			return
		}

		if err := issuer.CheckRequest(c.Request, boardID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": AuthErrorMessage(err)})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthErrorMessage maps token verification errors to client-facing text.
func AuthErrorMessage(err error) string {
	switch err {
	case auth.ErrTokenMissing:
		return "Access token missing"
	case auth.ErrTokenExpired:
		return "Access token expired"
	case auth.ErrBoardMismatch:
		return "Access token does not grant access to this board"
	default:
		return "Access token invalid"
	}
}
