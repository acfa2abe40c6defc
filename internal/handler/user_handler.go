package handler

import (
	"net/http"

	"futuboard/internal/auth"
	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userRepo   *repository.UserRepository
	ticketRepo *repository.TicketRepository
	issuer     *auth.TokenIssuer
}

func NewUserHandler(userRepo *repository.UserRepository, ticketRepo *repository.TicketRepository, issuer *auth.TokenIssuer) *UserHandler {
	return &UserHandler{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		issuer:     issuer,
	}
}

type AddUserRequest struct {
	Name string `json:"name" binding:"required"`
}

type ReplaceUsersRequest []struct {
	UserID string `json:"userid" binding:"required"`
}

type RemoveUserRequest struct {
	UserID string `json:"userid" binding:"required"`
}

type UserResponse struct {
	UserID string `json:"userid"`
	Name   string `json:"name"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID: user.UserID.String(),
		Name:   user.Name,
	}
}

func toUserResponses(users []model.User) []UserResponse {
	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = toUserResponse(&users[i])
	}
	return response
}

func (h *UserHandler) GetBoardUsers(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	users, err := h.userRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

// AddBoardUser creates a fresh user under the board's group. Users are
// created per membership rather than looked up, so dragging the same name
// onto two boards yields two users.
func (h *UserHandler) AddBoardUser(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.userRepo.AddToBoard(c.Request.Context(), boardID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) GetTicketUsers(c *gin.Context) {
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}

	users, err := h.userRepo.GetByTicketID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *UserHandler) checkTicketToken(c *gin.Context, ticketID uuid.UUID) bool {
	boardID, err := h.ticketRepo.ResolveBoardID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return false
	}
	return !boardTokenFailed(c, h.issuer, boardID)
}

func (h *UserHandler) AddTicketUser(c *gin.Context) {
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}
	if !h.checkTicketToken(c, ticketID) {
		return
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.userRepo.AddToTicket(c.Request.Context(), ticketID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// ReplaceTicketUsers swaps the ticket's assigned users for the submitted
// set. Users dropped from the set are deleted with their membership.
func (h *UserHandler) ReplaceTicketUsers(c *gin.Context) {
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}
	if !h.checkTicketToken(c, ticketID) {
		return
	}

	var req ReplaceUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userIDs := make([]uuid.UUID, len(req))
	for i, item := range req {
		userID, err := uuid.Parse(item.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		userIDs[i] = userID
	}

	if err := h.userRepo.ReplaceTicketUsers(c.Request.Context(), ticketID, userIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users updated successfully"})
}

func (h *UserHandler) RemoveTicketUser(c *gin.Context) {
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}
	if !h.checkTicketToken(c, ticketID) {
		return
	}

	var req RemoveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.userRepo.RemoveFromTicket(c.Request.Context(), ticketID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed successfully"})
}

// Delete removes the user wherever it is attached. The owning board is
// resolved through the membership chain for the token check.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseParamID(c, "userId")
	if !ok {
		return
	}

	boardID, err := h.userRepo.ResolveBoardID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if boardTokenFailed(c, h.issuer, boardID) {
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
