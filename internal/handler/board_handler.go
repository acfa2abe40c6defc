package handler

import (
	"net/http"

	"futuboard/internal/auth"
	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
	issuer    *auth.TokenIssuer
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface, issuer *auth.TokenIssuer) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		issuer:    issuer,
	}
}

type CreateBoardRequest struct {
	ID       string `json:"id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CheckPasswordRequest struct {
	Password string `json:"password"`
}

type UpdateBoardRequest struct {
	BackgroundColor *string `json:"background_color"`
}

type UpdateBoardTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateBoardNotesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

type UpdateBoardPasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type TicketTemplateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Storypoints *int    `json:"storypoints"`
	Size        *int    `json:"size"`
	Cornernote  *string `json:"cornernote"`
}

type BoardResponse struct {
	BoardID         string `json:"boardid"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Creator         string `json:"creator"`
	CreationDate    string `json:"creation_date"`
	BackgroundColor string `json:"background_color"`
	Notes           string `json:"notes"`

	DefaultTicketTitle       string `json:"default_ticket_title"`
	DefaultTicketDescription string `json:"default_ticket_description"`
	DefaultTicketColor       string `json:"default_ticket_color"`
	DefaultTicketStorypoints int    `json:"default_ticket_storypoints"`
	DefaultTicketSize        int    `json:"default_ticket_size"`
	DefaultTicketCornernote  string `json:"default_ticket_cornernote"`
}

func toBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		BoardID:         board.BoardID.String(),
		Title:           board.Title,
		Description:     board.Description,
		Creator:         board.Creator,
		CreationDate:    formatTime(board.CreationDate),
		BackgroundColor: board.BackgroundColor,
		Notes:           board.Notes,

		DefaultTicketTitle:       board.DefaultTicketTitle,
		DefaultTicketDescription: board.DefaultTicketDescription,
		DefaultTicketColor:       board.DefaultTicketColor,
		DefaultTicketStorypoints: board.DefaultTicketStorypoints,
		DefaultTicketSize:        board.DefaultTicketSize,
		DefaultTicketCornernote:  board.DefaultTicketCornernote,
	}
}

// GetAll lists every board. Public: board contents stay behind the
// password, the list itself does not.
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boardRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create stores a new board under a client-supplied id with a hashed
// password and an empty root usergroup.
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	board := &model.Board{
		BoardID:      boardID,
		Title:        req.Title,
		PasswordHash: hash,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// CheckPassword verifies the board password and issues a bearer token on
// success. Both outcomes are 200; the body carries the verdict.
func (h *BoardHandler) CheckPassword(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !auth.VerifyPassword(req.Password, board.PasswordHash) {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	token, err := h.issuer.GenerateToken(board.BoardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Update changes the board's background color.
func (h *BoardHandler) Update(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.BackgroundColor != nil {
		board.BackgroundColor = *req.BackgroundColor
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) UpdateTitle(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req UpdateBoardTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	board.Title = req.Title
	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) UpdateNotes(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req UpdateBoardNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	board.Notes = *req.Notes
	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// UpdatePassword rotates the board password. The old password must verify
// and the new password must match its confirmation; the stored hash is
// untouched on any failure.
func (h *BoardHandler) UpdatePassword(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req UpdateBoardPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !auth.VerifyPassword(req.OldPassword, board.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Wrong old password"})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Passwords do not match"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	board.PasswordHash = hash
	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) UpdateTicketTemplate(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req TicketTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Title != nil {
		board.DefaultTicketTitle = *req.Title
	}
	if req.Description != nil {
		board.DefaultTicketDescription = *req.Description
	}
	if req.Color != nil {
		board.DefaultTicketColor = *req.Color
	}
	if req.Storypoints != nil {
		board.DefaultTicketStorypoints = *req.Storypoints
	}
	if req.Size != nil {
		board.DefaultTicketSize = *req.Size
	}
	if req.Cornernote != nil {
		board.DefaultTicketCornernote = *req.Cornernote
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Delete removes the board and everything under it in one transaction.
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
