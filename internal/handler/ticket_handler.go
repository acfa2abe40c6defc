package handler

import (
	"net/http"

	"futuboard/internal/auth"
	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	ticketRepo *repository.TicketRepository
	columnRepo *repository.ColumnRepository
	boardRepo  repository.BoardRepositoryInterface
	issuer     *auth.TokenIssuer
}

func NewTicketHandler(ticketRepo *repository.TicketRepository, columnRepo *repository.ColumnRepository, boardRepo repository.BoardRepositoryInterface, issuer *auth.TokenIssuer) *TicketHandler {
	return &TicketHandler{
		ticketRepo: ticketRepo,
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		issuer:     issuer,
	}
}

type CreateTicketRequest struct {
	TicketID    string  `json:"ticketid" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Storypoints *int    `json:"storypoints"`
	Size        *int    `json:"size"`
	Cornernote  *string `json:"cornernote"`
}

type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Storypoints *int    `json:"storypoints"`
	Size        *int    `json:"size"`
	Cornernote  *string `json:"cornernote"`
}

type ReorderTicketsRequest []struct {
	TicketID string `json:"ticketid" binding:"required"`
}

type TicketResponse struct {
	TicketID     string `json:"ticketid"`
	ColumnID     string `json:"columnid"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	Storypoints  int    `json:"storypoints"`
	Size         int    `json:"size"`
	Order        int    `json:"order"`
	CreationDate string `json:"creation_date"`
	Cornernote   string `json:"cornernote"`
}

func toTicketResponse(ticket *model.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:     ticket.TicketID.String(),
		ColumnID:     ticket.ColumnID.String(),
		Title:        ticket.Title,
		Description:  ticket.Description,
		Color:        ticket.Color,
		Storypoints:  ticket.Storypoints,
		Size:         ticket.Size,
		Order:        ticket.Order,
		CreationDate: formatTime(ticket.CreationDate),
		Cornernote:   ticket.Cornernote,
	}
}

func (h *TicketHandler) GetByColumn(c *gin.Context) {
	columnID, ok := parseParamID(c, "columnId")
	if !ok {
		return
	}

	tickets, err := h.ticketRepo.GetByColumnID(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TicketResponse, len(tickets))
	for i := range tickets {
		response[i] = toTicketResponse(&tickets[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create appends a ticket to the column. Omitted fields fall back to the
// board's ticket template, then to the builtin defaults (white, 8 points).
func (h *TicketHandler) Create(c *gin.Context) {
	columnID, ok := parseParamID(c, "columnId")
	if !ok {
		return
	}

	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	if boardTokenFailed(c, h.issuer, column.BoardID) {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), column.BoardID)
	if err != nil {
		respondError(c, err)
		return
	}

	ticket := &model.Ticket{
		TicketID:    ticketID,
		ColumnID:    columnID,
		Title:       stringOr(req.Title, board.DefaultTicketTitle),
		Description: stringOr(req.Description, board.DefaultTicketDescription),
		Color:       stringOr(req.Color, stringDefault(board.DefaultTicketColor, "white")),
		Storypoints: intOr(req.Storypoints, intDefault(board.DefaultTicketStorypoints, 8)),
		Size:        intOr(req.Size, board.DefaultTicketSize),
		Cornernote:  stringOr(req.Cornernote, board.DefaultTicketCornernote),
	}

	if err := h.ticketRepo.Create(c.Request.Context(), ticket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// Reorder makes the column match the submitted list: listed tickets are
// moved in and renumbered, tickets left behind in the column but missing
// from the list are deleted along with their assigned users.
func (h *TicketHandler) Reorder(c *gin.Context) {
	columnID, ok := parseParamID(c, "columnId")
	if !ok {
		return
	}

	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	if boardTokenFailed(c, h.issuer, column.BoardID) {
		return
	}

	var req ReorderTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ticketIDs := make([]uuid.UUID, len(req))
	for i, item := range req {
		ticketID, err := uuid.Parse(item.TicketID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
			return
		}
		ticketIDs[i] = ticketID
	}

	if err := h.ticketRepo.Reorder(c.Request.Context(), columnID, ticketIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tickets order updated successfully"})
}

func (h *TicketHandler) Update(c *gin.Context) {
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}

	boardID, err := h.ticketRepo.ResolveBoardID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	if boardTokenFailed(c, h.issuer, boardID) {
		return
	}

	ticket, err := h.ticketRepo.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Color != nil {
		ticket.Color = *req.Color
	}
	if req.Storypoints != nil {
		ticket.Storypoints = *req.Storypoints
	}
	if req.Size != nil {
		ticket.Size = *req.Size
	}
	if req.Cornernote != nil {
		ticket.Cornernote = *req.Cornernote
	}

	if err := h.ticketRepo.Update(c.Request.Context(), ticket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *TicketHandler) Delete(c *gin.Context) {
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}

	boardID, err := h.ticketRepo.ResolveBoardID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	if boardTokenFailed(c, h.issuer, boardID) {
		return
	}

	if err := h.ticketRepo.Delete(c.Request.Context(), ticketID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

func stringOr(value *string, fallback string) string {
	if value != nil {
		return *value
	}
	return fallback
}

func stringDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func intOr(value *int, fallback int) int {
	if value != nil {
		return *value
	}
	return fallback
}

func intDefault(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
