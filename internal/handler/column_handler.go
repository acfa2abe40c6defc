package handler

import (
	"net/http"

	"futuboard/internal/auth"
	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columnRepo *repository.ColumnRepository
	issuer     *auth.TokenIssuer
}

func NewColumnHandler(columnRepo *repository.ColumnRepository, issuer *auth.TokenIssuer) *ColumnHandler {
	return &ColumnHandler{
		columnRepo: columnRepo,
		issuer:     issuer,
	}
}

type CreateColumnRequest struct {
	ColumnID string `json:"columnid" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Swimlane bool   `json:"swimlane"`
}

type UpdateColumnRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Color       *string  `json:"color"`
	WipLimit    *int     `json:"wip_limit"`
	TicketIDs   []string `json:"ticket_ids"`
}

type ReorderColumnsRequest []struct {
	ColumnID string `json:"columnid" binding:"required"`
}

type ColumnResponse struct {
	ColumnID     string `json:"columnid"`
	BoardID      string `json:"boardid"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	WipLimit     int    `json:"wip_limit"`
	OrderNum     int    `json:"ordernum"`
	CreationDate string `json:"creation_date"`
	Swimlane     bool   `json:"swimlane"`
}

func toColumnResponse(column *model.Column) ColumnResponse {
	return ColumnResponse{
		ColumnID:     column.ColumnID.String(),
		BoardID:      column.BoardID.String(),
		Title:        column.Title,
		Description:  column.Description,
		Color:        column.Color,
		WipLimit:     column.WipLimit,
		OrderNum:     column.OrderNum,
		CreationDate: formatTime(column.CreationDate),
		Swimlane:     column.Swimlane,
	}
}

func (h *ColumnHandler) GetAll(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	columns, err := h.columnRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ColumnResponse, len(columns))
	for i := range columns {
		response[i] = toColumnResponse(&columns[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *ColumnHandler) Create(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	column := &model.Column{
		ColumnID: columnID,
		BoardID:  boardID,
		Title:    req.Title,
		Swimlane: req.Swimlane,
	}

	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}
	c.JSON(http.StatusOK, toColumnResponse(column))
}

// Reorder renumbers the board's columns to match the submitted id list.
func (h *ColumnHandler) Reorder(c *gin.Context) {
	boardID, ok := parseParamID(c, "boardId")
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnIDs := make([]uuid.UUID, len(req))
	for i, item := range req {
		columnID, err := uuid.Parse(item.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		columnIDs[i] = columnID
	}

	if err := h.columnRepo.Reorder(c.Request.Context(), boardID, columnIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Columns reordered successfully"})
}

// Update edits column fields and optionally pulls the listed tickets into
// the column (move semantics: tickets are reparented, never deleted).
func (h *ColumnHandler) Update(c *gin.Context) {
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

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		column.Title = *req.Title
	}
	if req.Description != nil {
		column.Description = *req.Description
	}
	if req.Color != nil {
		column.Color = *req.Color
	}
	if req.WipLimit != nil {
		column.WipLimit = *req.WipLimit
	}

	if len(req.TicketIDs) > 0 {
		ticketIDs := make([]uuid.UUID, len(req.TicketIDs))
		for i, raw := range req.TicketIDs {
			ticketID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
				return
			}
			ticketIDs[i] = ticketID
		}
		if err := h.columnRepo.AdoptTickets(c.Request.Context(), columnID, ticketIDs); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := h.columnRepo.Update(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}
	c.JSON(http.StatusOK, toColumnResponse(column))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
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

	if err := h.columnRepo.Delete(c.Request.Context(), columnID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}
