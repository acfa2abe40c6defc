package handler

import (
	"net/http"

	"futuboard/internal/auth"
	"futuboard/internal/model"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SwimlaneHandler struct {
	swimlaneRepo *repository.SwimlaneRepository
	columnRepo   *repository.ColumnRepository
	ticketRepo   *repository.TicketRepository
	issuer       *auth.TokenIssuer
}

func NewSwimlaneHandler(swimlaneRepo *repository.SwimlaneRepository, columnRepo *repository.ColumnRepository, ticketRepo *repository.TicketRepository, issuer *auth.TokenIssuer) *SwimlaneHandler {
	return &SwimlaneHandler{
		swimlaneRepo: swimlaneRepo,
		columnRepo:   columnRepo,
		ticketRepo:   ticketRepo,
		issuer:       issuer,
	}
}

type CreateActionRequest struct {
	ActionID string `json:"actionid" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Color    string `json:"color"`
}

type UpdateActionRequest struct {
	Title *string `json:"title"`
	Color *string `json:"color"`
}

type ReorderActionsRequest []struct {
	ActionID string `json:"actionid" binding:"required"`
}

type SwimlanecolumnResponse struct {
	SwimlanecolumnID string `json:"swimlanecolumnid"`
	ColumnID         string `json:"columnid"`
	Title            string `json:"title"`
	Color            string `json:"color"`
	OrderNum         int    `json:"ordernum"`
}

type ActionResponse struct {
	ActionID         string `json:"actionid"`
	TicketID         string `json:"ticketid"`
	SwimlanecolumnID string `json:"swimlanecolumnid"`
	Title            string `json:"title"`
	Color            string `json:"color"`
	Order            int    `json:"order"`
	CreationDate     string `json:"creation_date"`
}

func toActionResponse(action *model.Action) ActionResponse {
	return ActionResponse{
		ActionID:         action.ActionID.String(),
		TicketID:         action.TicketID.String(),
		SwimlanecolumnID: action.SwimlanecolumnID.String(),
		Title:            action.Title,
		Color:            action.Color,
		Order:            action.Order,
		CreationDate:     formatTime(action.CreationDate),
	}
}

func (h *SwimlaneHandler) GetLanes(c *gin.Context) {
	columnID, ok := parseParamID(c, "columnId")
	if !ok {
		return
	}

	lanes, err := h.swimlaneRepo.GetByColumnID(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]SwimlanecolumnResponse, len(lanes))
	for i, lane := range lanes {
		response[i] = SwimlanecolumnResponse{
			SwimlanecolumnID: lane.SwimlanecolumnID.String(),
			ColumnID:         lane.ColumnID.String(),
			Title:            lane.Title,
			Color:            lane.Color,
			OrderNum:         lane.OrderNum,
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetActions lists every cell entry in the column's swimlane grid.
func (h *SwimlaneHandler) GetActions(c *gin.Context) {
	columnID, ok := parseParamID(c, "columnId")
	if !ok {
		return
	}

	actions, err := h.swimlaneRepo.GetActionsByColumnID(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ActionResponse, len(actions))
	for i := range actions {
		response[i] = toActionResponse(&actions[i])
	}
	c.JSON(http.StatusOK, response)
}

// CreateAction appends an action to the cell addressed by swimlanecolumn
// and ticket.
func (h *SwimlaneHandler) CreateAction(c *gin.Context) {
	laneID, ok := parseParamID(c, "swimlanecolumnId")
	if !ok {
		return
	}
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}

	boardID, err := h.swimlaneRepo.ResolveBoardIDForLane(c.Request.Context(), laneID)
	if err != nil {
		respondError(c, err)
		return
	}
	if boardTokenFailed(c, h.issuer, boardID) {
		return
	}

	if _, err := h.ticketRepo.GetByID(c.Request.Context(), ticketID); err != nil {
		respondError(c, err)
		return
	}

	var req CreateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	actionID, err := uuid.Parse(req.ActionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action ID format"})
		return
	}

	action := &model.Action{
		ActionID:         actionID,
		TicketID:         ticketID,
		SwimlanecolumnID: laneID,
		Title:            req.Title,
		Color:            stringDefault(req.Color, "white"),
	}

	if err := h.swimlaneRepo.CreateAction(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create action"})
		return
	}
	c.JSON(http.StatusOK, toActionResponse(action))
}

// ReorderActions moves the listed actions into the cell in the submitted
// order.
func (h *SwimlaneHandler) ReorderActions(c *gin.Context) {
	laneID, ok := parseParamID(c, "swimlanecolumnId")
	if !ok {
		return
	}
	ticketID, ok := parseParamID(c, "ticketId")
	if !ok {
		return
	}

	boardID, err := h.swimlaneRepo.ResolveBoardIDForLane(c.Request.Context(), laneID)
	if err != nil {
		respondError(c, err)
		return
	}
	if boardTokenFailed(c, h.issuer, boardID) {
		return
	}

	var req ReorderActionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	actionIDs := make([]uuid.UUID, len(req))
	for i, item := range req {
		actionID, err := uuid.Parse(item.ActionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action ID format"})
			return
		}
		actionIDs[i] = actionID
	}

	if err := h.swimlaneRepo.ReorderActions(c.Request.Context(), laneID, ticketID, actionIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Actions order updated successfully"})
}

func (h *SwimlaneHandler) resolveActionBoard(c *gin.Context, actionID uuid.UUID) (*model.Action, bool) {
	action, err := h.swimlaneRepo.GetActionByID(c.Request.Context(), actionID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	boardID, err := h.swimlaneRepo.ResolveBoardIDForLane(c.Request.Context(), action.SwimlanecolumnID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if boardTokenFailed(c, h.issuer, boardID) {
		return nil, false
	}
	return action, true
}

func (h *SwimlaneHandler) UpdateAction(c *gin.Context) {
	actionID, ok := parseParamID(c, "actionId")
	if !ok {
		return
	}

	action, ok := h.resolveActionBoard(c, actionID)
	if !ok {
		return
	}

	var req UpdateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		action.Title = *req.Title
	}
	if req.Color != nil {
		action.Color = *req.Color
	}

	if err := h.swimlaneRepo.UpdateAction(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update action"})
		return
	}
	c.JSON(http.StatusOK, toActionResponse(action))
}

func (h *SwimlaneHandler) DeleteAction(c *gin.Context) {
	actionID, ok := parseParamID(c, "actionId")
	if !ok {
		return
	}

	if _, ok := h.resolveActionBoard(c, actionID); !ok {
		return
	}

	if err := h.swimlaneRepo.DeleteAction(c.Request.Context(), actionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Action deleted successfully"})
}
