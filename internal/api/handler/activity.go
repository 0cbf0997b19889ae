package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmaraujo/treinos/internal/api/middleware"
	"github.com/dmaraujo/treinos/internal/api/request"
	"github.com/dmaraujo/treinos/internal/api/response"
	"github.com/dmaraujo/treinos/internal/services/activity"
)

// ActivityHandler handles check-ins and the activity board
type ActivityHandler struct {
	activityService *activity.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *activity.Service) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// CheckIn handles POST /api/v1/checkins
func (h *ActivityHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req request.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	checkIn, err := h.activityService.CheckIn(r.Context(), user.ID, req.CharacterName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CheckInFromModel(checkIn))
}

// Board handles GET /api/v1/activity
func (h *ActivityHandler) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.activityService.Board(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActivityBoardFromModel(board))
}
