package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmaraujo/treinos/internal/api/middleware"
	"github.com/dmaraujo/treinos/internal/api/request"
	"github.com/dmaraujo/treinos/internal/api/response"
	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/services/skills"
)

// SkillsHandler handles training skill snapshot endpoints
type SkillsHandler struct {
	skillsService *skills.Service
}

// NewSkillsHandler creates a new skills handler
func NewSkillsHandler(skillsService *skills.Service) *SkillsHandler {
	return &SkillsHandler{
		skillsService: skillsService,
	}
}

// Record handles POST /api/v1/skills
func (h *SkillsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.SkillSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	snapshot := model.SkillSnapshot{
		Sword:     skillValueToModel(req.Sword),
		Club:      skillValueToModel(req.Club),
		Axe:       skillValueToModel(req.Axe),
		Distance:  skillValueToModel(req.Distance),
		Shielding: skillValueToModel(req.Shielding),
		Magic:     skillValueToModel(req.Magic),
	}

	recorded, err := h.skillsService.Record(r.Context(), user.ID, snapshot)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SkillSnapshotFromModel(recorded))
}

// History handles GET /api/v1/skills
func (h *SkillsHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	user := middleware.MustGetUser(r.Context())
	snapshots, err := h.skillsService.History(r.Context(), user.ID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SkillSnapshotsFromModel(snapshots))
}

func skillValueToModel(v *request.SkillValue) *model.SkillValue {
	if v == nil {
		return nil
	}
	return &model.SkillValue{Level: v.Level, Percent: v.Percent}
}
