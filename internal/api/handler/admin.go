package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmaraujo/treinos/internal/api/middleware"
	"github.com/dmaraujo/treinos/internal/api/request"
	"github.com/dmaraujo/treinos/internal/api/response"
	"github.com/dmaraujo/treinos/internal/services/earnings"
	"github.com/dmaraujo/treinos/internal/services/tracker"
)

// AdminHandler handles admin corrections and the payout ledger
type AdminHandler struct {
	controller      tracker.ControllerInterface
	earningsService *earnings.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(controller tracker.ControllerInterface, earningsService *earnings.Service) *AdminHandler {
	return &AdminHandler{
		controller:      controller,
		earningsService: earningsService,
	}
}

// MarkPaid handles POST /api/v1/admin/players/{name}/payment
func (h *AdminHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	user := middleware.MustGetUser(r.Context())

	record, err := h.controller.MarkPaid(r.Context(), user.ID, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PaymentFromRecord(record))
}

// RemovePayments handles DELETE /api/v1/admin/players/{name}/payment
func (h *AdminHandler) RemovePayments(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	user := middleware.MustGetUser(r.Context())

	if err := h.controller.RemoveTodayPayments(r.Context(), user.ID, name); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RecordPayout handles POST /api/v1/admin/reporters/{name}/payouts
func (h *AdminHandler) RecordPayout(w http.ResponseWriter, r *http.Request) {
	var req request.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	name := mux.Vars(r)["name"]
	user := middleware.MustGetUser(r.Context())

	payout, err := h.earningsService.RecordPayout(r.Context(), user.ID, name, req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PayoutFromModel(payout))
}

// Ledger handles GET /api/v1/admin/payouts
func (h *AdminHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	ledger, err := h.earningsService.Ledger(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LedgerFromModel(ledger))
}

// SetVisibility handles PATCH /api/v1/admin/players/{name}/visibility
func (h *AdminHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req request.VisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	name := mux.Vars(r)["name"]
	user := middleware.MustGetUser(r.Context())

	if err := h.controller.SetHidden(r.Context(), user.ID, name, req.Hidden); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
