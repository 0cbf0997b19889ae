package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dmaraujo/treinos/internal/api/middleware"
	"github.com/dmaraujo/treinos/internal/api/request"
	"github.com/dmaraujo/treinos/internal/api/response"
	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/services/tracker"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
)

// TrackerHandler handles training-day reporting and payment endpoints
type TrackerHandler struct {
	controller tracker.ControllerInterface
	days       *trainingday.Service
	clock      clock.Clock
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(controller tracker.ControllerInterface, days *trainingday.Service, clock clock.Clock) *TrackerHandler {
	return &TrackerHandler{
		controller: controller,
		days:       days,
		clock:      clock,
	}
}

// Standings handles GET /api/v1/players
// The optional day query parameter selects a past day as a negative
// offset, e.g. day=-1 for yesterday.
func (h *TrackerHandler) Standings(w http.ResponseWriter, r *http.Request) {
	offsetDays := 0
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("day must be an integer offset"))
			return
		}
		if parsed > 0 {
			WriteError(w, NewInvalidRequestError("day cannot be in the future"))
			return
		}
		offsetDays = parsed
	}

	standings, err := h.controller.ListStandings(r.Context(), offsetDays)
	if err != nil {
		WriteError(w, err)
		return
	}

	window := h.days.DayWindow(offsetDays, h.clock.Now())
	response.JSON(w, http.StatusOK, response.StandingsResponse{
		TrainingDate: h.days.TrainingDate(window.Start),
		Standings:    response.StandingsFromModel(standings),
	})
}

// Report handles POST /api/v1/reports
func (h *TrackerHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req request.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	standing, err := h.controller.Report(r.Context(), user.ID, req.CharacterName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.StandingFromModel(standing))
}

// Pay handles POST /api/v1/payments
func (h *TrackerHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	record, err := h.controller.RecordPayment(r.Context(), user.ID, req.CharacterName, req.Proof)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PaymentFromRecord(record))
}

// MyPayments handles GET /api/v1/payments/mine
func (h *TrackerHandler) MyPayments(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	records, err := h.controller.UserPayments(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentsFromRecords(records))
}

// PlayerPayments handles GET /api/v1/players/{name}/payments
func (h *TrackerHandler) PlayerPayments(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	records, err := h.controller.PlayerPayments(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentsFromRecords(records))
}

// DailySummary handles GET /api/v1/stats/daily
func (h *TrackerHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.controller.DailySummary(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DailySummaryFromModel(summary))
}
