package handler

import (
	"net/http"

	"github.com/dmaraujo/treinos/internal/api/middleware"
	"github.com/dmaraujo/treinos/internal/api/response"
	"github.com/dmaraujo/treinos/internal/services/earnings"
)

// EarningsHandler handles reporter earnings and ranking endpoints
type EarningsHandler struct {
	earningsService *earnings.Service
}

// NewEarningsHandler creates a new earnings handler
func NewEarningsHandler(earningsService *earnings.Service) *EarningsHandler {
	return &EarningsHandler{
		earningsService: earningsService,
	}
}

// Summary handles GET /api/v1/earnings
func (h *EarningsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	summary, err := h.earningsService.Summary(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EarningsSummaryFromModel(summary))
}

// Details handles GET /api/v1/earnings/details
func (h *EarningsHandler) Details(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	details, err := h.earningsService.Details(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ReportDetailsFromModel(details))
}

// Ranking handles GET /api/v1/ranking
func (h *EarningsHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.earningsService.Ranking(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingFromModel(ranking))
}
