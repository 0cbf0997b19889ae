package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmaraujo/treinos/internal/api/handler"
	"github.com/dmaraujo/treinos/internal/api/middleware"
	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/services/activity"
	"github.com/dmaraujo/treinos/internal/services/auth"
	"github.com/dmaraujo/treinos/internal/services/earnings"
	"github.com/dmaraujo/treinos/internal/services/skills"
	"github.com/dmaraujo/treinos/internal/services/tracker"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	Tracker         tracker.ControllerInterface
	EarningsService *earnings.Service
	ActivityService *activity.Service
	SkillsService   *skills.Service
	Days            *trainingday.Service
	Clock           clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	trackerHandler := handler.NewTrackerHandler(cfg.Tracker, cfg.Days, cfg.Clock)
	earningsHandler := handler.NewEarningsHandler(cfg.EarningsService)
	activityHandler := handler.NewActivityHandler(cfg.ActivityService)
	adminHandler := handler.NewAdminHandler(cfg.Tracker, cfg.EarningsService)
	skillsHandler := handler.NewSkillsHandler(cfg.SkillsService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Tracker routes (all require auth)
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/players", trackerHandler.Standings).Methods(http.MethodGet)
	protected.HandleFunc("/players/{name}/payments", trackerHandler.PlayerPayments).Methods(http.MethodGet)
	protected.HandleFunc("/reports", trackerHandler.Report).Methods(http.MethodPost)
	protected.HandleFunc("/payments", trackerHandler.Pay).Methods(http.MethodPost)
	protected.HandleFunc("/payments/mine", trackerHandler.MyPayments).Methods(http.MethodGet)
	protected.HandleFunc("/stats/daily", trackerHandler.DailySummary).Methods(http.MethodGet)

	// Earnings routes
	protected.HandleFunc("/earnings", earningsHandler.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/earnings/details", earningsHandler.Details).Methods(http.MethodGet)
	protected.HandleFunc("/ranking", earningsHandler.Ranking).Methods(http.MethodGet)

	// Activity routes
	protected.HandleFunc("/checkins", activityHandler.CheckIn).Methods(http.MethodPost)
	protected.HandleFunc("/activity", activityHandler.Board).Methods(http.MethodGet)

	// Skill snapshot routes
	protected.HandleFunc("/skills", skillsHandler.Record).Methods(http.MethodPost)
	protected.HandleFunc("/skills", skillsHandler.History).Methods(http.MethodGet)

	// Admin routes (admin check happens in the controller)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.HandleFunc("/players/{name}/payment", adminHandler.MarkPaid).Methods(http.MethodPost)
	admin.HandleFunc("/players/{name}/payment", adminHandler.RemovePayments).Methods(http.MethodDelete)
	admin.HandleFunc("/players/{name}/visibility", adminHandler.SetVisibility).Methods(http.MethodPatch)
	admin.HandleFunc("/reporters/{name}/payouts", adminHandler.RecordPayout).Methods(http.MethodPost)
	admin.HandleFunc("/payouts", adminHandler.Ledger).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
