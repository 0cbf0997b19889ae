package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/services/activity"
	"github.com/dmaraujo/treinos/internal/services/auth"
	"github.com/dmaraujo/treinos/internal/services/earnings"
	"github.com/dmaraujo/treinos/internal/services/skills"
	"github.com/dmaraujo/treinos/internal/services/tracker"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
	"github.com/dmaraujo/treinos/internal/storage"
	"github.com/dmaraujo/treinos/internal/storage/memory"
	redisstorage "github.com/dmaraujo/treinos/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	TrainingDayService *trainingday.Service
	TrackerController  *tracker.Controller
	EarningsService    *earnings.Service
	ActivityService    *activity.Service
	SkillsService      *skills.Service
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// ResetHour is the hour of day at which a training day starts (optional)
	// If zero, defaults to trainingday.DefaultResetHour
	ResetHour int
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	resetHour := cfg.ResetHour
	if resetHour == 0 {
		resetHour = trainingday.DefaultResetHour
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, resetHour, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, resetHour int, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	days := trainingday.New(resetHour)
	trackerController := tracker.NewController(store, days, clk, logger)
	earningsService := earnings.New(store, days, clk, logger)
	activityService := activity.New(store, days, clk, logger)
	skillsService := skills.New(store, clk, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		TrainingDayService: days,
		TrackerController:  trackerController,
		EarningsService:    earningsService,
		ActivityService:    activityService,
		SkillsService:      skillsService,
		AuthService:        authService,
	}
}
