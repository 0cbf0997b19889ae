package factory

import (
	"time"

	"github.com/dmaraujo/treinos/internal/dependencies/mocks"
	"github.com/dmaraujo/treinos/internal/services/auth"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
	"github.com/dmaraujo/treinos/internal/storage/memory"
	"github.com/dmaraujo/treinos/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked
// dependencies. The clock starts at noon, two hours into the
// training day.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, trainingday.DefaultResetHour, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
