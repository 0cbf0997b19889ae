package trainingday

import (
	"fmt"
	"time"
)

// DefaultResetHour is the hour of day at which a training day starts
const DefaultResetHour = 10

// Window is one training day as a half-open interval [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Service computes training-day boundaries. A training day runs from
// the reset hour to the reset hour of the next calendar day, so times
// before the reset hour belong to the previous day's window.
type Service struct {
	resetHour int
}

// New creates a training-day service with the given reset hour (0-23)
func New(resetHour int) *Service {
	if resetHour < 0 || resetHour > 23 {
		resetHour = DefaultResetHour
	}
	return &Service{resetHour: resetHour}
}

// DayStart returns the start of the training day containing t
func (s *Service) DayStart(t time.Time) time.Time {
	start := time.Date(t.Year(), t.Month(), t.Day(), s.resetHour, 0, 0, 0, t.Location())
	if t.Hour() < s.resetHour {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// DayEnd returns the exclusive end of the training day beginning at start
func (s *Service) DayEnd(start time.Time) time.Time {
	return start.Add(24 * time.Hour)
}

// DayWindow returns the training day offsetDays calendar days away
// from the day containing now. Offset 0 is today, -1 is yesterday.
func (s *Service) DayWindow(offsetDays int, now time.Time) Window {
	start := s.DayStart(now).AddDate(0, 0, offsetDays)
	return Window{Start: start, End: s.DayEnd(start)}
}

// TrainingDate returns the YYYY-MM-DD date of the training day
// containing t. This is the key under which payments are filed.
func (s *Service) TrainingDate(t time.Time) string {
	start := s.DayStart(t)
	return fmt.Sprintf("%04d-%02d-%02d", start.Year(), start.Month(), start.Day())
}

// WindowForDate returns the training day for a YYYY-MM-DD training
// date in the given location
func (s *Service) WindowForDate(trainingDate string, loc *time.Location) (Window, error) {
	day, err := time.ParseInLocation("2006-01-02", trainingDate, loc)
	if err != nil {
		return Window{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), s.resetHour, 0, 0, 0, loc)
	return Window{Start: start, End: s.DayEnd(start)}, nil
}

// NextReset returns the first reset strictly after now
func (s *Service) NextReset(now time.Time) time.Time {
	return s.DayEnd(s.DayStart(now))
}
