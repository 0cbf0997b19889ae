package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodePaymentNotFound     = "PAYMENT_NOT_FOUND"
	CodeAlreadyReported     = "ALREADY_REPORTED"
	CodeAlreadyPaid         = "ALREADY_PAID"
	CodeAlreadyCheckedIn    = "ALREADY_CHECKED_IN"
	CodeSelfReport          = "SELF_REPORT"
	CodeSelfCheckIn         = "SELF_CHECK_IN"
	CodeInvalidPayout       = "INVALID_PAYOUT"
	CodeEmptyCharacterName  = "EMPTY_CHARACTER_NAME"
	CodeEmptyProof          = "EMPTY_PROOF"
	CodeInvalidVocation     = "INVALID_VOCATION"
	CodePasswordTooShort    = "PASSWORD_TOO_SHORT"
	CodeEmptySnapshot       = "EMPTY_SNAPSHOT"
	CodeInvalidSkill        = "INVALID_SKILL"
	CodeCharacterRegistered = "CHARACTER_REGISTERED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Not found
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrPaymentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePaymentNotFound, "Payment not found"}}

	// Conflicts
	case errors.Is(err, model.ErrAlreadyReported):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyReported, "Player already reported today"}}
	case errors.Is(err, model.ErrAlreadyPaid):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPaid, "Player already paid today"}}
	case errors.Is(err, model.ErrAlreadyCheckedIn):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCheckedIn, "Player already checked in today"}}
	case errors.Is(err, model.ErrUserExists):
		return &httpError{http.StatusConflict, APIError{CodeCharacterRegistered, "Character name already registered"}}

	// Validation
	case errors.Is(err, model.ErrSelfReport):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfReport, "You cannot report your own character"}}
	case errors.Is(err, model.ErrSelfCheckIn):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfCheckIn, "You cannot check in your own character"}}
	case errors.Is(err, model.ErrInvalidPayoutAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPayout, "Payout amount must be positive"}}
	case errors.Is(err, model.ErrEmptyCharacterName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyCharacterName, "Character name is required"}}
	case errors.Is(err, model.ErrEmptyProof):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyProof, "Payment proof is required"}}
	case errors.Is(err, model.ErrInvalidVocation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidVocation, "Vocation must be MS, ED, EK or RP"}}
	case errors.Is(err, model.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, "Password must be at least 4 characters"}}
	case errors.Is(err, model.ErrEmptySnapshot):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptySnapshot, "Snapshot has no skill values"}}
	case errors.Is(err, model.ErrInvalidSkill):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSkill, "Skill values out of range"}}

	// Authorization
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin privileges required"}}

	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid character name or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
