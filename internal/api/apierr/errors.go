package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edgewalker/leagueops/internal/model"
	"github.com/edgewalker/leagueops/internal/nametag"
	"github.com/edgewalker/leagueops/internal/services/auth"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodePlayerExists       = "PLAYER_EXISTS"
	CodeEmptyName          = "EMPTY_NAME"
	CodeInvalidPosition    = "INVALID_POSITION"
	CodeInvalidTeam        = "INVALID_TEAM"
	CodeInvalidScoreKind   = "INVALID_SCORE_KIND"
	CodeInvalidPayment     = "INVALID_PAYMENT"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeLogNotFound        = "LOG_NOT_FOUND"
	CodeInvalidDate        = "INVALID_DATE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
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

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "Player already registered"}}
	case errors.Is(err, model.ErrEmptyName), errors.Is(err, nametag.ErrEmptyBaseName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyName, "Player name is required"}}
	case errors.Is(err, model.ErrInvalidPosition), errors.Is(err, nametag.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Position must be PG, SG, SF, PF or C"}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "Team must be a letter A-J"}}
	case errors.Is(err, model.ErrInvalidScoreKind):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScoreKind, "Score kind must be win or lose"}}
	case errors.Is(err, model.ErrInvalidPayment):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPayment, "Payment method must be cash or gcash"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrLogNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLogNotFound, "No log saved for that date"}}
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDate, "Date must be YYYY-MM-DD"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
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
