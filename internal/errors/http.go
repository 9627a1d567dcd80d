package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorResponse represents the structure of error responses sent to clients
type HTTPErrorResponse struct {
	Error   ErrorInfo              `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ErrorInfo contains the core error information
type ErrorInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ToHTTPError converts a PanelError to an Echo HTTP error
func ToHTTPError(err error) *echo.HTTPError {
	var pe *PanelError
	if As(err, &pe) {
		details := pe.Details
		if pe.Cause != nil {
			if details != "" {
				details += ": "
			}
			details += pe.Cause.Error()
		}
		return echo.NewHTTPError(pe.GetHTTPStatus(), HTTPErrorResponse{
			Error: ErrorInfo{
				Code:    pe.Code,
				Message: pe.Message,
				Details: details,
			},
			Context: pe.Context,
		})
	}

	return echo.NewHTTPError(http.StatusInternalServerError, HTTPErrorResponse{
		Error: ErrorInfo{
			Code:    ErrInternal,
			Message: "Internal server error",
			Details: err.Error(),
		},
	})
}

// BadRequest creates a 400 Bad Request error
func BadRequest(message, details string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, HTTPErrorResponse{
		Error: ErrorInfo{
			Code:    ErrInvalidInput,
			Message: message,
			Details: details,
		},
	})
}
