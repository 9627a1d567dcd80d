package server

import (
	"net/http"

	"dockpanel/internal/errors"
	"dockpanel/internal/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders handler errors as JSON. PanelErrors keep their code
// and map onto a status; anything else is a 500.
func ErrorHandler(err error, c echo.Context) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = errors.ToHTTPError(err)
	}

	reqID := GetRequestID(c)
	logger.GetLogger(c).WithError(err).WithField("status", he.Code).Debug("Request error")

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}

	var body interface{}
	switch msg := he.Message.(type) {
	case errors.HTTPErrorResponse:
		body = ErrorResponse{
			Error:     msg.Error.Message,
			Code:      string(msg.Error.Code),
			Details:   msg.Error.Details,
			RequestID: reqID,
		}
	case string:
		body = ErrorResponse{Error: msg, RequestID: reqID}
	default:
		body = ErrorResponse{Error: http.StatusText(he.Code), RequestID: reqID}
	}
	_ = c.JSON(he.Code, body)
}

// GetRequestID returns the request ID assigned by the request logger
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// wantsRedirect reports whether the request came from the HTML page, which
// posts plain forms and expects to land back on the panel
func wantsRedirect(c echo.Context) bool {
	return c.FormValue("_redirect") != ""
}
