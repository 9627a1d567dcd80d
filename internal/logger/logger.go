package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance
var Logger *logrus.Logger

// Fields is an alias for logrus.Fields
type Fields = logrus.Fields

type requestIDKey struct{}

func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)

	if os.Getenv("DOCKPANEL_ENV") == "production" {
		SetFormat("json")
	} else {
		SetFormat("text")
	}
}

// SetLevel sets the logging level
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "info":
		Logger.SetLevel(logrus.InfoLevel)
	case "warn":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}
}

// SetFormat switches between the "json" and "text" formatters
func SetFormat(format string) {
	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
		return
	}
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetOutput redirects the global logger
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// ContextWithRequestID stores a request ID for WithContext to pick up
func ContextWithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// WithContext returns a logger with context fields
func WithContext(ctx context.Context) *logrus.Entry {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return Logger.WithField("request_id", reqID)
	}
	return Logger.WithContext(ctx)
}

// WithFields returns a logger with additional fields
func WithFields(fields Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithError adds an error field to the logger
func WithError(err error) *logrus.Entry {
	return Logger.WithError(err)
}

// WithField adds a field to the logger
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// Info logs an info message
func Info(msg string) {
	Logger.Info(msg)
}

// RequestLogger returns a middleware for logging HTTP requests
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = xid.New().String()
			}
			c.Set("request_id", reqID)
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)
			c.SetRequest(c.Request().WithContext(ContextWithRequestID(c.Request().Context(), reqID)))

			reqLogger := Logger.WithFields(Fields{
				"request_id": reqID,
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"ip":         c.RealIP(),
			})
			c.Set("logger", reqLogger)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status
			entry := reqLogger.WithFields(Fields{
				"status":     status,
				"latency_ms": latency.Milliseconds(),
			})
			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			switch {
			case status >= 500:
				entry.Error("Request failed")
			case status >= 400:
				entry.Warn("Request error")
			default:
				entry.Debug("Request completed")
			}

			return nil
		}
	}
}

// GetLogger extracts logger from echo context
func GetLogger(c echo.Context) *logrus.Entry {
	if l, ok := c.Get("logger").(*logrus.Entry); ok {
		return l
	}
	if reqID, ok := c.Get("request_id").(string); ok {
		return Logger.WithField("request_id", reqID)
	}
	return Logger.WithFields(Fields{})
}
