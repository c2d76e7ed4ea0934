package middleware

import (
	"context"

	"github.com/deppfellow/pharmacy-service/internal/logger"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey and UsernameKey hold the authenticated principal on the Echo context.
	UserIDKey   = "user_id"
	UsernameKey = "username"

	// LoggerKey is used as the key for storing the request-scoped logger.
	LoggerKey = "logger"
)

type loggerCtxKey struct{}

// ContextEnhancer builds the request-scoped logger.
//
// The logger carries request_id, method, path and ip, the New Relic
// trace ids when a transaction exists, and the user once authenticated.
// It is stored on the Echo context and on the request's context.Context.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			setLogger(c, &contextLogger)
			return next(c)
		}
	}
}

func setLogger(c echo.Context, l *zerolog.Logger) {
	c.Set(LoggerKey, l)
	ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, l)
	c.SetRequest(c.Request().WithContext(ctx))
}

// attachUserToLogger adds the principal to the request-scoped logger.
func attachUserToLogger(c echo.Context, userID, username string) {
	l := GetLogger(c).With().
		Str("user_id", userID).
		Str("username", username).
		Logger()
	setLogger(c, &l)
}

// GetUserID returns the authenticated user id, or "" before authentication.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetUsername returns the authenticated username, or "" before authentication.
func GetUsername(c echo.Context) string {
	if username, ok := c.Get(UsernameKey).(string); ok {
		return username
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}

// LoggerFromContext retrieves the request-scoped logger from a context.Context,
// falling back to fallback.
func LoggerFromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return logger
	}
	return fallback
}
