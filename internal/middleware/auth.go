package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/deppfellow/pharmacy-service/internal/model/user"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// MsgCredentialsMissing is returned when no usable Authorization header was sent.
	MsgCredentialsMissing = "Authentication credentials were not provided."

	authFailureKey = "auth_failure"
)

// Authenticator checks a username/password pair.
//
// A rejected pair is reported as a 401 *errs.HTTPError; any other error
// is an infrastructure failure.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
}

// AuthMiddleware holds the app Server so middleware can access shared deps
// like Logger and Config.
type AuthMiddleware struct {
	server        *server.Server
	authenticator Authenticator
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server:        s,
		authenticator: authenticator,
	}
}

// RequireAuth is an Echo middleware that enforces HTTP Basic authentication.
//
// Credentials are parsed by echo's BasicAuth middleware and checked by the
// Authenticator. Every failure becomes a JSON 401 carrying a
// WWW-Authenticate challenge for the configured realm. On success the
// user id and username are stored on the Echo context and the
// request-scoped logger.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	realm := auth.server.Config.Auth.Realm

	guarded := middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm:     realm,
		Validator: auth.validate,
	})(next)

	return func(c echo.Context) error {
		err := guarded(c)
		if err == nil || GetUserID(c) != "" {
			return err
		}

		// BasicAuth rejects missing or undecodable headers with a plain
		// echo error; anything else is the authenticator's own failure.
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) && (echoErr.Code == http.StatusUnauthorized || echoErr.Code == http.StatusBadRequest) {
			message := MsgCredentialsMissing
			if reason, ok := c.Get(authFailureKey).(string); ok && reason != "" {
				message = reason
			}
			err = errs.NewUnauthorizedError(message, false)
		}

		if errs.StatusOf(err) == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Basic realm="+strconv.Quote(realm))
		}
		return err
	}
}

func (auth *AuthMiddleware) validate(username, password string, c echo.Context) (bool, error) {
	start := time.Now()

	u, err := auth.authenticator.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
			c.Set(authFailureKey, httpErr.Message)

			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Str("username", username).
				Dur("duration", time.Since(start)).
				Msg("authentication rejected")
			return false, nil
		}
		return false, err
	}

	userID := strconv.FormatInt(u.ID, 10)
	c.Set(UserIDKey, userID)
	c.Set(UsernameKey, u.Username)
	attachUserToLogger(c, userID, u.Username)

	GetLogger(c).Debug().
		Str("function", "RequireAuth").
		Dur("duration", time.Since(start)).
		Msg("user authenticated successfully")

	return true, nil
}
