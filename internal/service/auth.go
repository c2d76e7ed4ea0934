package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/deppfellow/pharmacy-service/internal/model/user"
	"github.com/deppfellow/pharmacy-service/internal/repository"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgInvalidCredentials = "Invalid username/password."
	MsgUserInactive       = "User inactive or deleted."
)

// AuthService verifies HTTP Basic credentials against the user store.
type AuthService struct {
	server *server.Server
	users  repository.UserStore
	cost   int

	// dummyHash is compared against for unknown usernames so both
	// failure paths spend the same bcrypt time.
	dummyHash []byte
}

func NewAuthService(s *server.Server, users repository.UserStore) *AuthService {
	return newAuthService(s, users, bcrypt.DefaultCost)
}

func newAuthService(s *server.Server, users repository.UserStore, cost int) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("pharmacy-service-dummy"), cost)
	return &AuthService{
		server:    s,
		users:     users,
		cost:      cost,
		dummyHash: dummy,
	}
}

// Authenticate returns the active user owning username and password.
//
// Unknown users and wrong passwords are indistinguishable to the caller.
func (a *AuthService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
			return nil, errs.NewUnauthorizedError(MsgInvalidCredentials, false)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errs.NewUnauthorizedError(MsgInvalidCredentials, false)
	}

	if !u.IsActive {
		return nil, errs.NewUnauthorizedError(MsgUserInactive, false)
	}

	return u, nil
}

// HashPassword returns the bcrypt hash of password.
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// EnsureUser creates username, or resets its password and reactivates it.
func (a *AuthService) EnsureUser(ctx context.Context, username, password string) (*user.User, error) {
	hash, err := a.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := a.users.Upsert(ctx, username, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to save user %q: %w", username, err)
	}
	return u, nil
}

// EnsureBootstrapUser provisions the configured bootstrap principal, if any.
func (a *AuthService) EnsureBootstrapUser(ctx context.Context) error {
	authCfg := a.server.Config.Auth
	if !authCfg.HasBootstrapUser() {
		a.server.Logger.Warn().Msg("no bootstrap user configured, API access requires an existing user")
		return nil
	}

	u, err := a.EnsureUser(ctx, authCfg.BootstrapUsername, authCfg.BootstrapPassword)
	if err != nil {
		return err
	}

	a.server.Logger.Info().
		Int64("user_id", u.ID).
		Str("username", u.Username).
		Msg("bootstrap user ensured")
	return nil
}
