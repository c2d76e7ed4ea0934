package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/pharmacy-service/internal/model/user"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/jackc/pgx/v5"
)

// UserRepository is the PostgreSQL implementation of UserStore.
type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	stmt := `
		SELECT id, username, password_hash, is_active, created_at
		FROM users
		WHERE username = @username
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get user by username query: %w", err)
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect row from table:users: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) Upsert(ctx context.Context, username, passwordHash string) (*user.User, error) {
	stmt := `
		INSERT INTO
			users (username, password_hash)
		VALUES
			(@username, @password_hash)
		ON CONFLICT (username) DO UPDATE
		SET
			password_hash = EXCLUDED.password_hash,
			is_active = TRUE
		RETURNING id, username, password_hash, is_active, created_at
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"username":      username,
		"password_hash": passwordHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute upsert user query: %w", err)
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users: %w", err)
	}

	return &u, nil
}
