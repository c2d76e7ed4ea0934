// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Every store is described by an interface so services can be run
// against the in-memory implementations in tests.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/deppfellow/pharmacy-service/internal/model/user"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownField is returned for equality filters on a column that cannot be filtered.
	ErrUnknownField = errors.New("unknown filter field")
)

// EqualityFilter restricts a query to rows whose Field equals Value exactly.
type EqualityFilter struct {
	Field string
	Value string
}

// PharmacyStore persists Pharmacy records.
//
// Results are ordered by id, which is insertion order.
type PharmacyStore interface {
	FindByID(ctx context.Context, id int64) (*pharmacy.Pharmacy, error)
	// FindByEquality returns every match unpaginated. List endpoints use
	// ListPaginated with the same filters.
	FindByEquality(ctx context.Context, field, value string) ([]pharmacy.Pharmacy, error)
	ListPaginated(ctx context.Context, filters []EqualityFilter, limit, offset int) ([]pharmacy.Pharmacy, int, error)
	Insert(ctx context.Context, p *pharmacy.Pharmacy) error
	Update(ctx context.Context, p *pharmacy.Pharmacy) error
	Delete(ctx context.Context, id int64) error
}

// UserStore persists API principals.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	// Upsert creates the user or, when it exists, replaces its password and reactivates it.
	Upsert(ctx context.Context, username, passwordHash string) (*user.User, error)
}

// filterable reports whether field may be used in an EqualityFilter.
func filterable(field string) bool {
	_, ok := pharmacy.RuleFor(field)
	return ok
}
