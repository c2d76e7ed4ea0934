package repository

import (
	"github.com/deppfellow/pharmacy-service/internal/server"
)

// Repositories is a container for all repository instances.
//
// Fields hold interfaces so tests can swap in the memory stores.
type Repositories struct {
	Pharmacies PharmacyStore
	Users      UserStore
}

// NewRepositories builds the PostgreSQL-backed repositories on s.DB.Pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Pharmacies: NewPharmacyRepository(s),
		Users:      NewUserRepository(s),
	}
}

// NewMemoryRepositories builds repositories that keep everything in process memory.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Pharmacies: NewMemoryPharmacyStore(),
		Users:      NewMemoryUserStore(),
	}
}
