package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/deppfellow/pharmacy-service/internal/model/user"
)

// MemoryPharmacyStore keeps pharmacies in process memory, ordered by insertion.
type MemoryPharmacyStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]pharmacy.Pharmacy
	order   []int64

	calls atomic.Int64
}

func NewMemoryPharmacyStore() *MemoryPharmacyStore {
	return &MemoryPharmacyStore{records: make(map[int64]pharmacy.Pharmacy)}
}

// Calls returns how many store operations have been invoked.
func (m *MemoryPharmacyStore) Calls() int64 {
	return m.calls.Load()
}

// Len returns the number of stored pharmacies.
func (m *MemoryPharmacyStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

func (m *MemoryPharmacyStore) FindByID(ctx context.Context, id int64) (*pharmacy.Pharmacy, error) {
	m.calls.Add(1)

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryPharmacyStore) FindByEquality(ctx context.Context, field, value string) ([]pharmacy.Pharmacy, error) {
	items, _, err := m.ListPaginated(ctx, []EqualityFilter{{Field: field, Value: value}}, 0, 0)
	return items, err
}

func (m *MemoryPharmacyStore) ListPaginated(ctx context.Context, filters []EqualityFilter, limit, offset int) ([]pharmacy.Pharmacy, int, error) {
	m.calls.Add(1)

	for _, f := range filters {
		if !filterable(f.Field) {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownField, f.Field)
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]pharmacy.Pharmacy, 0)
	for _, id := range m.order {
		p := m.records[id]
		if matchesAll(&p, filters) {
			matches = append(matches, p)
		}
	}

	total := len(matches)
	if limit <= 0 {
		return matches, total, nil
	}
	if offset >= total {
		return []pharmacy.Pharmacy{}, total, nil
	}

	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func matchesAll(p *pharmacy.Pharmacy, filters []EqualityFilter) bool {
	for _, f := range filters {
		if p.Get(f.Field) != f.Value {
			return false
		}
	}
	return true
}

func (m *MemoryPharmacyStore) Insert(ctx context.Context, p *pharmacy.Pharmacy) error {
	m.calls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	p.ID = m.nextID
	m.records[p.ID] = *p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *MemoryPharmacyStore) Update(ctx context.Context, p *pharmacy.Pharmacy) error {
	m.calls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[p.ID]; !ok {
		return ErrNotFound
	}
	m.records[p.ID] = *p
	return nil
}

func (m *MemoryPharmacyStore) Delete(ctx context.Context, id int64) error {
	m.calls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryUserStore keeps users in process memory, keyed by username.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]user.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]user.User)}
}

func (m *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryUserStore) Upsert(ctx context.Context, username, passwordHash string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		m.nextID++
		u = user.User{ID: m.nextID, Username: username, CreatedAt: time.Now()}
	}
	u.PasswordHash = passwordHash
	u.IsActive = true
	m.users[username] = u

	return &u, nil
}

// SetActive toggles a user's active flag.
func (m *MemoryUserStore) SetActive(username string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	m.users[username] = u
	return nil
}
