package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *MemoryPharmacyStore, names ...string) []pharmacy.Pharmacy {
	t.Helper()

	out := make([]pharmacy.Pharmacy, 0, len(names))
	for i, name := range names {
		p := pharmacy.Pharmacy{
			Name:          name,
			Address:       "1 Main St",
			PhoneNumber:   "555-0100",
			LicenseNumber: "LIC-" + string(rune('A'+i)),
		}
		require.NoError(t, store.Insert(context.Background(), &p))
		out = append(out, p)
	}
	return out
}

func TestMemoryPharmacyStoreInsertAssignsIncreasingIDs(t *testing.T) {
	store := NewMemoryPharmacyStore()
	items := seed(t, store, "A", "B", "C")

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(3), items[2].ID)
	assert.Equal(t, 3, store.Len())
}

func TestMemoryPharmacyStoreFindByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPharmacyStore()
	items := seed(t, store, "Green Cross")

	got, err := store.FindByID(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, items[0], *got)

	_, err = store.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPharmacyStoreFindByEqualityKeepsInsertionOrder(t *testing.T) {
	store := NewMemoryPharmacyStore()
	seed(t, store, "Alpha", "Beta", "Alpha", "alpha")

	got, err := store.FindByEquality(context.Background(), pharmacy.FieldName, "Alpha")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestMemoryPharmacyStoreRejectsUnknownFilterField(t *testing.T) {
	store := NewMemoryPharmacyStore()

	_, err := store.FindByEquality(context.Background(), "id; DROP TABLE", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestMemoryPharmacyStoreListPaginated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPharmacyStore()
	seed(t, store, "A", "B", "C", "D", "E")

	page, total, err := store.ListPaginated(ctx, nil, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "C", page[0].Name)
	assert.Equal(t, "D", page[1].Name)

	page, total, err = store.ListPaginated(ctx, nil, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 1)

	page, _, err = store.ListPaginated(ctx, nil, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryPharmacyStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPharmacyStore()
	items := seed(t, store, "Old")

	updated := items[0]
	updated.Name = "New"
	require.NoError(t, store.Update(ctx, &updated))

	got, err := store.FindByID(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	missing := pharmacy.Pharmacy{ID: 42, Name: "x"}
	assert.ErrorIs(t, store.Update(ctx, &missing), ErrNotFound)
}

func TestMemoryPharmacyStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPharmacyStore()
	items := seed(t, store, "A", "B", "C")

	require.NoError(t, store.Delete(ctx, items[1].ID))
	assert.ErrorIs(t, store.Delete(ctx, items[1].ID), ErrNotFound)

	all, total, err := store.ListPaginated(ctx, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	want := []pharmacy.Pharmacy{items[0], items[2]}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("ListPaginated() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryPharmacyStoreCountsCalls(t *testing.T) {
	store := NewMemoryPharmacyStore()
	assert.Equal(t, int64(0), store.Calls())

	_, _ = store.FindByID(context.Background(), 1)
	assert.Equal(t, int64(1), store.Calls())
}

func TestMemoryUserStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	created, err := store.Upsert(ctx, "admin", "hash-1")
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	require.NoError(t, store.SetActive("admin", false))

	updated, err := store.Upsert(ctx, "admin", "hash-2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "hash-2", updated.PasswordHash)
	assert.True(t, updated.IsActive)

	_, err = store.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildWhere(t *testing.T) {
	where, args, err := buildWhere([]EqualityFilter{{Field: pharmacy.FieldName, Value: "Alpha"}})
	require.NoError(t, err)
	assert.Equal(t, " WHERE name = @f0", where)
	assert.Equal(t, "Alpha", args["f0"])

	where, args, err = buildWhere(nil)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)

	_, _, err = buildWhere([]EqualityFilter{{Field: "password", Value: "x"}})
	assert.ErrorIs(t, err, ErrUnknownField)
}
