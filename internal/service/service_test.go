package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/deppfellow/pharmacy-service/internal/config"
	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/deppfellow/pharmacy-service/internal/repository"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Auth: config.AuthConfig{
				Realm:             "pharmacy",
				BootstrapUsername: "admin",
				BootstrapPassword: "s3cret",
			},
			Pagination: config.DefaultPaginationConfig(),
		},
		Logger: &logger,
	}
}

type recordingNotifier struct {
	notified []int64
	err      error
}

func (r *recordingNotifier) EnqueuePharmacyRegistered(_ context.Context, p *pharmacy.Pharmacy) error {
	r.notified = append(r.notified, p.ID)
	return r.err
}

func createRequest(name string) *pharmacy.CreatePharmacyRequest {
	return &pharmacy.CreatePharmacyRequest{Fields: pharmacy.Fields{
		Name:          pharmacy.Value(name),
		Address:       pharmacy.Value("1 Main St"),
		PhoneNumber:   pharmacy.Value("555-0100"),
		LicenseNumber: pharmacy.Value("LIC-" + name),
	}}
}

func newPharmacyService(t *testing.T) (*PharmacyService, *repository.MemoryPharmacyStore, *recordingNotifier) {
	t.Helper()
	store := repository.NewMemoryPharmacyStore()
	notifier := &recordingNotifier{}
	return NewPharmacyService(testServer(), store, notifier), store, notifier
}

func assertStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestCreateStoresTrimmedValuesAndNotifies(t *testing.T) {
	svc, store, notifier := newPharmacyService(t)

	req := createRequest("Green Cross")
	req.Name = pharmacy.Value("  Green Cross  ")

	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Green Cross", p.Name)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []int64{1}, notifier.notified)
}

func TestCreateIgnoresNotifierFailure(t *testing.T) {
	store := repository.NewMemoryPharmacyStore()
	svc := NewPharmacyService(testServer(), store, &recordingNotifier{err: errors.New("redis down")})

	_, err := svc.Create(context.Background(), createRequest("Alpha"))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestCreateWithoutNotifier(t *testing.T) {
	svc := NewPharmacyService(testServer(), repository.NewMemoryPharmacyStore(), nil)

	_, err := svc.Create(context.Background(), createRequest("Alpha"))
	assert.NoError(t, err)
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newPharmacyService(t)

	created, err := svc.Create(ctx, createRequest("Alpha"))
	require.NoError(t, err)

	got, err := svc.Retrieve(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Retrieve(ctx, "999")
	assertStatus(t, err, http.StatusNotFound, MsgNotFound)

	callsBefore := store.Calls()
	for _, id := range []string{"abcdef", "-1", "0", "1.5", ""} {
		_, err := svc.Retrieve(ctx, id)
		assertStatus(t, err, http.StatusNotFound, MsgNotFound)
	}
	assert.Equal(t, callsBefore, store.Calls(), "malformed ids never reach the store")
}

func TestUpdateMergesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPharmacyService(t)

	_, err := svc.Create(ctx, createRequest("Alpha"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &pharmacy.UpdatePharmacyRequest{
		ID:     "1",
		Fields: pharmacy.Fields{PhoneNumber: pharmacy.Value("555-9999")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", updated.Name)
	assert.Equal(t, "555-9999", updated.PhoneNumber)

	stored, err := svc.Retrieve(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "555-9999", stored.PhoneNumber)
	assert.Equal(t, "1 Main St", stored.Address)
}

func TestUpdateMissing(t *testing.T) {
	svc, _, _ := newPharmacyService(t)

	_, err := svc.Update(context.Background(), &pharmacy.UpdatePharmacyRequest{ID: "5"})
	assertStatus(t, err, http.StatusNotFound, MsgNotFound)
}

func TestUpdateResolvesIDBeforeCheckingFields(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newPharmacyService(t)

	tooLong := pharmacy.Fields{PhoneNumber: pharmacy.Value("0123456789012345678901234")}
	for _, id := range []string{"42", "abc", "-1", "0"} {
		_, err := svc.Update(ctx, &pharmacy.UpdatePharmacyRequest{ID: id, Fields: tooLong})
		assertStatus(t, err, http.StatusNotFound, MsgNotFound)
	}

	_, err := svc.Create(ctx, createRequest("Alpha"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, &pharmacy.UpdatePharmacyRequest{ID: "1", Fields: tooLong})
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	fe, ok := httpErr.FieldErrorFor(pharmacy.FieldPhoneNumber)
	require.True(t, ok)
	assert.Equal(t, errs.FieldCodeMaxLength, fe.Code)

	stored, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", stored.PhoneNumber)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPharmacyService(t)

	_, err := svc.Create(ctx, createRequest("Alpha"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "1"))
	assertStatus(t, svc.Delete(ctx, "1"), http.StatusNotFound, MsgNotFound)
	assertStatus(t, svc.Delete(ctx, "x"), http.StatusNotFound, MsgNotFound)

	_, err = svc.Retrieve(ctx, "1")
	assertStatus(t, err, http.StatusNotFound, MsgNotFound)
}

func seedPharmacies(t *testing.T, svc *PharmacyService, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := svc.Create(context.Background(), createRequest(name))
		require.NoError(t, err)
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestListFiltersByExactName(t *testing.T) {
	svc, _, _ := newPharmacyService(t)
	seedPharmacies(t, svc, "Alpha", "Beta", "Alpha", "ALPHA")

	page, err := svc.List(context.Background(), &pharmacy.ListPharmaciesRequest{Name: "Alpha"}, mustURL(t, "http://api/pharmacies/?name=Alpha"))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, int64(1), page.Results[0].ID)
	assert.Equal(t, int64(3), page.Results[1].ID)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}

func TestListNameFilterIsNotTrimmed(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPharmacyService(t)
	seedPharmacies(t, svc, "Alpha", "Beta")

	page, err := svc.List(ctx, &pharmacy.ListPharmaciesRequest{Name: " Alpha "}, mustURL(t, "http://api/pharmacies/"))
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)

	page, err = svc.List(ctx, &pharmacy.ListPharmaciesRequest{Name: " "}, mustURL(t, "http://api/pharmacies/"))
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count, "a whitespace name is still a filter")

	page, err = svc.List(ctx, &pharmacy.ListPharmaciesRequest{}, mustURL(t, "http://api/pharmacies/"))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
}

func TestListEmpty(t *testing.T) {
	svc, _, _ := newPharmacyService(t)

	page, err := svc.List(context.Background(), &pharmacy.ListPharmaciesRequest{Name: "Nobody"}, mustURL(t, "http://api/pharmacies/"))
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestListPaginationLinks(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPharmacyService(t)
	seedPharmacies(t, svc, "A", "B", "C", "D", "E")

	base := "http://api/pharmacies/?page_size=2"

	first, err := svc.List(ctx, &pharmacy.ListPharmaciesRequest{PageSize: "2"}, mustURL(t, base))
	require.NoError(t, err)
	assert.Equal(t, 5, first.Count)
	assert.Len(t, first.Results, 2)
	require.NotNil(t, first.Next)
	assert.Equal(t, "http://api/pharmacies/?page=2&page_size=2", *first.Next)
	assert.Nil(t, first.Previous)

	second, err := svc.List(ctx, &pharmacy.ListPharmaciesRequest{Page: "2", PageSize: "2"}, mustURL(t, base+"&page=2"))
	require.NoError(t, err)
	assert.Equal(t, "C", second.Results[0].Name)
	require.NotNil(t, second.Previous)
	assert.Equal(t, "http://api/pharmacies/?page_size=2", *second.Previous)
	require.NotNil(t, second.Next)
	assert.Equal(t, "http://api/pharmacies/?page=3&page_size=2", *second.Next)

	last, err := svc.List(ctx, &pharmacy.ListPharmaciesRequest{Page: "last", PageSize: "2"}, mustURL(t, base+"&page=last"))
	require.NoError(t, err)
	require.Len(t, last.Results, 1)
	assert.Equal(t, "E", last.Results[0].Name)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "http://api/pharmacies/?page=2&page_size=2", *last.Previous)
}

func TestListInvalidPage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPharmacyService(t)
	seedPharmacies(t, svc, "A", "B")

	for _, page := range []string{"0", "-1", "abc", "2"} {
		_, err := svc.List(ctx, &pharmacy.ListPharmaciesRequest{Page: page}, mustURL(t, "http://api/pharmacies/"))
		assertStatus(t, err, http.StatusNotFound, MsgInvalidPage)
	}
}

func TestListPageSize(t *testing.T) {
	svc, _, _ := newPharmacyService(t)

	assert.Equal(t, 10, svc.pageSize(""))
	assert.Equal(t, 10, svc.pageSize("zero"))
	assert.Equal(t, 10, svc.pageSize("-4"))
	assert.Equal(t, 25, svc.pageSize("25"))
	assert.Equal(t, 100, svc.pageSize("1000"))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
}

func newTestAuthService(t *testing.T) (*AuthService, *repository.MemoryUserStore) {
	t.Helper()
	users := repository.NewMemoryUserStore()
	return newAuthService(testServer(), users, bcrypt.MinCost), users
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestAuthService(t)

	_, err := auth.EnsureUser(ctx, "alice", "wonderland")
	require.NoError(t, err)

	u, err := auth.Authenticate(ctx, "alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = auth.Authenticate(ctx, "alice", "wrong")
	assertStatus(t, err, http.StatusUnauthorized, MsgInvalidCredentials)

	_, err = auth.Authenticate(ctx, "bob", "wonderland")
	assertStatus(t, err, http.StatusUnauthorized, MsgInvalidCredentials)

	require.NoError(t, users.SetActive("alice", false))
	_, err = auth.Authenticate(ctx, "alice", "wonderland")
	assertStatus(t, err, http.StatusUnauthorized, MsgUserInactive)
}

func TestEnsureBootstrapUser(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestAuthService(t)

	require.NoError(t, auth.EnsureBootstrapUser(ctx))

	u, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	_, err = auth.Authenticate(ctx, "admin", "s3cret")
	assert.NoError(t, err)
}

func TestEnsureBootstrapUserSkipsWhenUnset(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()
	s := testServer()
	s.Config.Auth.BootstrapUsername = ""
	s.Config.Auth.BootstrapPassword = ""

	auth := newAuthService(s, users, bcrypt.MinCost)
	require.NoError(t, auth.EnsureBootstrapUser(ctx))

	_, err := users.FindByUsername(ctx, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
