package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/deppfellow/pharmacy-service/internal/model"
	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/deppfellow/pharmacy-service/internal/repository"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/deppfellow/pharmacy-service/internal/validation"
)

const (
	MsgNotFound    = "Not found."
	MsgInvalidPage = "Invalid page."

	pageQueryParam = "page"
	lastPage       = "last"
)

// RegistrationNotifier announces newly registered pharmacies.
type RegistrationNotifier interface {
	EnqueuePharmacyRegistered(ctx context.Context, p *pharmacy.Pharmacy) error
}

type PharmacyService struct {
	server   *server.Server
	store    repository.PharmacyStore
	notifier RegistrationNotifier
}

// NewPharmacyService builds the service. notifier may be nil.
func NewPharmacyService(s *server.Server, store repository.PharmacyStore, notifier RegistrationNotifier) *PharmacyService {
	return &PharmacyService{
		server:   s,
		store:    store,
		notifier: notifier,
	}
}

func notFound() error {
	return errs.NewNotFoundError(MsgNotFound, false, nil)
}

// parseID converts a path id. Anything that is not a positive integer
// cannot exist and is reported as not found.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound()
	}
	return id, nil
}

// List returns one page of pharmacies, optionally filtered by exact name.
//
// pageURL is the absolute URL of the current request; next and previous
// links are derived from it.
func (s *PharmacyService) List(ctx context.Context, req *pharmacy.ListPharmaciesRequest, pageURL *url.URL) (*model.PaginatedResponse[pharmacy.Pharmacy], error) {
	var filters []repository.EqualityFilter
	if req.Name != "" {
		filters = append(filters, repository.EqualityFilter{Field: pharmacy.FieldName, Value: req.Name})
	}

	pageSize := s.pageSize(req.PageSize)

	page, err := s.resolvePage(ctx, req.Page, filters, pageSize)
	if err != nil {
		return nil, err
	}

	items, total, err := s.store.ListPaginated(ctx, filters, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list pharmacies: %w", err)
	}

	pages := pageCount(total, pageSize)
	if page > pages {
		return nil, errs.NewNotFoundError(MsgInvalidPage, false, nil)
	}

	response := &model.PaginatedResponse[pharmacy.Pharmacy]{
		Count:   total,
		Results: items,
	}
	if page < pages {
		response.Next = pageLink(pageURL, page+1)
	}
	if page > 1 {
		response.Previous = pageLink(pageURL, page-1)
	}

	return response, nil
}

// pageSize returns the requested page size clamped to the configured
// maximum, or the default when the value is absent or malformed.
func (s *PharmacyService) pageSize(raw string) int {
	cfg := s.server.Config.Pagination

	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return cfg.PageSize
	}
	return min(size, cfg.MaxPageSize)
}

func (s *PharmacyService) resolvePage(ctx context.Context, raw string, filters []repository.EqualityFilter, pageSize int) (int, error) {
	switch raw {
	case "":
		return 1, nil
	case lastPage:
		_, total, err := s.store.ListPaginated(ctx, filters, 1, 0)
		if err != nil {
			return 0, fmt.Errorf("failed to count pharmacies: %w", err)
		}
		return pageCount(total, pageSize), nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errs.NewNotFoundError(MsgInvalidPage, false, nil)
	}
	return page, nil
}

// pageCount never returns less than 1 so an empty result still has a first page.
func pageCount(total, pageSize int) int {
	if total == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// pageLink returns base with the page parameter set to page.
// The first page is addressed without a page parameter.
func pageLink(base *url.URL, page int) *string {
	if base == nil {
		return nil
	}

	link := *base
	query := link.Query()
	if page == 1 {
		query.Del(pageQueryParam)
	} else {
		query.Set(pageQueryParam, strconv.Itoa(page))
	}
	link.RawQuery = query.Encode()

	out := link.String()
	return &out
}

// Create stores a new pharmacy built from a validated request.
func (s *PharmacyService) Create(ctx context.Context, req *pharmacy.CreatePharmacyRequest) (*pharmacy.Pharmacy, error) {
	p := &pharmacy.Pharmacy{}
	req.ApplyTo(p)

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create pharmacy: %w", err)
	}

	s.server.Logger.Info().
		Int64("pharmacy_id", p.ID).
		Str("license_number", p.LicenseNumber).
		Msg("pharmacy registered")

	s.notify(ctx, p)

	return p, nil
}

// notify enqueues the registration notice. Failures are only logged.
func (s *PharmacyService) notify(ctx context.Context, p *pharmacy.Pharmacy) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.EnqueuePharmacyRegistered(ctx, p); err != nil {
		s.server.Logger.Error().
			Err(err).
			Int64("pharmacy_id", p.ID).
			Msg("failed to enqueue registration notice")
	}
}

// Retrieve returns the pharmacy with the given path id.
func (s *PharmacyService) Retrieve(ctx context.Context, rawID string) (*pharmacy.Pharmacy, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to get pharmacy: %w", err)
	}

	return p, nil
}

// Update merges the supplied fields into the stored pharmacy.
// Omitted fields keep their value. The id is resolved before the
// fields are checked, so an unknown id is a 404 whatever the body.
func (s *PharmacyService) Update(ctx context.Context, req *pharmacy.UpdatePharmacyRequest) (*pharmacy.Pharmacy, error) {
	p, err := s.Retrieve(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := validation.Check(req.CheckFields()); err != nil {
		return nil, err
	}

	req.ApplyTo(p)

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update pharmacy: %w", err)
	}

	return p, nil
}

// Delete removes the pharmacy with the given path id.
func (s *PharmacyService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete pharmacy: %w", err)
	}

	s.server.Logger.Info().Int64("pharmacy_id", id).Msg("pharmacy deleted")
	return nil
}
