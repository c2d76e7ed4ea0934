package handler

import (
	"net/url"

	"github.com/deppfellow/pharmacy-service/internal/model"
	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/deppfellow/pharmacy-service/internal/service"
	"github.com/labstack/echo/v4"
)

type PharmacyHandler struct {
	Handler
	service *service.PharmacyService
}

func NewPharmacyHandler(s *server.Server, pharmacyService *service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{
		Handler: NewHandler(s),
		service: pharmacyService,
	}
}

func (h *PharmacyHandler) List(c echo.Context, req *pharmacy.ListPharmaciesRequest) (*model.PaginatedResponse[pharmacy.Pharmacy], error) {
	return h.service.List(c.Request().Context(), req, absoluteURL(c))
}

func (h *PharmacyHandler) Create(c echo.Context, req *pharmacy.CreatePharmacyRequest) (*pharmacy.Pharmacy, error) {
	return h.service.Create(c.Request().Context(), req)
}

func (h *PharmacyHandler) Get(c echo.Context, req *pharmacy.GetPharmacyRequest) (*pharmacy.Pharmacy, error) {
	return h.service.Retrieve(c.Request().Context(), req.ID)
}

func (h *PharmacyHandler) Update(c echo.Context, req *pharmacy.UpdatePharmacyRequest) (*pharmacy.Pharmacy, error) {
	return h.service.Update(c.Request().Context(), req)
}

func (h *PharmacyHandler) Delete(c echo.Context, req *pharmacy.DeletePharmacyRequest) error {
	return h.service.Delete(c.Request().Context(), req.ID)
}

// absoluteURL rebuilds the URL the client requested, scheme and host included.
func absoluteURL(c echo.Context) *url.URL {
	r := c.Request()

	u := *r.URL
	u.Scheme = c.Scheme()
	u.Host = r.Host
	return &u
}
