package router

import (
	"net/http"

	"github.com/deppfellow/pharmacy-service/internal/handler"
	"github.com/deppfellow/pharmacy-service/internal/middleware"
	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/labstack/echo/v4"
)

// registerPharmacyRoutes mounts the pharmacy resource behind Basic auth.
// Every path answers with and without a trailing slash.
func registerPharmacyRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	ph := h.Pharmacies
	pharmacies := r.Group("/pharmacies", auth.RequireAuth)

	list := handler.Handle(ph.Handler, ph.List, http.StatusOK, &pharmacy.ListPharmaciesRequest{})
	create := handler.Handle(ph.Handler, ph.Create, http.StatusCreated, &pharmacy.CreatePharmacyRequest{})
	get := handler.Handle(ph.Handler, ph.Get, http.StatusOK, &pharmacy.GetPharmacyRequest{})
	update := handler.Handle(ph.Handler, ph.Update, http.StatusOK, &pharmacy.UpdatePharmacyRequest{})
	remove := handler.HandleNoContent(ph.Handler, ph.Delete, http.StatusNoContent, &pharmacy.DeletePharmacyRequest{})

	for _, collection := range []string{"", "/"} {
		pharmacies.GET(collection, list)
		pharmacies.POST(collection, create)
	}

	for _, item := range []string{"/:id", "/:id/"} {
		pharmacies.GET(item, get)
		pharmacies.PUT(item, update)
		pharmacies.PATCH(item, update)
		pharmacies.DELETE(item, remove)
	}
}
