package handler

import (
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/deppfellow/pharmacy-service/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Pharmacies *PharmacyHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Pharmacies: NewPharmacyHandler(s, services.Pharmacies),
	}
}
