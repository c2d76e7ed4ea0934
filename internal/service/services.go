package service

import (
	"github.com/deppfellow/pharmacy-service/internal/repository"
	"github.com/deppfellow/pharmacy-service/internal/server"
)

// Services is a container for all business services.
type Services struct {
	Auth       *AuthService
	Pharmacies *PharmacyService
}

// NewServices wires every service to its stores.
//
// Registration notices go through the job service when it is running.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier RegistrationNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth:       NewAuthService(s, repos.Users),
		Pharmacies: NewPharmacyService(s, repos.Pharmacies, notifier),
	}
}
