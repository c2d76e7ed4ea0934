package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/pharmacy-service/internal/config"
	"github.com/deppfellow/pharmacy-service/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the e-mails produced by job handlers.
type Mailer interface {
	SendPharmacyRegisteredEmail(to string, data email.PharmacyRegistered) error
}

// InitHandlers initializes the dependencies required by job handlers.
//
// Notices are only produced when both a Resend key and a recipient are configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("registration notices disabled, no resend key or notification email configured")
		return
	}

	j.mailer = email.NewClient(cfg, logger)
	j.notifyTo = cfg.Integration.NotificationEmail
}

// handlePharmacyRegisteredTask sends the registration notice of one pharmacy.
func (j *JobService) handlePharmacyRegisteredTask(ctx context.Context, t *asynq.Task) error {
	var p PharmacyRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal pharmacy registered payload: %w", err)
	}

	if j.mailer == nil {
		j.logger.Warn().
			Str("type", TaskPharmacyRegistered).
			Int64("pharmacy_id", p.ID).
			Msg("Dropping registration notice, mailer not configured")
		return nil
	}

	j.logger.Info().
		Str("type", TaskPharmacyRegistered).
		Str("to", p.To).
		Int64("pharmacy_id", p.ID).
		Msg("Processing registration notice task")

	err := j.mailer.SendPharmacyRegisteredEmail(p.To, email.PharmacyRegistered{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		PhoneNumber:   p.PhoneNumber,
		LicenseNumber: p.LicenseNumber,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskPharmacyRegistered).
			Str("to", p.To).
			Err(err).
			Msg("Failed to send registration notice")
		return err
	}

	j.logger.Info().
		Str("type", TaskPharmacyRegistered).
		Str("to", p.To).
		Msg("Successfully sent registration notice")

	return nil
}
