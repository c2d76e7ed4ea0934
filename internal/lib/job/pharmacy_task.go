package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/hibiken/asynq"
)

const (
	// TaskPharmacyRegistered is the job type name stored in Redis.
	TaskPharmacyRegistered = "pharmacy:registered"
)

// PharmacyRegisteredPayload is the JSON payload of the registration notice task.
type PharmacyRegisteredPayload struct {
	To            string `json:"to"`
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
}

// NewPharmacyRegisteredTask builds the task announcing p to the address to.
//
// Notices are retried up to 3 times on the default queue and time out after 30s.
func NewPharmacyRegisteredTask(to string, p *pharmacy.Pharmacy) (*asynq.Task, error) {
	payload, err := json.Marshal(PharmacyRegisteredPayload{
		To:            to,
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		PhoneNumber:   p.PhoneNumber,
		LicenseNumber: p.LicenseNumber,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPharmacyRegistered,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
