package email

import "fmt"

// PharmacyRegistered is the data rendered into the registration notice.
type PharmacyRegistered struct {
	ID            int64
	Name          string
	Address       string
	PhoneNumber   string
	LicenseNumber string
}

// SendPharmacyRegisteredEmail notifies to that a pharmacy was registered.
func (c *Client) SendPharmacyRegisteredEmail(to string, data PharmacyRegistered) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("Pharmacy registered: %s", data.Name),
		TemplatePharmacyRegistered,
		data,
	)
}
