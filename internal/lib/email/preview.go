package email

// PreviewData contains sample template data for local preview/testing,
// keyed by template.
var PreviewData = map[Template]any{
	TemplatePharmacyRegistered: PharmacyRegistered{
		ID:            1,
		Name:          "Green Cross Pharmacy",
		Address:       "12 Market Street, Springfield",
		PhoneNumber:   "+1 555 0100",
		LicenseNumber: "PH-2024-0001",
	},
}
