package email

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplatePharmacyRegistered corresponds to templates/pharmacy_registered.html
	TemplatePharmacyRegistered Template = "pharmacy_registered"
)

func templatePath(name Template) string {
	return fmt.Sprintf("templates/%s.html", name)
}
