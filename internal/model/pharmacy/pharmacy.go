// Package pharmacy contains the Pharmacy resource: the stored record,
// the request payloads and the field rules every write is checked against.
package pharmacy

// Pharmacy is a registered pharmacy. ID is assigned by the store and never changes.
type Pharmacy struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Address       string `json:"address" db:"address"`
	PhoneNumber   string `json:"phone_number" db:"phone_number"`
	LicenseNumber string `json:"license_number" db:"license_number"`
}

// Field names as they appear in JSON bodies and query strings.
const (
	FieldName          = "name"
	FieldAddress       = "address"
	FieldPhoneNumber   = "phone_number"
	FieldLicenseNumber = "license_number"
)

// FieldRule is the constraint set of one writable field.
type FieldRule struct {
	Field     string
	Required  bool
	MaxLength int
}

// Rules lists every writable field in the order errors are reported.
var Rules = []FieldRule{
	{Field: FieldName, Required: true, MaxLength: 100},
	{Field: FieldAddress, Required: true, MaxLength: 300},
	{Field: FieldPhoneNumber, Required: true, MaxLength: 20},
	{Field: FieldLicenseNumber, Required: true, MaxLength: 50},
}

// RuleFor returns the rule of field.
func RuleFor(field string) (FieldRule, bool) {
	for _, rule := range Rules {
		if rule.Field == field {
			return rule, true
		}
	}
	return FieldRule{}, false
}

// Get returns the value of the named field.
func (p *Pharmacy) Get(field string) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldAddress:
		return p.Address
	case FieldPhoneNumber:
		return p.PhoneNumber
	case FieldLicenseNumber:
		return p.LicenseNumber
	default:
		return ""
	}
}

// Set assigns the named field. Unknown fields are ignored.
func (p *Pharmacy) Set(field, value string) {
	switch field {
	case FieldName:
		p.Name = value
	case FieldAddress:
		p.Address = value
	case FieldPhoneNumber:
		p.PhoneNumber = value
	case FieldLicenseNumber:
		p.LicenseNumber = value
	}
}
