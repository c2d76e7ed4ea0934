package pharmacy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/deppfellow/pharmacy-service/internal/validation"
)

// Validation messages, one per failure mode.
const (
	MsgRequired  = "This field is required."
	MsgNull      = "This field may not be null."
	MsgBlank     = "This field may not be blank."
	MsgInvalid   = "Not a valid string."
	MsgNullChar  = "Null characters are not allowed."
	msgMaxLength = "Ensure this field has no more than %d characters."
)

// Fields are the writable attributes of a Pharmacy as received in a body.
type Fields struct {
	Name          StringField `json:"name"`
	Address       StringField `json:"address"`
	PhoneNumber   StringField `json:"phone_number"`
	LicenseNumber StringField `json:"license_number"`
}

func (f *Fields) lookup(field string) StringField {
	switch field {
	case FieldName:
		return f.Name
	case FieldAddress:
		return f.Address
	case FieldPhoneNumber:
		return f.PhoneNumber
	case FieldLicenseNumber:
		return f.LicenseNumber
	default:
		return StringField{}
	}
}

// Check validates the fields against Rules.
//
// With partial set, omitted keys are skipped; keys that are present are
// held to the same rules as a full write.
func (f *Fields) Check(partial bool) error {
	var failures validation.CustomValidationErrors

	for _, rule := range Rules {
		value := f.lookup(rule.Field)
		if failure, ok := checkField(rule, value, partial); !ok {
			failures = append(failures, failure)
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return nil
}

func checkField(rule FieldRule, value StringField, partial bool) (validation.CustomValidationError, bool) {
	fail := func(code, message string) (validation.CustomValidationError, bool) {
		return validation.CustomValidationError{Field: rule.Field, Code: code, Message: message}, false
	}

	switch {
	case !value.set:
		if partial || !rule.Required {
			return validation.CustomValidationError{}, true
		}
		return fail(errs.FieldCodeRequired, MsgRequired)
	case value.null:
		return fail(errs.FieldCodeRequired, MsgNull)
	case value.invalid:
		return fail(errs.FieldCodeInvalid, MsgInvalid)
	}

	normalized := value.String()
	if normalized == "" && rule.Required {
		return fail(errs.FieldCodeRequired, MsgBlank)
	}
	if strings.ContainsRune(normalized, 0) {
		return fail(errs.FieldCodeInvalid, MsgNullChar)
	}
	if rule.MaxLength > 0 && utf8.RuneCountInString(normalized) > rule.MaxLength {
		return fail(errs.FieldCodeMaxLength, fmt.Sprintf(msgMaxLength, rule.MaxLength))
	}

	return validation.CustomValidationError{}, true
}

// ApplyTo copies every supplied field onto p. Call it only after Check passed.
func (f *Fields) ApplyTo(p *Pharmacy) {
	for _, rule := range Rules {
		if value := f.lookup(rule.Field); value.IsSet() {
			p.Set(rule.Field, value.String())
		}
	}
}

// CreatePharmacyRequest is the body of POST /pharmacies/.
type CreatePharmacyRequest struct {
	Fields
}

func (r *CreatePharmacyRequest) Validate() error {
	return r.Check(false)
}

// UpdatePharmacyRequest is the body of PUT/PATCH /pharmacies/{id}/.
//
// Both methods apply partial semantics. The fields are checked by
// CheckFields once the id has resolved, so an unknown id is reported
// before any field error.
type UpdatePharmacyRequest struct {
	ID string `param:"id" json:"-"`
	Fields
}

func (r *UpdatePharmacyRequest) Validate() error {
	return nil
}

// CheckFields applies the partial rules to the supplied fields.
func (r *UpdatePharmacyRequest) CheckFields() error {
	return r.Check(true)
}

// GetPharmacyRequest identifies a single pharmacy by its path id.
//
// ID stays a string: a malformed id is a not-found, not a bind error.
type GetPharmacyRequest struct {
	ID string `param:"id"`
}

func (r *GetPharmacyRequest) Validate() error {
	return nil
}

// DeletePharmacyRequest identifies the pharmacy to delete.
type DeletePharmacyRequest struct {
	ID string `param:"id"`
}

func (r *DeletePharmacyRequest) Validate() error {
	return nil
}

// ListPharmaciesRequest carries the list filters and page selection.
//
// Page and PageSize are parsed by the service so malformed values map
// to the documented "Invalid page." response.
type ListPharmaciesRequest struct {
	Name     string `query:"name"`
	Page     string `query:"page"`
	PageSize string `query:"page_size"`
}

func (r *ListPharmaciesRequest) Validate() error {
	return nil
}
