package pharmacy

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringField is a writable string attribute of a request body.
//
// It keeps apart the three cases a plain string cannot: the key was
// omitted, the key was sent as null, or the key carried a value. A
// value of the wrong JSON type is recorded instead of failing the
// whole decode, so it can be reported as a field error.
type StringField struct {
	set     bool
	null    bool
	invalid bool
	value   string
}

// Value returns a StringField holding s, as if it had been sent in a body.
func Value(s string) StringField {
	return StringField{set: true, value: s}
}

// Null returns a StringField that was sent as JSON null.
func Null() StringField {
	return StringField{set: true, null: true}
}

// UnmarshalJSON is only called when the key is present in the body.
func (f *StringField) UnmarshalJSON(data []byte) error {
	*f = StringField{set: true}

	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		f.null = true
	case len(data) > 0 && data[0] == '"':
		if err := json.Unmarshal(data, &f.value); err != nil {
			return err
		}
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		// Numbers are accepted as their literal text.
		f.value = string(data)
	default:
		f.invalid = true
	}
	return nil
}

// MarshalJSON writes the value, or null when the field is unset or null.
func (f StringField) MarshalJSON() ([]byte, error) {
	if !f.set || f.null || f.invalid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// IsSet reports whether the key was present in the request.
func (f StringField) IsSet() bool {
	return f.set
}

// String returns the submitted value with surrounding whitespace removed.
func (f StringField) String() string {
	return strings.TrimSpace(f.value)
}
