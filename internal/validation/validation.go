package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one schema violation, in the shape the API contract exposes.
type FieldError struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Type    string `json:"type"`
}

// Error carries the per-field violations for a 400 response.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// dateLayouts are the accepted calendar date formats.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidDate reports whether s parses as a calendar date in any accepted layout.
func ValidDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

const passwordSpecials = "@$!%.*?&-_=+#^"

// Validator wraps go-playground/validator with the custom tags the resource
// schemas use and json-tag field paths in error output.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the password and calendardate tags registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		return ValidDate(fl.Field().String())
	})

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var upper, lower, digit, special bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			case strings.ContainsRune(passwordSpecials, r):
				special = true
			}
		}
		return upper && lower && digit && special
	})

	return &Validator{v: v}
}

// Struct validates s and returns nil or an *Error listing every violation.
func (va *Validator) Struct(s any) error {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Message: messageFor(fe),
			Path:    pathFor(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

// pathFor strips the root struct name from the namespace, leaving the
// json-tag path ("notifications[0].title").
func pathFor(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "password":
		return "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	case "calendardate":
		return "Invalid date format"
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}

// Decode maps a request payload onto a typed input or patch struct. A type
// mismatch (e.g. tags arriving as a number) surfaces as a single-field
// validation error rather than an opaque decode failure.
func Decode(payload map[string]any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return &Error{Fields: []FieldError{{
				Message: fmt.Sprintf("Expected %s", typeErr.Type.String()),
				Path:    typeErr.Field,
				Type:    "invalid_type",
			}}}
		}
		return err
	}
	return nil
}

// CoerceJSONStrings decodes the named payload fields when they arrived as
// JSON-encoded strings (multipart forms carry every value as a string).
// The returned error names the first field that failed to decode.
func CoerceJSONStrings(payload map[string]any, fields ...string) error {
	for _, field := range fields {
		s, ok := payload[field].(string)
		if !ok {
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return fmt.Errorf("Invalid format for %s", field)
		}
		payload[field] = decoded
	}
	return nil
}
