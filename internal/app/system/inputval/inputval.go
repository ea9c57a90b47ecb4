// Package inputval validates API input structs using waffle/pantry/validate.
//
// Define an input struct with validate tags, decode the JSON payload into
// it, and call Validate. The Result converts into the field-error map the
// API returns as {"error": "validation failed", "fields": {...}}.
//
// Example:
//
//	type CreateInput struct {
//	    Slug string `json:"slug" validate:"required,slug" label:"Slug"`
//	}
package inputval

import (
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/dimondcastle/cms/internal/app/system/slugs"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// Fields returns the errors as a field → message map for the API envelope.
func (r *Result) Fields() map[string]string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

// getValidator returns the singleton validator with custom rules.
func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// slug: lowercase-kebab resource slug
		customValidator.RegisterRuleFunc("slug", func(value any) bool {
			if s, ok := value.(string); ok {
				return slugs.IsValid(s)
			}
			return false
		}, "slug")

		// pagepath: "/"-rooted page slug
		customValidator.RegisterRuleFunc("pagepath", func(value any) bool {
			if s, ok := value.(string); ok {
				return slugs.IsValidPagePath(s)
			}
			return false
		}, "pagepath")

		// status: draft or published
		customValidator.RegisterRuleFunc("status", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidStatus(s)
			}
			return false
		}, "status")

	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly
// errors. The struct should have `validate` tags for rules and optional
// `label` tags for display names; `json` tags name the fields in the error
// envelope.
//
// Rules from pantry/validate: required, email, oneof=a b c, min=N, max=N.
// Custom rules registered here: slug, pagepath, status.
func Validate(s any) *Result {
	result := &Result{}

	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return result
	}

	names := getFieldNames(s)
	labels := getFieldLabels(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			field := e.Field
			if jn, ok := names[field]; ok {
				field = jn
			}
			label := labels[field]
			if label == "" {
				label = field
			}

			result.Errors = append(result.Errors, FieldError{
				Field:   field,
				Label:   label,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}

	return result
}

// getFieldNames maps struct field names to their json names, so error
// envelopes always key fields by the names API clients sent.
func getFieldNames(s any) map[string]string {
	names := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return names
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				names[field.Name] = parts[0]
			}
		}
	}

	return names
}

// getFieldLabels extracts the "label" tag from struct fields, keyed by the
// json field name.
func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

// formatMessage creates a user-friendly message for a validation rule.
func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + " characters."
	case "max":
		return label + " must be at most " + param + " characters."
	case "slug":
		return label + " must be lowercase letters, digits, and hyphens."
	case "pagepath":
		return label + " must start with / followed by lowercase-kebab segments."
	case "status":
		return label + " must be draft or published."
	default:
		return label + " is invalid."
	}
}

// IsValidHTTPURL checks if the given string is a valid http:// or https:// URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
