package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid uuid",
	"day":         "{field} must be a date formatted as YYYY-MM-DD",
	"gtfield":     "{field} must be after {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// jsonName reports fields under the name clients send, falling back to the Go name.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

// message renders every field error, in struct order, joined by "; ".
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrors))

	for _, fieldErr := range fieldErrors {
		parts = append(parts, describe(fieldErr))
	}

	return strings.Join(parts, "; ")
}

func describe(fieldErr val.FieldError) string {
	field := fieldErr.Field()
	if field == "" {
		field = "value"
	}

	tmpl, ok := templates[fieldErr.Tag()]
	if !ok {
		return field + " failed " + fieldErr.Tag() + " validation"
	}

	return strings.NewReplacer("{field}", field, "{param}", fieldErr.Param()).Replace(tmpl)
}
