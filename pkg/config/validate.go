package config

import (
	"fmt"
	"strings"
)

// PlaceholderToken marks where the username is substituted into the
// bind DN and filter templates.
const PlaceholderToken = "{{user id}}"

// FieldError reports a single problem with the [directory] section.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("directory config: %s: %s", e.Field, e.Reason)
}

const (
	reasonRequired           = "required"
	reasonMissingPlaceholder = "missing placeholder " + PlaceholderToken
)

// Validate checks the directory section and returns every problem it
// finds. An empty slice means the configuration is usable. Checks are
// accumulated rather than short-circuited, except for the nil case.
func Validate(d *Directory) []FieldError {
	if d == nil {
		return []FieldError{{Field: "directory", Reason: "no configuration loaded"}}
	}

	var errs []FieldError

	required := []struct {
		key         string
		value       string
		placeholder bool
	}{
		{"hostname", d.Host, false},
		{"bindDNFormat", d.BindDNFormat, true},
		{"baseDN", d.BaseDN, false},
		{"presenterFilter", d.PresenterFilter, true},
		{"clientFilter", d.ClientFilter, true},
	}

	for _, field := range required {
		if field.value == "" {
			errs = append(errs, FieldError{Field: field.key, Reason: reasonRequired})
			continue
		}
		if field.placeholder && !strings.Contains(field.value, PlaceholderToken) {
			errs = append(errs, FieldError{Field: field.key, Reason: reasonMissingPlaceholder})
		}
	}

	return errs
}

// Expand substitutes the username for every occurrence of the
// placeholder token, leaving the rest of the template unchanged.
func Expand(template, username string) string {
	return strings.ReplaceAll(template, PlaceholderToken, username)
}
