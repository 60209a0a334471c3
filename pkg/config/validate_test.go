package config

import (
	"strings"
	"testing"
)

func validDirectory() Directory {
	return Directory{
		Host:            "ldap.example.com",
		BindDNFormat:    "uid={{user id}},dc=example,dc=com",
		BaseDN:          "dc=example,dc=com",
		PresenterFilter: "(&(uid={{user id}})(memberOf=presenters))",
		ClientFilter:    "(uid={{user id}})",
	}
}

func TestValidateOK(t *testing.T) {
	d := validDirectory()
	if errs := Validate(&d); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateNil(t *testing.T) {
	errs := Validate(nil)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Field != "directory" {
		t.Fatalf("unexpected field: %q", errs[0].Field)
	}
}

func TestValidateMissingFields(t *testing.T) {
	tt := []struct {
		name   string
		mutate func(*Directory)
		field  string
		reason string
	}{
		{
			name:   "MissingHost",
			mutate: func(d *Directory) { d.Host = "" },
			field:  "hostname",
			reason: "required",
		},
		{
			name:   "MissingBindDN",
			mutate: func(d *Directory) { d.BindDNFormat = "" },
			field:  "bindDNFormat",
			reason: "required",
		},
		{
			name:   "MissingBaseDN",
			mutate: func(d *Directory) { d.BaseDN = "" },
			field:  "baseDN",
			reason: "required",
		},
		{
			name:   "MissingPresenterFilter",
			mutate: func(d *Directory) { d.PresenterFilter = "" },
			field:  "presenterFilter",
			reason: "required",
		},
		{
			name:   "MissingClientFilter",
			mutate: func(d *Directory) { d.ClientFilter = "" },
			field:  "clientFilter",
			reason: "required",
		},
		{
			name:   "BindDNWithoutPlaceholder",
			mutate: func(d *Directory) { d.BindDNFormat = "uid=admin,dc=example,dc=com" },
			field:  "bindDNFormat",
			reason: "missing placeholder {{user id}}",
		},
		{
			name:   "PresenterFilterWithoutPlaceholder",
			mutate: func(d *Directory) { d.PresenterFilter = "(objectClass=person)" },
			field:  "presenterFilter",
			reason: "missing placeholder {{user id}}",
		},
		{
			name:   "ClientFilterWithoutPlaceholder",
			mutate: func(d *Directory) { d.ClientFilter = "(objectClass=person)" },
			field:  "clientFilter",
			reason: "missing placeholder {{user id}}",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d := validDirectory()
			tc.mutate(&d)
			errs := Validate(&d)
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if errs[0].Field != tc.field || errs[0].Reason != tc.reason {
				t.Fatalf("got {%s %s}, want {%s %s}", errs[0].Field, errs[0].Reason, tc.field, tc.reason)
			}
		})
	}
}

func TestValidateAccumulates(t *testing.T) {
	d := Directory{}
	errs := Validate(&d)
	if len(errs) != 5 {
		t.Fatalf("expected one error per field, got %v", errs)
	}
}

func TestExpand(t *testing.T) {
	got := Expand("uid={{user id}},ou={{user id}},dc=example,dc=com", "alice")
	want := "uid=alice,ou=alice,dc=example,dc=com"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// no placeholder means no change
	if got := Expand("(objectClass=person)", "alice"); got != "(objectClass=person)" {
		t.Fatalf("got %q", got)
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := FieldError{Field: "baseDN", Reason: "required"}
	if !strings.Contains(err.Error(), "baseDN") || !strings.Contains(err.Error(), "required") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
