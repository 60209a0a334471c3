// Package users holds the local user store contract and the local
// identities the directory flows reconcile against.
package users

import "context"

const (
	// ExternalNamePrefix namespaces directory-sourced accounts in the
	// local store so they can never collide with native signups.
	ExternalNamePrefix = "LDAP-"

	// ExternalMarker is stored in place of a password hash for
	// directory-sourced accounts; it bypasses local password checks.
	ExternalMarker = "LDAP"
)

// User is a local account record. Directory-sourced accounts carry the
// external marker and flag instead of a password hash.
type User struct {
	Name           string `json:"username"`
	DisplayName    string `json:"displayName"`
	Mail           string `json:"email"`
	PasswordMarker string `json:"-"`
	External       bool   `json:"isExternal"`
}

// Store is the host's local user store. The policy layer owns the
// decision of when to call it; the store itself is a black box. Both
// operations are single-result: a nil User from FindByUsername means
// no such account, without error.
type Store interface {
	FindByUsername(ctx context.Context, name string) (*User, error)
	Create(ctx context.Context, candidate *User) (*User, error)
}
