package directory

import (
	"errors"

	"github.com/go-ldap/ldap/v3"
)

var (
	// ErrMissingConnection is returned when a bind is attempted and no
	// usable connection handle exists after connecting.
	ErrMissingConnection = errors.New("no connection to the directory service")

	// ErrBadCredentials is returned for locally detected malformed
	// input, before the directory is ever contacted.
	ErrBadCredentials = errors.New("missing or empty credentials")
)

// IsInvalidCredentials reports whether the directory rejected the bind
// credentials (LDAP result code 49). Policy layers decide what that
// means; lower layers propagate the error unchanged.
func IsInvalidCredentials(err error) bool {
	return ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials)
}
