package directory

import (
	"context"
	"crypto/tls"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/dirauth/dirauth/pkg/config"
)

const defaultTimeout = 10 * time.Second

// Conn abstracts the directory wire protocol, mostly for testing. It
// is the subset of ldap.Client a Session needs.
type Conn interface {
	Bind(username, password string) error
	SearchAsync(ctx context.Context, searchRequest *ldap.SearchRequest, bufferSize int) ldap.Response
	Close() error
}

var _ Conn = (*ldap.Conn)(nil)

// Dialer opens a Conn to the directory described by the config
// snapshot. Injected so tests can substitute the wire.
type Dialer interface {
	Dial(ctx context.Context, cfg *config.Directory) (Conn, error)
}

// DialerFunc makes it easy to use a func as a Dialer.
type DialerFunc func(ctx context.Context, cfg *config.Directory) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, cfg *config.Directory) (Conn, error) {
	return f(ctx, cfg)
}

// DefaultDialer connects over TCP with the configured timeout bounding
// both the dial and every subsequent operation on the connection.
func DefaultDialer() Dialer {
	return DialerFunc(func(ctx context.Context, cfg *config.Directory) (Conn, error) {
		timeout := time.Duration(cfg.Timeout) * time.Second
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		if deadline, ok := ctx.Deadline(); ok {
			if until := time.Until(deadline); until < timeout {
				timeout = until
			}
		}

		opts := []ldap.DialOpt{
			ldap.DialWithDialer(&net.Dialer{Timeout: timeout}),
		}
		url := cfg.Host
		if !strings.Contains(url, "://") {
			url = "ldap://" + url
		}
		if strings.HasPrefix(url, "ldaps://") && cfg.Insecure {
			opts = append(opts, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
		}

		conn, err := ldap.DialURL(url, opts...)
		if err != nil {
			return nil, err
		}
		conn.SetTimeout(timeout)
		return conn, nil
	})
}
