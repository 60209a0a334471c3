// Package handler implements the two authentication flows composed
// from the directory session, the directory search and the local user
// store.
package handler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/dirauth/dirauth/internal/monitoring"
	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/directory"
	"github.com/dirauth/dirauth/pkg/users"
)

// FormFlags tells the host UI what the login surface must collect.
type FormFlags struct {
	Password bool `json:"password"`
}

// Authenticator is the surface exposed to the host.
type Authenticator interface {
	PresenterAuth(ctx context.Context, creds directory.Credentials) (*users.User, error)
	ClientAuth(ctx context.Context, creds directory.Credentials) (*directory.UserRecord, error)
	ClientUI(flags *FormFlags)
}

// AuthHandler runs the presenter and client policies. Each call gets
// its own directory session and a consistent snapshot of the
// configuration taken at the start of the attempt.
type AuthHandler struct {
	mu  sync.RWMutex
	dir config.Directory

	dialer  directory.Dialer
	store   users.Store
	log     *zerolog.Logger
	monitor monitoring.MonitorInterface
	tracer  trace.Tracer
}

var _ Authenticator = (*AuthHandler)(nil)

func NewAuthHandler(opts ...Option) *AuthHandler {
	options := newOptions(opts...)

	handler := &AuthHandler{
		dir:     options.Directory,
		dialer:  options.Dialer,
		store:   options.Store,
		log:     options.Logger,
		monitor: options.Monitor,
		tracer:  options.Tracer,
	}
	if handler.dialer == nil {
		handler.dialer = directory.DefaultDialer()
	}
	return handler
}

// UpdateDirectory replaces the directory configuration wholesale.
// In-flight attempts keep the snapshot they started with.
func (h *AuthHandler) UpdateDirectory(dir config.Directory) {
	h.mu.Lock()
	h.dir = dir
	h.mu.Unlock()
}

// ClientUI asks the host to render a credential form instead of
// identity-free room entry.
func (h *AuthHandler) ClientUI(flags *FormFlags) {
	flags.Password = true
}

func (h *AuthHandler) snapshot() config.Directory {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dir
}

func statusLabel(user bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case user:
		return "ok"
	default:
		return "fallback"
	}
}
