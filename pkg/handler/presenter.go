package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/dirauth/dirauth/pkg/directory"
	"github.com/dirauth/dirauth/pkg/stats"
	"github.com/dirauth/dirauth/pkg/users"
)

// PresenterAuth authenticates a presenter against the directory and
// reconciles the identity with the local user store.
//
// A directory-side credential rejection is not an error here: the
// caller is expected to fall back to local authentication, so the
// result is (nil, nil). The same applies when the presenter filter
// excludes an identity the directory just authenticated.
//
// A pre-provisioned local account always wins over a fresh directory
// import, even if the presenter filter would exclude the user; this
// lets an administrator grant presenter rights locally.
func (h *AuthHandler) PresenterAuth(ctx context.Context, creds directory.Credentials) (user *users.User, err error) {
	ctx, span := h.tracer.Start(ctx, "handler.AuthHandler.PresenterAuth")
	defer span.End()

	start := time.Now()
	defer func() {
		h.monitor.SetResponseTimeMetric(
			map[string]string{"operation": "presenter_auth", "status": statusLabel(user != nil, err)},
			time.Since(start).Seconds(),
		)
	}()

	stats.Frontend.Add("presenter_auth_reqs", 1)

	dir := h.snapshot()
	session := directory.NewSession(&dir, h.dialer, h.log, h.tracer)
	defer session.Disconnect()

	if err = session.Bind(ctx, creds); err != nil {
		if directory.IsInvalidCredentials(err) {
			h.log.Debug().Str("user", creds.Username).Msg("directory rejected presenter credentials, deferring to local auth")
			return nil, nil
		}
		return nil, err
	}

	localName := users.ExternalNamePrefix + creds.Username

	existing, err := h.store.FindByUsername(ctx, localName)
	if err != nil {
		return nil, fmt.Errorf("local user lookup for %q: %w", localName, err)
	}
	if existing != nil {
		stats.Frontend.Add("presenter_auth_successes", 1)
		return existing, nil
	}

	record, err := session.Search(ctx, creds, dir.PresenterFilter)
	if err != nil {
		return nil, err
	}
	if record.Empty() {
		h.log.Debug().Str("user", creds.Username).Msg("presenter filter excluded directory identity, deferring to local auth")
		return nil, nil
	}

	candidate := &users.User{
		Name:           localName,
		DisplayName:    record.DisplayName,
		Mail:           record.Email,
		PasswordMarker: users.ExternalMarker,
		External:       true,
	}
	created, err := h.store.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("local user import for %q: %w", localName, err)
	}

	stats.Frontend.Add("presenter_auth_successes", 1)
	stats.Frontend.Add("presenter_imports", 1)
	return created, nil
}
