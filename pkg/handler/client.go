package handler

import (
	"context"
	"time"

	"github.com/dirauth/dirauth/pkg/directory"
	"github.com/dirauth/dirauth/pkg/stats"
)

// ClientAuth authenticates a client against the directory. Clients
// have no local fallback: any bind failure, including a credential
// rejection, is terminal. The search record is returned directly as
// the user; the local store is never consulted. A record without a
// display name or email means the client filter excluded the
// identity, reported as (nil, nil).
func (h *AuthHandler) ClientAuth(ctx context.Context, creds directory.Credentials) (record *directory.UserRecord, err error) {
	ctx, span := h.tracer.Start(ctx, "handler.AuthHandler.ClientAuth")
	defer span.End()

	start := time.Now()
	defer func() {
		h.monitor.SetResponseTimeMetric(
			map[string]string{"operation": "client_auth", "status": statusLabel(record != nil, err)},
			time.Since(start).Seconds(),
		)
	}()

	stats.Frontend.Add("client_auth_reqs", 1)

	dir := h.snapshot()
	session := directory.NewSession(&dir, h.dialer, h.log, h.tracer)
	defer session.Disconnect()

	if err = session.Bind(ctx, creds); err != nil {
		return nil, err
	}

	found, err := session.Search(ctx, creds, dir.ClientFilter)
	if err != nil {
		return nil, err
	}
	if found.Empty() {
		h.log.Debug().Str("user", creds.Username).Msg("client filter excluded directory identity")
		return nil, nil
	}

	stats.Frontend.Add("client_auth_successes", 1)
	return &found, nil
}
