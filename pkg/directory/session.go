package directory

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/stats"
)

// Credentials are supplied per authentication attempt and never
// persisted.
type Credentials struct {
	Username string
	Password string
}

type sessionState int

const (
	disconnected sessionState = iota
	connecting
	connected
)

// Session owns a single connection handle to the directory service for
// the duration of one authentication attempt. Sessions are not safe
// for concurrent use; every attempt gets its own.
type Session struct {
	cfg    *config.Directory // snapshot, read-only for the attempt
	dialer Dialer
	log    *zerolog.Logger
	tracer trace.Tracer

	state sessionState
	conn  Conn
}

// NewSession prepares a session against a configuration snapshot. No
// connection is opened until Connect or Bind.
func NewSession(cfg *config.Directory, dialer Dialer, log *zerolog.Logger, tracer trace.Tracer) *Session {
	return &Session{
		cfg:    cfg,
		dialer: dialer,
		log:    log,
		tracer: tracer,
	}
}

// Connect validates the configuration and opens a connection handle.
// Validation failures are logged and leave the session disconnected
// without returning an error; they surface downstream as
// ErrMissingConnection. Dial failures are transport errors and are
// returned. Connect is a no-op when already connected.
func (s *Session) Connect(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "directory.Session.Connect")
	defer span.End()

	if errs := config.Validate(s.cfg); len(errs) > 0 {
		for _, err := range errs {
			s.log.Error().Str("field", err.Field).Str("reason", err.Reason).Msg("directory configuration error")
		}
		s.Disconnect()
		return nil
	}

	if s.state == connected {
		return nil
	}

	s.state = connecting
	conn, err := s.dialer.Dial(ctx, s.cfg)
	if err != nil {
		stats.Directory.Add("connect_errors", 1)
		s.state = disconnected
		s.log.Debug().Str("host", s.cfg.Host).Err(err).Msg("could not connect to directory")
		return err
	}

	stats.Directory.Add("connects", 1)
	s.conn = conn
	s.state = connected
	return nil
}

// Disconnect closes the handle if one is open. Calling it on a
// disconnected session is a no-op; it never fails.
func (s *Session) Disconnect() {
	if s.state != connected {
		return
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.log.Debug().Err(err).Msg("error closing directory connection")
		}
		stats.Directory.Add("disconnects", 1)
	}
	s.conn = nil
	s.state = disconnected
}

// Bind authenticates the supplied credentials against the directory.
// It always (re)validates and (re)connects first. Directory-reported
// failures, including invalid credentials, are propagated unchanged
// for the policy layer to interpret.
func (s *Session) Bind(ctx context.Context, creds Credentials) error {
	ctx, span := s.tracer.Start(ctx, "directory.Session.Bind")
	defer span.End()

	if creds.Username == "" || creds.Password == "" {
		return ErrBadCredentials
	}

	if err := s.Connect(ctx); err != nil {
		return err
	}
	if s.conn == nil {
		return ErrMissingConnection
	}

	bindDN := config.Expand(s.cfg.BindDNFormat, creds.Username)

	stats.Directory.Add("bind_reqs", 1)
	if err := s.conn.Bind(bindDN, creds.Password); err != nil {
		stats.Directory.Add("bind_errors", 1)
		s.log.Debug().Str("binddn", bindDN).Err(err).Msg("directory bind failed")
		return err
	}

	stats.Directory.Add("bind_successes", 1)
	s.log.Debug().Str("binddn", bindDN).Msg("directory bind success")
	return nil
}
