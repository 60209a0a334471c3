package server

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/arl/statsviz"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/dirauth/dirauth/internal/monitoring"
	_tls "github.com/dirauth/dirauth/internal/tls"
	"github.com/dirauth/dirauth/pkg/assets"
	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/frontend"
	"github.com/dirauth/dirauth/pkg/handler"
	"github.com/dirauth/dirauth/pkg/stats"
	"github.com/dirauth/dirauth/pkg/users"
)

// AuthSvc ties the directory authenticator, the local user store and
// the web API together behind a single HTTP listener.
type AuthSvc struct {
	c       *config.Config
	auth    *handler.AuthHandler
	store   users.Store
	local   *users.ConfigStore
	srv     *http.Server
	watcher *monitoring.DirectoryMonitorWatcher

	monitor monitoring.MonitorInterface
	tracer  trace.Tracer
	log     zerolog.Logger
}

// statsSource exposes the expvar directory counters to the metrics
// watcher.
type statsSource struct{}

func (statsSource) Activity() monitoring.DirectoryActivity {
	return monitoring.DirectoryActivity{
		Connects:    float64(stats.GetInt(stats.Directory, "connects")),
		Binds:       float64(stats.GetInt(stats.Directory, "bind_reqs")),
		BindErrors:  float64(stats.GetInt(stats.Directory, "bind_errors")),
		Searches:    float64(stats.GetInt(stats.Directory, "search_reqs")),
		Disconnects: float64(stats.GetInt(stats.Directory, "disconnects")),
	}
}

func NewServer(opts ...Option) (*AuthSvc, error) {
	options := newOptions(opts...)

	s := AuthSvc{
		log:     options.Logger,
		c:       options.Config,
		store:   options.Store,
		monitor: options.Monitor,
		tracer:  options.Tracer,
	}

	// The config-seeded store is the default; hosts with their own
	// account database inject a Store option instead.
	if s.store == nil {
		s.local = users.NewConfigStore(s.c)
		s.store = s.local
	}

	s.auth = handler.NewAuthHandler(
		handler.Directory(s.c.Directory),
		handler.Dialer(options.Dialer),
		handler.Store(s.store),
		handler.Logger(&s.log),
		handler.Monitor(s.monitor),
		handler.Tracer(s.tracer),
	)

	router := http.NewServeMux()
	router.Handle("/debug/vars", expvar.Handler())
	if s.c.API.Internals {
		statsviz.Register(
			router,
			statsviz.Root("/internals"),
			statsviz.SendFrequency(1000*time.Millisecond),
		)
	}
	assets.NewAPI(s.log).RegisterEndpoints(router)
	monitoring.NewAPI(s.log).RegisterEndpoints(router)
	frontend.NewAPI(
		frontend.Logger(s.log),
		frontend.Config(&s.c.API),
		frontend.Auth(s.auth),
		frontend.Local(s.local),
	).RegisterEndpoints(router)

	s.srv = &http.Server{
		Addr:    s.c.API.Listen,
		Handler: router,
	}

	s.watcher = monitoring.NewDirectoryMonitorWatcher(statsSource{}, s.monitor, &s.log)

	return &s, nil
}

// ReplaceConfig swaps in a freshly loaded configuration. In-flight
// authentication attempts keep the snapshot they started with.
func (s *AuthSvc) ReplaceConfig(cfg *config.Config) {
	s.c = cfg
	s.auth.UpdateDirectory(cfg.Directory)
	if s.local != nil {
		s.local.Reseed(cfg.Users)
	}
	s.log.Info().Str("host", cfg.Directory.Host).Msg("Configuration reloaded")
}

// Authenticator returns the directory authenticator for in-process use.
func (s *AuthSvc) Authenticator() handler.Authenticator {
	return s.auth
}

// ListenAndServe listens on the TCP network address s.c.API.Listen
func (s *AuthSvc) ListenAndServe() error {
	if s.c.API.TLS {
		s.log.Info().Str("address", s.c.API.Listen).Msg("HTTPS server listening")

		cert, err := os.ReadFile(s.c.API.Cert)
		if err != nil {
			return fmt.Errorf("reading TLS certificate: %w", err)
		}
		key, err := os.ReadFile(s.c.API.Key)
		if err != nil {
			return fmt.Errorf("reading TLS key: %w", err)
		}
		tlsConfig, err := _tls.MakeTLS(cert, key, false)
		if err != nil {
			return err
		}
		s.srv.TLSConfig = tlsConfig

		monitoring.NewCollector(fmt.Sprintf("https://%s/debug/vars", s.c.API.Listen))
		return s.srv.ListenAndServeTLS("", "")
	}

	s.log.Info().Str("address", s.c.API.Listen).Msg("HTTP server listening")
	monitoring.NewCollector(fmt.Sprintf("http://%s/debug/vars", s.c.API.Listen))
	return s.srv.ListenAndServe()
}

// Shutdown drains the HTTP listener.
func (s *AuthSvc) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
