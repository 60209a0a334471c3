package server

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/dirauth/dirauth/internal/monitoring"
	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/directory"
	"github.com/dirauth/dirauth/pkg/users"
)

// Option defines a single option function.
type Option func(o *Options)

// Options defines the available options for this package.
type Options struct {
	Logger  zerolog.Logger
	Config  *config.Config
	Dialer  directory.Dialer
	Store   users.Store
	Monitor monitoring.MonitorInterface
	Tracer  trace.Tracer
}

// newOptions initializes the available default options.
func newOptions(opts ...Option) Options {
	opt := Options{}

	for _, o := range opts {
		o(&opt)
	}

	return opt
}

// Logger provides a function to set the logger option.
func Logger(val zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = val
	}
}

// Config provides a function to set the config option.
func Config(val *config.Config) Option {
	return func(o *Options) {
		o.Config = val
	}
}

// Dialer provides a function to set the directory dialer option.
func Dialer(val directory.Dialer) Option {
	return func(o *Options) {
		o.Dialer = val
	}
}

// Store provides a function to set the user store option.
func Store(val users.Store) Option {
	return func(o *Options) {
		o.Store = val
	}
}

// Monitor provides a function to set the monitor option.
func Monitor(val monitoring.MonitorInterface) Option {
	return func(o *Options) {
		o.Monitor = val
	}
}

// Tracer provides a function to set the tracer option.
func Tracer(val trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = val
	}
}
