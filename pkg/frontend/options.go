package frontend

import (
	"github.com/rs/zerolog"

	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/handler"
	"github.com/dirauth/dirauth/pkg/users"
)

// Option defines a single option function.
type Option func(o *Options)

// Options defines the available options for this package.
type Options struct {
	Logger zerolog.Logger
	Config *config.API
	Auth   handler.Authenticator
	Local  *users.ConfigStore
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
func Config(val *config.API) Option {
	return func(o *Options) {
		o.Config = val
	}
}

// Auth provides a function to set the authenticator option.
func Auth(val handler.Authenticator) Option {
	return func(o *Options) {
		o.Auth = val
	}
}

// Local provides a function to set the local user store option.
func Local(val *users.ConfigStore) Option {
	return func(o *Options) {
		o.Local = val
	}
}
