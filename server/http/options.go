package http

import (
	"net/http"

	"github.com/rs/zerolog"
)

type Option func(o *Options)

type Options struct {
	Address    string
	Logger     zerolog.Logger
	Middleware []func(h http.Handler) http.Handler
}

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMiddleware(ms ...func(h http.Handler) http.Handler) Option {
	return func(o *Options) {
		o.Middleware = append(o.Middleware, ms...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address: ":8080",
		Logger:  zerolog.Nop(),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
