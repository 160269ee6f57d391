package postgres

import (
	"context"

	"github.com/google/uuid"
)

type Option func(*Options)

type Options struct {
	Location string
	Session  string
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

// WithSession pins the scope the store's rows live under. A stable value
// lets a rebuild after a restart overwrite the previous corpus instead of
// accumulating next to it; the default is a fresh scope per store.
func WithSession(id string) Option {
	return func(o *Options) {
		o.Session = id
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Session: uuid.New().String(),
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
