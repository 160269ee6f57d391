package session

type Option func(*Options)

type Options struct {
	Window int
}

// WithWindow bounds the conversation memory to the last n turns. Zero
// keeps it unbounded, the default. The transcript is never bounded either
// way.
func WithWindow(n int) Option {
	return func(o *Options) {
		o.Window = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
