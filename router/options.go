package router

type Option func(*Options)

type Options struct {
	ExtraGenres    []string
	ExtraLocations []string
}

// WithExtraGenres adds genre tokens the catalog does not currently carry,
// so a query over them still classifies as a genre recommendation.
func WithExtraGenres(genres ...string) Option {
	return func(o *Options) {
		o.ExtraGenres = append(o.ExtraGenres, genres...)
	}
}

// WithExtraLocations adds location tokens beyond the cafe table.
func WithExtraLocations(locations ...string) Option {
	return func(o *Options) {
		o.ExtraLocations = append(o.ExtraLocations, locations...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
