package boardbot

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/boardbot/boardbot/embedder"
	"github.com/boardbot/boardbot/generator"
	"github.com/boardbot/boardbot/index"
	"github.com/boardbot/boardbot/index/memory"
	"github.com/boardbot/boardbot/router"
)

type Option func(*Options)

type Options struct {
	Embedder      embedder.Embedder
	Generator     generator.Generator
	NewStore      func() index.Store
	RouterOptions []router.Option
	Logger        zerolog.Logger
	SampleCount   int
	Window        int
	ChunkSize     int
	ChunkOverlap  int
	TopK          int

	Rand *rand.Rand
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func WithGenerator(g generator.Generator) Option {
	return func(o *Options) {
		o.Generator = g
	}
}

// WithStoreFactory sets where each session's index keeps its vectors. The
// default is the in-process store.
func WithStoreFactory(f func() index.Store) Option {
	return func(o *Options) {
		o.NewStore = f
	}
}

func WithRouterOptions(opts ...router.Option) Option {
	return func(o *Options) {
		o.RouterOptions = append(o.RouterOptions, opts...)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSampleCount sets how many recommendations a sampling answer holds.
func WithSampleCount(n int) Option {
	return func(o *Options) {
		o.SampleCount = n
	}
}

// WithWindow bounds each session's conversation memory to the last n
// turns; 0 leaves it unbounded.
func WithWindow(n int) Option {
	return func(o *Options) {
		o.Window = n
	}
}

func WithChunking(size, overlap int) Option {
	return func(o *Options) {
		o.ChunkSize = size
		o.ChunkOverlap = overlap
	}
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

// WithRand injects the random source the sampler draws from, so tests can
// pin recommendation outcomes.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		NewStore:     memory.NewStore,
		Logger:       zerolog.Nop(),
		SampleCount:  3,
		ChunkSize:    900,
		ChunkOverlap: 100,
		TopK:         4,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return options
}
