package index

import (
	"context"

	"github.com/boardbot/boardbot/embedder"
	"github.com/boardbot/boardbot/generator"
)

const defaultSystemPrompt = "너는 보드게임과 보드게임 카페를 잘 아는 도우미야. 참고 자료에 없는 내용은 지어내지 마."

type Option func(*Options)

type Options struct {
	Embedder     embedder.Embedder
	Generator    generator.Generator
	Store        Store
	SystemPrompt string
	TopK         int
	Relevance    float64
	Context      context.Context
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

func WithStore(s Store) Option {
	return func(o *Options) {
		o.Store = s
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// WithTopK sets how many chunks Answer retrieves as context.
func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

// WithRelevance tunes the MMR trade-off: 1 is pure similarity, 0 is pure
// diversity.
func WithRelevance(relevance float64) Option {
	return func(o *Options) {
		o.Relevance = relevance
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		SystemPrompt: defaultSystemPrompt,
		TopK:         4,
		Relevance:    0.7, // mild diversity
		Context:      context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
