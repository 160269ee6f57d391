// Package index builds and queries the semantic retrieval index over the
// catalog corpus, and composes retrieval-augmented answers through an
// external generative service.
package index

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Chunk is one indexed text fragment. Chunks own no back-reference to the
// catalog record they were derived from.
type Chunk struct {
	Id        string
	Text      string
	Embedding []float32
	Score     float32
}

// Turn is one conversation-memory entry supplied to Answer.
type Turn struct {
	Role    string
	Content string
}

// Answer is a generated response plus the chunks it was conditioned on.
type Answer struct {
	Text   string
	Chunks []Chunk
}

// Strategy selects how Retrieve ranks results.
type Strategy string

const (
	// Similarity ranks by descending cosine similarity.
	Similarity Strategy = "similarity"
	// MMR re-ranks to reduce redundancy among the top results. The corpus
	// holds many near-duplicate rows, so this is the default.
	MMR Strategy = "mmr"
)

// BuildError wraps any failure during Build. A partial index is never
// returned.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("index build: %v", e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Store holds embedded chunks and answers nearest-neighbor queries ordered
// by descending score. Add receives a build's full chunk set and replaces
// whatever a previous build left in the store's scope, so rebuilding
// against a shared store never accumulates duplicate rows.
type Store interface {
	Add(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, vector []float32, limit int) ([]Chunk, error)
}

// Index is the queryable handle returned by Build.
type Index struct {
	options Options
	size    int
}

// Build embeds every chunk and stores the vectors. The build is
// all-or-nothing: an unreachable embedding service or an empty chunk fails
// the whole build and nothing is stored.
func Build(ctx context.Context, chunks []string, opts ...Option) (*Index, error) {
	options := NewOptions(opts...)

	if options.Embedder == nil {
		return nil, &BuildError{Err: fmt.Errorf("embedder is required")}
	}
	if options.Store == nil {
		return nil, &BuildError{Err: fmt.Errorf("store is required")}
	}
	if len(chunks) == 0 {
		return nil, &BuildError{Err: fmt.Errorf("no chunks to index")}
	}

	embedded := make([]Chunk, 0, len(chunks))
	for i, text := range chunks {
		if len(strings.TrimSpace(text)) == 0 {
			return nil, &BuildError{Err: fmt.Errorf("chunk %d is empty", i)}
		}
		vec, err := options.Embedder.Embed(ctx, text)
		if err != nil {
			return nil, &BuildError{Err: fmt.Errorf("embed chunk %d: %w", i, err)}
		}
		embedded = append(embedded, Chunk{Text: text, Embedding: vec})
	}

	if err := options.Store.Add(ctx, embedded); err != nil {
		return nil, &BuildError{Err: fmt.Errorf("store chunks: %w", err)}
	}

	return &Index{options: options, size: len(embedded)}, nil
}

// Size returns the number of chunks the index holds.
func (ix *Index) Size() int {
	return ix.size
}

// Retrieve returns up to k chunks for the query under the given strategy.
// Fewer than k come back when the index holds fewer chunks.
func (ix *Index) Retrieve(ctx context.Context, query string, k int, strategy Strategy) ([]Chunk, error) {
	if k <= 0 {
		return nil, nil
	}

	vec, err := ix.options.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	switch strategy {
	case Similarity:
		return ix.options.Store.Search(ctx, vec, k)
	default:
		// MMR looks at a wider candidate pool before re-ranking.
		candidates, err := ix.options.Store.Search(ctx, vec, k*4)
		if err != nil {
			return nil, err
		}
		return selectMMR(candidates, k, ix.options.Relevance), nil
	}
}

// Answer retrieves context for the query and delegates to the generative
// service, supplying the retrieved chunks and the conversation memory.
// A credential rejection surfaces as generator.ErrAuth; every other
// failure is transient and the same query may be retried.
func (ix *Index) Answer(ctx context.Context, query string, memory []Turn) (Answer, error) {
	if ix.options.Generator == nil {
		return Answer{}, fmt.Errorf("generator is required")
	}

	chunks, err := ix.Retrieve(ctx, query, ix.options.TopK, MMR)
	if err != nil {
		return Answer{}, err
	}

	prompt := buildPrompt(ix.options.SystemPrompt, chunks, memory, query)

	text, err := ix.options.Generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}

	return Answer{Text: text, Chunks: chunks}, nil
}

func buildPrompt(systemPrompt string, chunks []Chunk, memory []Turn, query string) string {
	var sb bytes.Buffer
	sb.WriteString(systemPrompt)

	if len(chunks) > 0 {
		sb.WriteString("\n\n참고 자료:\n")
		for i, chunk := range chunks {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, chunk.Text))
		}
	}

	if len(memory) > 0 {
		sb.WriteString("\n대화 기록:\n")
		for _, turn := range memory {
			sb.WriteString(fmt.Sprintf("[%s]: %s\n", turn.Role, turn.Content))
		}
	}

	sb.WriteString("\n사용자 질문:\n")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n\n참고 자료에 근거해서 한국어로 답변해줘.\n")

	return sb.String()
}
