package index_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardbot/boardbot/generator"
	"github.com/boardbot/boardbot/index"
	"github.com/boardbot/boardbot/index/memory"
)

// stubEmbedder returns fixed vectors per exact text and fails on anything
// it does not know, standing in for an unreachable embedding service.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, ok := e.vectors[text]
	if !ok {
		return nil, fmt.Errorf("embedding service unreachable for %q", text)
	}
	return vec, nil
}

type stubGenerator struct {
	answer string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

var corpusVectors = map[string][]float32{
	"펭귄파티 인원수는 2-6명":  {1, 0, 0},
	"스플렌더는 전략 게임":     {0.9, 0.1, 0},
	"마피아는 심리전 파티 게임":  {0, 1, 0},
	"레드버튼은 홍대에 있는 카페": {0, 0, 1},
}

func chunkTexts() []string {
	return []string{
		"펭귄파티 인원수는 2-6명",
		"스플렌더는 전략 게임",
		"마피아는 심리전 파티 게임",
		"레드버튼은 홍대에 있는 카페",
	}
}

func buildTestIndex(t *testing.T, opts ...index.Option) *index.Index {
	t.Helper()
	opts = append([]index.Option{
		index.WithEmbedder(&stubEmbedder{vectors: corpusVectors}),
		index.WithStore(memory.NewStore()),
	}, opts...)
	ix, err := index.Build(context.Background(), chunkTexts(), opts...)
	require.NoError(t, err)
	return ix
}

func TestBuild(t *testing.T) {
	ix := buildTestIndex(t)
	assert.Equal(t, 4, ix.Size())
}

func TestRebuildOnSharedStoreKeepsResultsUnique(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	// two sessions building over one store must not stack the corpus
	for i := 0; i < 2; i++ {
		_, err := index.Build(
			ctx,
			chunkTexts(),
			index.WithEmbedder(&stubEmbedder{vectors: corpusVectors}),
			index.WithStore(store),
		)
		require.NoError(t, err)
	}

	got, err := store.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	seen := map[string]bool{}
	for _, chunk := range got {
		assert.False(t, seen[chunk.Text])
		seen[chunk.Text] = true
	}
}

func TestBuildFailsOnEmptyChunk(t *testing.T) {
	_, err := index.Build(
		context.Background(),
		[]string{"펭귄파티 인원수는 2-6명", "   "},
		index.WithEmbedder(&stubEmbedder{vectors: corpusVectors}),
		index.WithStore(memory.NewStore()),
	)

	var buildErr *index.BuildError
	require.ErrorAs(t, err, &buildErr)
}

func TestBuildFailsWhenEmbedderUnreachable(t *testing.T) {
	store := memory.NewStore()
	_, err := index.Build(
		context.Background(),
		[]string{"펭귄파티 인원수는 2-6명", "모르는 텍스트"},
		index.WithEmbedder(&stubEmbedder{vectors: corpusVectors}),
		index.WithStore(store),
	)

	var buildErr *index.BuildError
	require.ErrorAs(t, err, &buildErr)

	// all-or-nothing: nothing was stored for the chunks that did embed
	got, searchErr := store.Search(context.Background(), []float32{1, 0, 0}, 10)
	require.NoError(t, searchErr)
	assert.Empty(t, got)
}

func TestRetrieveSimilarityOrdering(t *testing.T) {
	ix := buildTestIndex(t)

	got, err := ix.Retrieve(context.Background(), "펭귄파티 인원수는 2-6명", 3, index.Similarity)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// the chunk identical to the query ranks first
	assert.Equal(t, "펭귄파티 인원수는 2-6명", got[0].Text)
	// scores descend
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
	assert.GreaterOrEqual(t, got[1].Score, got[2].Score)
}

func TestRetrieveFewerThanK(t *testing.T) {
	ix, err := index.Build(
		context.Background(),
		[]string{"펭귄파티 인원수는 2-6명"},
		index.WithEmbedder(&stubEmbedder{vectors: corpusVectors}),
		index.WithStore(memory.NewStore()),
	)
	require.NoError(t, err)

	got, err := ix.Retrieve(context.Background(), "펭귄파티 인원수는 2-6명", 3, index.Similarity)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "펭귄파티 인원수는 2-6명", got[0].Text)
}

func TestRetrieveMMRPrefersDiversity(t *testing.T) {
	ix := buildTestIndex(t, index.WithRelevance(0.3))

	// "펭귄파티..." and "스플렌더..." are near-duplicates in vector space;
	// with diversity weighted up, MMR at k=2 must not return both.
	got, err := ix.Retrieve(context.Background(), "펭귄파티 인원수는 2-6명", 2, index.MMR)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "펭귄파티 인원수는 2-6명", got[0].Text)
	assert.NotEqual(t, "스플렌더는 전략 게임", got[1].Text)
}

func TestRetrieveZeroK(t *testing.T) {
	ix := buildTestIndex(t)

	got, err := ix.Retrieve(context.Background(), "펭귄파티 인원수는 2-6명", 0, index.Similarity)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnswer(t *testing.T) {
	gen := &stubGenerator{answer: "펭귄파티는 2명에서 6명까지 즐길 수 있어요."}
	ix := buildTestIndex(t, index.WithGenerator(gen), index.WithTopK(2))

	memoryTurns := []index.Turn{
		{Role: "user", Content: "보드게임 추천해줘"},
		{Role: "assistant", Content: "펭귄파티를 추천해요."},
	}

	got, err := ix.Answer(context.Background(), "펭귄파티 인원수는 2-6명", memoryTurns)
	require.NoError(t, err)

	assert.Equal(t, gen.answer, got.Text)
	require.NotEmpty(t, got.Chunks)
	assert.Equal(t, "펭귄파티 인원수는 2-6명", got.Chunks[0].Text)

	// retrieved chunks and conversation memory both reach the prompt
	assert.Contains(t, gen.prompt, "펭귄파티 인원수는 2-6명")
	assert.Contains(t, gen.prompt, "[user]: 보드게임 추천해줘")
}

func TestAnswerAuthError(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: status 401", generator.ErrAuth)}
	ix := buildTestIndex(t, index.WithGenerator(gen))

	_, err := ix.Answer(context.Background(), "펭귄파티 인원수는 2-6명", nil)
	assert.True(t, generator.IsAuth(err))
}

func TestAnswerTransientError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("timeout")}
	ix := buildTestIndex(t, index.WithGenerator(gen))

	_, err := ix.Answer(context.Background(), "펭귄파티 인원수는 2-6명", nil)
	require.Error(t, err)
	assert.False(t, generator.IsAuth(err))
}

func TestSplit(t *testing.T) {
	short := "짧은 텍스트"
	assert.Equal(t, []string{short}, index.Split(short, 900, 100))

	long := ""
	for i := 0; i < 40; i++ {
		long += "가나다라마바사아자차카타파하"
	}
	chunks := index.Split(long, 100, 10)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 100)
	}

	assert.Empty(t, index.Split("", 900, 100))
}
