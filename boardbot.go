// Package boardbot answers board game chat queries: exact catalog lookups,
// bounded random recommendations by genre or location, and
// retrieval-augmented answers for everything else.
package boardbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/boardbot/boardbot/catalog"
	"github.com/boardbot/boardbot/generator"
	"github.com/boardbot/boardbot/index"
	"github.com/boardbot/boardbot/router"
	"github.com/boardbot/boardbot/sampler"
	"github.com/boardbot/boardbot/session"
)

// Reply is the single answer produced for a query.
type Reply struct {
	Intent router.Intent `json:"intent"`
	Answer string        `json:"answer"`
}

// Assistant is the response composer. It is the only component with
// caller-visible side effects: every user query and every produced answer
// is appended to the session transcript, in order, before Ask returns.
type Assistant struct {
	options  Options
	store    *catalog.Store
	router   *router.Router
	sessions *session.Service

	// sampling draws from one shared source; *rand.Rand is not safe for
	// concurrent use across sessions
	rngMtx sync.Mutex
}

// New wires the assistant over a loaded catalog. The catalog store is
// shared read-only across all sessions.
func New(store *catalog.Store, opts ...Option) *Assistant {
	options := NewOptions(opts...)

	return &Assistant{
		options:  options,
		store:    store,
		router:   router.New(store, options.RouterOptions...),
		sessions: session.New(session.WithWindow(options.Window)),
	}
}

// NewSession starts (or resumes) a conversation.
func (a *Assistant) NewSession(id string) *session.Session {
	return a.sessions.CreateSession(id)
}

// Session looks up an existing conversation.
func (a *Assistant) Session(id string) (*session.Session, error) {
	return a.sessions.GetSession(id)
}

// Ask classifies the query, dispatches to the matching handler, and
// appends both turns to the transcript. It always produces exactly one
// answer: empty lookups and recoverable service failures come back as
// descriptive messages, not errors.
func (a *Assistant) Ask(ctx context.Context, sessionId string, query string) (Reply, error) {
	if len(strings.TrimSpace(query)) == 0 {
		return Reply{}, errors.New("query is required")
	}

	sess, err := a.sessions.GetSession(sessionId)
	if err != nil {
		return Reply{}, err
	}

	// one exchange at a time per session, classification through append
	sess.Lock()
	defer sess.Unlock()

	result := a.router.Classify(query)

	a.options.Logger.Debug().
		Str("session_id", sessionId).
		Str("intent", string(result.Intent)).
		Str("query", query).
		Msg("classified query")

	var answer string
	switch result.Intent {
	case router.IntentEntityLookup:
		answer = a.lookupGame(result.Entity)
	case router.IntentGenreRecommendation:
		answer = a.recommendGames(result.Genre, a.store.GamesByGenre(result.Genre))
	case router.IntentGeneralRecommendation:
		answer = a.recommendGames("", a.store.Games())
	case router.IntentLocationRecommendation:
		answer = a.recommendCafes(result.Location)
	default:
		answer = a.answerOpenQuestion(ctx, sess, query)
	}

	sess.AppendExchange(query, answer)

	return Reply{Intent: result.Intent, Answer: answer}, nil
}

func (a *Assistant) lookupGame(name string) string {
	game, ok := a.store.GameByName(name)
	if !ok {
		return fmt.Sprintf("'%s' 게임을 찾지 못했어요.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", game.Name)
	if len(game.Genre) > 0 {
		fmt.Fprintf(&b, "장르: %s\n", game.Genre)
	}
	if len(game.Players) > 0 {
		fmt.Fprintf(&b, "인원수: %s\n", game.Players)
	}
	if len(game.Description) > 0 {
		fmt.Fprintf(&b, "설명: %s\n", game.Description)
	}
	if len(game.Rules) > 0 {
		fmt.Fprintf(&b, "규칙: %s\n", game.Rules)
	}
	if len(game.Link) > 0 {
		fmt.Fprintf(&b, "링크: %s\n", game.Link)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *Assistant) recommendGames(genre string, candidates []catalog.Game) string {
	a.rngMtx.Lock()
	picked := sampler.Sample(a.options.Rand, candidates, a.options.SampleCount)
	a.rngMtx.Unlock()
	if len(picked) == 0 {
		if len(genre) > 0 {
			return fmt.Sprintf("'%s' 장르의 보드게임을 찾지 못했어요.", genre)
		}
		return "추천할 보드게임이 없어요."
	}

	var b strings.Builder
	if len(genre) > 0 {
		fmt.Fprintf(&b, "추천하는 %s 장르 보드게임:\n", genre)
	} else {
		b.WriteString("추천하는 보드게임:\n")
	}
	for _, game := range picked {
		fmt.Fprintf(&b, "- %s (%s)\n", game.Name, game.Genre)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *Assistant) recommendCafes(location string) string {
	a.rngMtx.Lock()
	picked := sampler.Sample(a.options.Rand, a.store.CafesByLocation(location), a.options.SampleCount)
	a.rngMtx.Unlock()
	if len(picked) == 0 {
		return fmt.Sprintf("'%s'의 보드게임 카페를 찾지 못했어요.", location)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "추천하는 %s의 보드게임 카페:\n", location)
	for _, cafe := range picked {
		if len(cafe.Link) > 0 {
			fmt.Fprintf(&b, "- %s (%s)\n", cafe.Name, cafe.Link)
		} else {
			fmt.Fprintf(&b, "- %s\n", cafe.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// answerOpenQuestion runs the retrieval-augmented path. A missing
// credential blocks only this path; structured lookup and sampling keep
// working.
func (a *Assistant) answerOpenQuestion(ctx context.Context, sess *session.Session, query string) string {
	if a.options.Embedder == nil || a.options.Generator == nil {
		return "API 키가 설정되지 않아 자유 질문에는 답변할 수 없어요. 게임 검색과 추천은 계속 이용할 수 있어요."
	}

	// memory snapshot before this turn, so the current question appears
	// once in the prompt
	memory := sess.Memory()

	ix, err := sess.Index(ctx, a.buildIndex)
	if err != nil {
		a.options.Logger.Error().Err(err).Str("session_id", sess.ID()).Msg("index build failed")
		return "자료 색인을 만들지 못했어요. 잠시 후 같은 질문을 다시 시도해주세요."
	}

	answer, err := ix.Answer(ctx, query, memory)
	if err != nil {
		a.options.Logger.Error().Err(err).Str("session_id", sess.ID()).Msg("answer generation failed")
		if generator.IsAuth(err) {
			return "생성 서비스가 API 키를 거부했어요. 키를 확인한 뒤 다시 시도해주세요."
		}
		return "답변 생성 중 오류가 발생했어요. 같은 질문을 다시 시도해주세요."
	}

	return answer.Text
}

func (a *Assistant) buildIndex(ctx context.Context) (*index.Index, error) {
	chunks := index.SplitAll(a.store.Chunks(), a.options.ChunkSize, a.options.ChunkOverlap)

	return index.Build(
		ctx,
		chunks,
		index.WithEmbedder(a.options.Embedder),
		index.WithGenerator(a.options.Generator),
		index.WithStore(a.options.NewStore()),
		index.WithTopK(a.options.TopK),
	)
}
