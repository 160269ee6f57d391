// Package session owns per-conversation state: the append-only transcript,
// the conversation memory window, and the lazily built semantic index
// handle. A session is owned by exactly one user interaction context and
// is never shared across sessions.
package session

import (
	"context"
	"sync"

	"github.com/boardbot/boardbot/index"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one transcript entry.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session state is serialized by the session's own query lock, taken by
// the composer around each exchange; the internal mutex additionally
// guards direct transcript access.
type Session struct {
	id     string
	window int // memory entries kept for the answer generator; 0 = unbounded

	mtx        sync.Mutex
	transcript []Turn
	memory     []Turn

	queryMtx sync.Mutex

	buildMtx sync.Mutex
	index    *index.Index
}

func (s *Session) ID() string {
	return s.id
}

// Append records a turn in strict chronological order. The transcript is
// append-only; the memory window independently evicts its oldest entry
// once over the window size, which affects only what reaches the answer
// generator.
func (s *Session) Append(role, content string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.appendLocked(role, content)
}

// AppendExchange records a user turn and its answer under one lock
// acquisition, so a concurrent exchange can never land between them.
func (s *Session) AppendExchange(query, answer string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.appendLocked(RoleUser, query)
	s.appendLocked(RoleAssistant, answer)
}

func (s *Session) appendLocked(role, content string) {
	turn := Turn{Role: role, Content: content}
	s.transcript = append(s.transcript, turn)

	s.memory = append(s.memory, turn)
	if s.window > 0 && len(s.memory) > s.window {
		s.memory = s.memory[len(s.memory)-s.window:]
	}
}

// Lock takes the session's query lock. The composer holds it for the
// whole of an exchange, so requests against one session run strictly one
// at a time.
func (s *Session) Lock() {
	s.queryMtx.Lock()
}

func (s *Session) Unlock() {
	s.queryMtx.Unlock()
}

// Transcript returns a copy of the full transcript, in insertion order.
func (s *Session) Transcript() []Turn {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Memory returns the window supplied to the answer generator.
func (s *Session) Memory() []index.Turn {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	out := make([]index.Turn, 0, len(s.memory))
	for _, turn := range s.memory {
		out = append(out, index.Turn{Role: turn.Role, Content: turn.Content})
	}
	return out
}

// Index returns the session's semantic index, building it on first need.
// The build mutex gives the single-build-in-flight rule: the first caller
// builds, concurrent callers block and receive the same handle. A failed
// build is not memoized, so the next query may retry.
func (s *Session) Index(ctx context.Context, build func(ctx context.Context) (*index.Index, error)) (*index.Index, error) {
	s.buildMtx.Lock()
	defer s.buildMtx.Unlock()

	if s.index != nil {
		return s.index, nil
	}

	ix, err := build(ctx)
	if err != nil {
		return nil, err
	}

	s.index = ix
	return ix, nil
}
