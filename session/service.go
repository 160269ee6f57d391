package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service is the process-wide session registry.
type Service struct {
	options  Options
	sessions map[string]*Session
	mtx      sync.RWMutex
}

// CreateSession registers a session under id, minting an id when none is
// given. Creating an existing id returns the existing session.
func (s *Service) CreateSession(id string) *Session {
	if len(strings.TrimSpace(id)) == 0 {
		id = uuid.New().String()
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if session, ok := s.sessions[id]; ok {
		return session
	}

	session := &Session{
		id:     id,
		window: s.options.Window,
	}

	s.sessions[id] = session

	return session
}

func (s *Service) GetSession(id string) (*Session, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return session, nil
}

func (s *Service) ListSessionIds() []string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Service) DeleteSession(id string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.sessions, id)
}

func New(opts ...Option) *Service {
	options := NewOptions(opts...)

	return &Service{
		options:  options,
		sessions: map[string]*Session{},
		mtx:      sync.RWMutex{},
	}
}
