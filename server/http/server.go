// Package http exposes the assistant over a small JSON API: session
// creation, per-session queries, and transcript readback.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/boardbot/boardbot"
	"github.com/boardbot/boardbot/router"
	"github.com/boardbot/boardbot/session"
)

type Server struct {
	options   Options
	assistant *boardbot.Assistant
	srv       *http.Server
}

func NewServer(assistant *boardbot.Assistant, opts ...Option) *Server {
	s := &Server{
		options:   NewOptions(opts...),
		assistant: assistant,
	}

	s.srv = &http.Server{
		Addr:         s.options.Address,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// Handler builds the route table. Exposed so tests can drive the server
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/query", s.handleQuery).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/transcript", s.handleTranscript).Methods(http.MethodGet)

	var h http.Handler = r
	for i := len(s.options.Middleware) - 1; i >= 0; i-- {
		h = s.options.Middleware[i](h)
	}

	return h
}

func (s *Server) Start() error {
	s.options.Logger.Info().Str("address", s.options.Address).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type createSessionRequest struct {
	SessionId string `json:"session_id,omitempty"`
}

type createSessionResponse struct {
	SessionId string `json:"session_id"`
}

type queryRequest struct {
	Text string `json:"text"`
}

type queryResponse struct {
	Intent router.Intent `json:"intent"`
	Answer string        `json:"answer"`
}

type transcriptResponse struct {
	SessionId string         `json:"session_id"`
	Turns     []session.Turn `json:"turns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}

	sess := s.assistant.NewSession(req.SessionId)

	s.options.Logger.Info().Str("session_id", sess.ID()).Msg("session created")

	writeJSON(w, http.StatusCreated, createSessionResponse{SessionId: sess.ID()})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	sessionId := mux.Vars(r)["id"]

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(strings.TrimSpace(req.Text)) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	if _, err := s.assistant.Session(sessionId); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	reply, err := s.assistant.Ask(r.Context(), sessionId, req.Text)
	if err != nil {
		s.options.Logger.Error().Err(err).Str("session_id", sessionId).Msg("query failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Intent: reply.Intent, Answer: reply.Answer})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionId := mux.Vars(r)["id"]

	sess, err := s.assistant.Session(sessionId)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		SessionId: sessionId,
		Turns:     sess.Transcript(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
