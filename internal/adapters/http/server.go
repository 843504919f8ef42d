// Package http hosts the bot behind a chi router. It is a thin channel
// adapter: one POST per turn, replies collected and returned in the
// response body. Turns for the same conversation are serialized here, as
// the engine requires.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bot is the narrow surface the adapter needs from the turn coordinator.
type Bot interface {
	OnTurn(ctx context.Context, activity *domain.Activity, responder ports.Responder) error
}

// Server handles transport requests for one Bot.
type Server struct {
	bot      Bot
	locks    *turnLocks
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer exposes a prometheus registry on /metrics.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler for the bot.
func NewHandler(bot Bot, opts ...ServerOption) http.Handler {
	s := &Server{
		bot:    bot,
		locks:  newTurnLocks(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/api/messages", s.handleMessages)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// turnResponse is the reply envelope for one processed activity.
type turnResponse struct {
	Replies []string `json:"replies"`
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	var activity domain.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		http.Error(w, "Invalid activity body", http.StatusBadRequest)
		s.logger.Warn("invalid activity body", "err", err)
		return
	}
	if activity.ConversationID == "" || activity.From.ID == "" {
		http.Error(w, "conversation_id and from.id are required", http.StatusBadRequest)
		return
	}
	if activity.Type == "" {
		activity.Type = domain.ActivityMessage
	}

	var replies []string
	responder := ports.ResponderFunc(func(ctx context.Context, text string) error {
		replies = append(replies, text)
		return nil
	})

	// One in-flight turn per conversation; concurrent conversations
	// proceed independently.
	unlock := s.locks.acquire(activity.ConversationID)
	err := s.bot.OnTurn(r.Context(), &activity, responder)
	unlock()

	if err != nil {
		s.logger.Error("turn failed", "conversation_id", activity.ConversationID, "err", err)
		// The turn ended uncommitted; the apology is the channel's job.
		writeJSON(w, http.StatusInternalServerError, turnResponse{
			Replies: []string{"Sorry, something went wrong handling your message. Please try again."},
		})
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{Replies: replies})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
