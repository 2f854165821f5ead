// Package server exposes the shopping assistant over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/agent"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/payment"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/session"
)

// Server wires the agent loop, catalog, sessions, and payments into HTTP
// handlers.
type Server struct {
	cfg      config.ServerConfig
	loop     *agent.Loop
	catalog  *catalog.Service
	payments *payment.Client
	sessions session.Store
	log      *slog.Logger
}

func New(cfg config.ServerConfig, loop *agent.Loop, cat *catalog.Service, payments *payment.Client, sessions session.Store, log *slog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		loop:     loop,
		catalog:  cat,
		payments: payments,
		sessions: sessions,
		log:      log,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/chat", s.handleChat)
		r.Get("/chat/ws", s.handleChatWS)
		r.Post("/checkout", s.handleCheckout)
		r.Get("/catalog", s.handleCatalog)
	})

	return r
}

// requireAPIKey rejects requests without the configured key. A blank key
// disables the check, which is the local-development default.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKey != "" && r.Header.Get("X-API-Key") != s.cfg.APIKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
