// Package httpapi is the HTTP surface of the backend: the voice webhook in
// both response protocols, the direct tool route, the OAuth flow and the
// dashboard.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cero-ai/cero-backend/internal/calendar"
	"github.com/cero-ai/cero-backend/internal/googleauth"
	"github.com/cero-ai/cero-backend/internal/model"
	"github.com/cero-ai/cero-backend/internal/tasks"
	"github.com/cero-ai/cero-backend/internal/tokenstore"
)

const defaultUserID = "demo-user"

// Responder is the conversational core behind the webhook routes. It always
// returns speakable text, whatever went wrong internally.
type Responder interface {
	Respond(ctx context.Context, req model.NormalizedRequest, userID string) string
}

// Deps carries everything the handlers need.
type Deps struct {
	Logger      *slog.Logger
	Assistant   Responder
	Tokens      tokenstore.Store
	Calendar    calendar.Service
	Tasks       tasks.Service
	Auth        *googleauth.Config
	FrontendURL string
	Timezone    string
}

type Server struct {
	logger      *slog.Logger
	mux         *http.ServeMux
	assistant   Responder
	tokens      tokenstore.Store
	calendar    calendar.Service
	tasks       tasks.Service
	auth        *googleauth.Config
	frontendURL string
	location    *time.Location
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	location, err := time.LoadLocation(deps.Timezone)
	if err != nil {
		location = time.UTC
	}

	s := &Server{
		logger:      logger,
		mux:         http.NewServeMux(),
		assistant:   deps.Assistant,
		tokens:      deps.Tokens,
		calendar:    deps.Calendar,
		tasks:       deps.Tasks,
		auth:        deps.Auth,
		frontendURL: deps.FrontendURL,
		location:    location,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHealth)

	// The voice platform has been observed calling the webhook on several
	// paths; the bare root POST is the fallback when it strips the path.
	s.mux.HandleFunc("POST /{$}", s.handleWebhookStream)
	s.mux.HandleFunc("POST /api/webhook", s.handleWebhookJSON)
	s.mux.HandleFunc("POST /api/webhook/elevenlabs", s.handleWebhookStream)
	s.mux.HandleFunc("POST /responses", s.handleWebhookStream)

	s.mux.HandleFunc("POST /api/tools/calendar", s.handleCalendarTool)

	s.mux.HandleFunc("GET /api/auth/google", s.handleLogin)
	s.mux.HandleFunc("GET /api/auth/google/callback", s.handleCallback)

	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
}

// Handler wraps the mux in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = CORS(h)
	h = Recover(s.logger, h)
	h = AccessLog(s.logger, h)
	h = RequestID(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Cero Backend is running!"))
}

// identity resolves the caller's identity key: header first, then query
// parameter, else the demo default.
func identity(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("userId"); id != "" {
		return id
	}
	return defaultUserID
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
