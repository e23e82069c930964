package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Echolyx123/advansells-frontend/internal/brain"
	"github.com/Echolyx123/advansells-frontend/internal/config"
	"github.com/Echolyx123/advansells-frontend/internal/cta"
	"github.com/Echolyx123/advansells-frontend/internal/observability"
	"github.com/Echolyx123/advansells-frontend/internal/render"
	"github.com/Echolyx123/advansells-frontend/internal/session"
)

type Server struct {
	cfg      config.Config
	sessions *session.Manager
	adapter  brain.Adapter
	renderer *render.Renderer
	resolver *cta.Resolver
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
	static   http.Handler
}

func New(cfg config.Config, sessions *session.Manager, adapter brain.Adapter, renderer *render.Renderer, resolver *cta.Resolver, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		adapter:  adapter,
		renderer: renderer,
		resolver: resolver,
		metrics:  metrics,
		static:   newStaticHandler(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin, so another site cannot drive a visitor's
				// funnel session.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/funnel/session", s.handleCreateSession)
	r.Post("/v1/funnel/session/{id}/end", s.handleEndSession)
	r.Post("/v1/funnel/reset-session", s.handleResetSession)
	r.Get("/v1/funnel/session/ws", s.handleSessionWS)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"active_sessions": s.sessions.ActiveCount(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("created").Inc()

	respondJSON(w, http.StatusCreated, session.CreateResponse{
		SessionID:       sess.ID,
		Status:          sess.Status,
		StartedAt:       sess.StartedAt,
		InactivityTTLMS: s.cfg.SessionInactivityTimeout.Milliseconds(),
	})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}

	sess, err := s.sessions.End(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("ended").Inc()
	respondJSON(w, http.StatusOK, sess)
}

// handleResetSession tears down the run bound to an email: the local session
// ends, and the backend is asked to drop its stored context when reachable.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	var req session.ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		respondError(w, http.StatusBadRequest, "missing_email", "email is required")
		return
	}

	if _, err := s.sessions.EndByEmail(email); err == nil {
		s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
		s.metrics.SessionEvents.WithLabelValues("reset").Inc()
	}

	message := fmt.Sprintf("Session for %s has been reset.", email)
	if s.adapter != nil {
		if msg, err := s.adapter.ResetSession(r.Context(), email); err != nil {
			log.Printf("backend session reset failed: %v", err)
		} else if strings.TrimSpace(msg) != "" {
			message = msg
		}
	}

	respondJSON(w, http.StatusOK, session.ResetResponse{Message: message})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
