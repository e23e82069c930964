package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Echolyx123/advansells-frontend/internal/brain"
	"github.com/Echolyx123/advansells-frontend/internal/funnel"
	"github.com/Echolyx123/advansells-frontend/internal/policy"
	"github.com/Echolyx123/advansells-frontend/internal/protocol"
	"github.com/Echolyx123/advansells-frontend/internal/session"
)

const (
	wsWriteTimeout  = 10 * time.Second
	wsReadTimeout   = 120 * time.Second
	wsMaxMessage    = 2 << 20
	wsOutboundDepth = 256
	wsInboundDepth  = 16
)

// handleSessionWS is the interactive surface of a funnel run. Each connection
// gets its own engine and gateway; closing the socket discards the run's
// state, matching a page reload.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "session_id query parameter is required")
		return
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", "unknown session")
		return
	}
	if sess.Status != session.StatusActive {
		respondError(w, http.StatusConflict, "session_ended", "session is no longer active")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed for session %s: %v", sessionID, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan any, wsOutboundDepth)
	writerDone := make(chan struct{})

	// Single writer goroutine. gorilla/websocket allows at most one
	// concurrent writer per connection.
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-outbound:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("ws write failed for session %s: %v", sessionID, err)
					cancel()
					return
				}
				s.metrics.WSMessages.WithLabelValues("outbound", string(messageTypeOf(msg))).Inc()
			}
		}
	}()

	enqueue := func(msg any) {
		select {
		case outbound <- msg:
		default:
			log.Printf("ws outbound queue full for session %s, dropping %s", sessionID, messageTypeOf(msg))
		}
	}

	gateway := brain.NewGateway(s.adapter, func(active bool) {
		enqueue(protocol.Loading{Type: protocol.TypeLoading, SessionID: sessionID, Active: active})
	}, s.metrics)
	engine := funnel.NewEngine(gateway, s.renderer, s.resolver)

	inbound := make(chan any, wsInboundDepth)
	engineDone := make(chan struct{})

	go func() {
		defer close(engineDone)

		start := engine.Start()
		if start.Plan != nil {
			enqueue(protocol.RenderPlan{Type: protocol.TypeRenderPlan, SessionID: sessionID, Plan: *start.Plan})
		}

		for msg := range inbound {
			ev := eventFromMessage(msg)
			if ev == nil {
				continue
			}
			outcome, err := engine.Handle(ctx, ev)
			s.deliver(enqueue, sessionID, outcome, err)

			if _, ok := ev.(funnel.SubmitEmail); ok && err == nil {
				if email := engine.Snapshot().Email; email != "" {
					if bindErr := s.sessions.BindEmail(sessionID, email); bindErr != nil {
						log.Printf("session %s email bind failed: %v", sessionID, bindErr)
					}
				}
			}
		}
	}()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws read ended for session %s: %v", sessionID, err)
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		if msgType != websocket.TextMessage {
			continue
		}

		msg, err := protocol.ParseClientMessage(raw)
		if err != nil {
			detail := "unsupported message type"
			if !errors.Is(err, protocol.ErrUnsupportedType) {
				detail = err.Error()
			}
			enqueue(protocol.ErrorEvent{
				Type:      protocol.TypeErrorEvent,
				SessionID: sessionID,
				Code:      "invalid_client_message",
				Detail:    detail,
			})
			continue
		}

		s.metrics.WSMessages.WithLabelValues("inbound", string(messageTypeOf(msg))).Inc()
		if err := s.sessions.Touch(sessionID); err != nil {
			// Session expired under us; stop serving the connection.
			break
		}

		if ft, ok := msg.(protocol.SubmitFreeText); ok {
			redacted, _ := policy.RedactPII(ft.Text)
			log.Printf("session %s free input: %s", sessionID, redacted)
		}

		// A pending backend call means new interaction events are dropped, not
		// queued. The engine re-checks under its own guard for the race window.
		if gateway.Busy() {
			continue
		}

		select {
		case inbound <- msg:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	cancel()
	close(inbound)
	<-engineDone
	<-writerDone
	conn.Close()

	if _, err := s.sessions.End(sessionID); err == nil {
		s.metrics.SessionEvents.WithLabelValues("disconnected").Inc()
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
}

// deliver translates an engine result into outbound protocol messages.
func (s *Server) deliver(enqueue func(any), sessionID string, outcome funnel.Outcome, err error) {
	if err != nil {
		var verr *funnel.ValidationError
		if errors.As(err, &verr) {
			enqueue(protocol.Notice{
				Type:      protocol.TypeNotice,
				SessionID: sessionID,
				Title:     verr.Title,
				Message:   verr.Message,
				Reset:     false,
			})
			return
		}
		log.Printf("session %s engine error: %v", sessionID, err)
		enqueue(protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: sessionID,
			Code:      "internal_error",
			Detail:    "unable to process event",
		})
		return
	}

	if outcome.Notice != nil {
		if outcome.Notice.Reset {
			s.metrics.FunnelOutcomes.WithLabelValues("reset_on_error").Inc()
		}
		enqueue(protocol.Notice{
			Type:      protocol.TypeNotice,
			SessionID: sessionID,
			Title:     outcome.Notice.Title,
			Message:   outcome.Notice.Message,
			Reset:     outcome.Notice.Reset,
		})
	}
	if outcome.Action != nil {
		if outcome.Action.URL != "" {
			s.metrics.FunnelOutcomes.WithLabelValues("cta_resolved").Inc()
		} else {
			s.metrics.FunnelOutcomes.WithLabelValues("cta_fallback").Inc()
		}
		enqueue(protocol.ExternalAction{
			Type:      protocol.TypeExternalAction,
			SessionID: sessionID,
			Action:    *outcome.Action,
		})
	}
	if outcome.Plan != nil {
		enqueue(protocol.RenderPlan{
			Type:      protocol.TypeRenderPlan,
			SessionID: sessionID,
			Plan:      *outcome.Plan,
		})
	}
}

func eventFromMessage(msg any) funnel.Event {
	switch m := msg.(type) {
	case protocol.SubmitEmail:
		return funnel.SubmitEmail{Email: m.Email}
	case protocol.SubmitProfile:
		return funnel.SubmitProfile{
			CompanyName:     m.CompanyName,
			UserRole:        m.UserRole,
			PrimaryInterest: m.PrimaryInterest,
		}
	case protocol.SelectOption:
		return funnel.SelectOption{Text: m.Value}
	case protocol.SubmitFreeText:
		return funnel.SubmitFreeText{Text: m.Text}
	case protocol.ContinueFunnel:
		return funnel.Continue{}
	case protocol.ResolveCTA:
		return funnel.ResolveCTA{Label: m.CTA}
	case protocol.DismissNotice:
		return funnel.DismissNotice{}
	default:
		return nil
	}
}

func messageTypeOf(msg any) protocol.MessageType {
	switch m := msg.(type) {
	case protocol.SubmitEmail:
		return m.Type
	case protocol.SubmitProfile:
		return m.Type
	case protocol.SelectOption:
		return m.Type
	case protocol.SubmitFreeText:
		return m.Type
	case protocol.ContinueFunnel:
		return m.Type
	case protocol.ResolveCTA:
		return m.Type
	case protocol.DismissNotice:
		return m.Type
	case protocol.RenderPlan:
		return m.Type
	case protocol.Notice:
		return m.Type
	case protocol.Loading:
		return m.Type
	case protocol.ExternalAction:
		return m.Type
	case protocol.ErrorEvent:
		return m.Type
	default:
		return "unknown"
	}
}
