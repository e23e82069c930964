package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Echolyx123/advansells-frontend/internal/cta"
	"github.com/Echolyx123/advansells-frontend/internal/render"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeSubmitEmail    MessageType = "submit_email"
	TypeSubmitProfile  MessageType = "submit_profile"
	TypeSelectOption   MessageType = "select_option"
	TypeSubmitFreeText MessageType = "submit_free_text"
	TypeContinueFunnel MessageType = "continue_funnel"
	TypeResolveCTA     MessageType = "resolve_cta"
	TypeDismissNotice  MessageType = "dismiss_notice"

	TypeRenderPlan     MessageType = "render_plan"
	TypeNotice         MessageType = "notice"
	TypeLoading        MessageType = "loading"
	TypeExternalAction MessageType = "external_action"
	TypeErrorEvent     MessageType = "error_event"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// Client → server events. Field-level validation (empty email, unknown role)
// is the engine's job; parsing only enforces structure.

type SubmitEmail struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Email     string      `json:"email"`
}

type SubmitProfile struct {
	Type            MessageType `json:"type"`
	SessionID       string      `json:"session_id"`
	CompanyName     string      `json:"company_name"`
	UserRole        string      `json:"user_role"`
	PrimaryInterest string      `json:"primary_interest"`
}

type SelectOption struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	ActionID  string      `json:"action_id"`
	Value     string      `json:"value"`
}

type SubmitFreeText struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Text      string      `json:"text"`
}

type ContinueFunnel struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type ResolveCTA struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	CTA       string      `json:"cta"`
}

type DismissNotice struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

// Server → client messages.

type RenderPlan struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Plan      render.Plan `json:"plan"`
}

type Notice struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Reset     bool        `json:"reset"`
}

type Loading struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Active    bool        `json:"active"`
}

type ExternalAction struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Action    cta.Action  `json:"action"`
}

type ErrorEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail"`
}

// ParseClientMessage decodes and structurally validates one inbound payload.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeSubmitEmail:
		var msg SubmitEmail
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid submit_email")
		}
		return msg, nil
	case TypeSubmitProfile:
		var msg SubmitProfile
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid submit_profile")
		}
		return msg, nil
	case TypeSelectOption:
		var msg SelectOption
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.Value == "" {
			return nil, errors.New("invalid select_option")
		}
		return msg, nil
	case TypeSubmitFreeText:
		var msg SubmitFreeText
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid submit_free_text")
		}
		return msg, nil
	case TypeContinueFunnel:
		var msg ContinueFunnel
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid continue_funnel")
		}
		return msg, nil
	case TypeResolveCTA:
		var msg ResolveCTA
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid resolve_cta")
		}
		return msg, nil
	case TypeDismissNotice:
		var msg DismissNotice
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid dismiss_notice")
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}
