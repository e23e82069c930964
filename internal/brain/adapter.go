package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// FunnelAction identifies the user action that triggered a backend call.
type FunnelAction string

const (
	ActionSubmitInitialDetails FunnelAction = "submit_initial_details"
	ActionUserResponse         FunnelAction = "user_response"
	ActionUserFreeInput        FunnelAction = "user_free_input"
	ActionContinueFunnel       FunnelAction = "continue_funnel"
)

// TurnPart wraps one text fragment of a conversation turn on the wire.
type TurnPart struct {
	Text string `json:"text"`
}

// HistoryTurn is one conversation turn in the backend wire format.
type HistoryTurn struct {
	Role  string     `json:"role"`
	Parts []TurnPart `json:"parts"`
}

// FunnelRequest is the payload POSTed to the funnel backend. It carries the
// full session state plus the triggering action.
type FunnelRequest struct {
	Email           string        `json:"email"`
	CompanyName     string        `json:"companyName"`
	UserRole        string        `json:"userRole"`
	PrimaryInterest string        `json:"primaryInterest"`
	ChatHistory     []HistoryTurn `json:"chatHistory"`
	CurrentStep     int           `json:"currentStep"`
	Action          FunnelAction  `json:"action"`
	UserResponse    string        `json:"userResponse,omitempty"`
}

// FunnelResponse is the backend's tagged reply. The adapter returns it as
// parsed, without shape validation; that belongs to the renderer.
type FunnelResponse struct {
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	CTA     string   `json:"cta,omitempty"`
}

// Adapter bridges the funnel runtime with the conversational-AI backend.
type Adapter interface {
	Send(ctx context.Context, req FunnelRequest) (FunnelResponse, error)
	ResetSession(ctx context.Context, email string) (string, error)
}

// Config controls adapter construction.
type Config struct {
	Mode    string
	BaseURL string
	Timeout time.Duration
}

func NewAdapter(cfg Config) (Adapter, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.BaseURL) != "" {
			return NewHTTPAdapter(cfg.BaseURL, cfg.Timeout), nil
		}
		return NewMockAdapter(), nil
	case "http":
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, errors.New("brain base URL is required for http mode")
		}
		return NewHTTPAdapter(cfg.BaseURL, cfg.Timeout), nil
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported brain adapter mode %q", cfg.Mode)
	}
}
