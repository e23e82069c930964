package brain

import (
	"context"
	"fmt"
	"strings"
)

// MockAdapter plays a short scripted funnel when no backend is configured.
// Useful for local development and tests of the full event loop.
type MockAdapter struct{}

func NewMockAdapter() *MockAdapter { return &MockAdapter{} }

func (a *MockAdapter) Send(ctx context.Context, req FunnelRequest) (FunnelResponse, error) {
	select {
	case <-ctx.Done():
		return FunnelResponse{}, &TransportError{Err: ctx.Err()}
	default:
	}

	if req.Action == ActionSubmitInitialDetails {
		interest := strings.TrimSpace(req.PrimaryInterest)
		if interest == "" {
			interest = "your goals"
		}
		return FunnelResponse{
			Type: "question",
			Text: fmt.Sprintf("Great to meet you! Since you care about %s, which area should we look at first?", strings.ToLower(interest)),
			Options: []string{
				"Automating customer outreach",
				"Qualifying leads faster",
				"Understanding my market better",
			},
		}, nil
	}

	switch {
	case req.CurrentStep <= 3:
		return FunnelResponse{
			Type: "input_required",
			Text: "Tell me a bit more about the biggest challenge you face there today.",
		}, nil
	case req.CurrentStep == 4:
		return FunnelResponse{
			Type: "offer",
			Text: "Based on what you shared, a guided demo is the fastest way to see the fit.",
			CTA:  "Book a Free Demo",
		}, nil
	default:
		return FunnelResponse{
			Type: "closing",
			Text: "Thanks for walking through this with me. A specialist can take it from here.",
			CTA:  "Talk to Specialist",
		}, nil
	}
}

func (a *MockAdapter) ResetSession(ctx context.Context, email string) (string, error) {
	select {
	case <-ctx.Done():
		return "", &TransportError{Err: ctx.Err()}
	default:
	}
	return fmt.Sprintf("Session for %s has been reset.", email), nil
}
