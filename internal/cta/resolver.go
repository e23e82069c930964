package cta

import (
	"context"
	"strings"
)

// ActionKind distinguishes the two safe resolutions of a CTA.
type ActionKind string

const (
	// ActionOpenURL opens the allow-listed URL in a new browsing context.
	ActionOpenURL ActionKind = "open_url"
	// ActionAcknowledge shows a confirmation with no navigation.
	ActionAcknowledge ActionKind = "acknowledge"
)

const fallbackMessage = "Thanks for your interest! We'll follow up with next steps by email."

// Action is the resolved, safe outcome of a CTA click. Either resolution is
// terminal: the funnel resets after it is delivered.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Label   string     `json:"label"`
	URL     string     `json:"url,omitempty"`
	Message string     `json:"message"`
}

// Resolver validates CTA labels against the registry.
type Resolver struct {
	registry Registry
}

func NewResolver(registry Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve maps a label to its allow-listed action, or to the fallback
// acknowledgement on a miss or registry failure. It never builds a URL from
// the label itself; that would reopen the redirect hole this closes.
func (r *Resolver) Resolve(ctx context.Context, label string) (Action, error) {
	label = strings.TrimSpace(label)

	entry, ok, err := r.registry.Lookup(ctx, label)
	if err != nil || !ok {
		return Action{
			Kind:    ActionAcknowledge,
			Label:   label,
			Message: fallbackMessage,
		}, err
	}

	if entry.URL == "" {
		return Action{
			Kind:    ActionAcknowledge,
			Label:   entry.Label,
			Message: entry.Message,
		}, nil
	}
	return Action{
		Kind:    ActionOpenURL,
		Label:   entry.Label,
		URL:     entry.URL,
		Message: entry.Message,
	}, nil
}
