package cta

import (
	"context"
	"errors"
	"testing"
)

type failingRegistry struct{}

func (failingRegistry) Lookup(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, errors.New("connection lost")
}

func (failingRegistry) Close() error { return nil }

func TestResolveAllowListedCTA(t *testing.T) {
	r := NewResolver(NewStaticRegistry())

	action, err := r.Resolve(context.Background(), "Book a Free Demo")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if action.Kind != ActionOpenURL {
		t.Fatalf("kind = %s", action.Kind)
	}
	if action.URL == "" {
		t.Fatalf("allow-listed entry must carry its URL")
	}
}

func TestResolveTrimsLabel(t *testing.T) {
	r := NewResolver(NewStaticRegistry())
	action, err := r.Resolve(context.Background(), "  Book a Free Demo  ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if action.Kind != ActionOpenURL {
		t.Fatalf("trimmed label should still match: %+v", action)
	}
}

func TestResolveUnknownLabelFallsBack(t *testing.T) {
	r := NewResolver(NewStaticRegistry())

	action, err := r.Resolve(context.Background(), "https://evil.example/phish")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if action.Kind != ActionAcknowledge {
		t.Fatalf("unknown label must acknowledge, got %s", action.Kind)
	}
	if action.URL != "" {
		t.Fatalf("unknown label must never produce a URL")
	}
	if action.Message == "" {
		t.Fatalf("fallback needs a message")
	}
}

func TestResolveEntryWithoutURLAcknowledges(t *testing.T) {
	r := NewResolver(NewStaticRegistry())

	action, err := r.Resolve(context.Background(), "Get Sample Report")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if action.Kind != ActionAcknowledge {
		t.Fatalf("URL-less entry must acknowledge, got %s", action.Kind)
	}
	if action.Message == "" {
		t.Fatalf("entry message missing")
	}
}

func TestResolveRegistryFailureDegrades(t *testing.T) {
	r := NewResolver(failingRegistry{})

	action, err := r.Resolve(context.Background(), "Book a Free Demo")
	if err == nil {
		t.Fatalf("registry error should surface for logging")
	}
	if action.Kind != ActionAcknowledge || action.URL != "" {
		t.Fatalf("registry failure must degrade to acknowledgement: %+v", action)
	}
	if action.Message == "" {
		t.Fatalf("fallback message missing")
	}
}

func TestNewRegistryDefaultsToStatic(t *testing.T) {
	reg, err := NewRegistry(context.Background(), "")
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	defer reg.Close()
	if _, ok := reg.(*StaticRegistry); !ok {
		t.Fatalf("empty database URL should select the static registry, got %T", reg)
	}
}
