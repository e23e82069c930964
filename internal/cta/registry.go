// Package cta resolves call-to-action labels against a closed allow-list.
// The registry is never derived from backend input; an unknown label resolves
// to a safe fallback instead of a navigation.
package cta

import (
	"context"
	"strings"
	"sync"
)

// Entry maps a CTA label to its external URL and confirmation message.
// URL may be empty for CTAs fulfilled out of band (e.g. by email).
type Entry struct {
	Label   string `json:"label"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message"`
}

// Registry looks up allow-listed CTA entries.
type Registry interface {
	Lookup(ctx context.Context, label string) (Entry, bool, error)
	Close() error
}

// NewRegistry creates a postgres-backed registry when configured, otherwise
// the built-in static allow-list.
func NewRegistry(ctx context.Context, databaseURL string) (Registry, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewStaticRegistry(), nil
	}
	return NewPostgresRegistry(ctx, databaseURL)
}

// StaticRegistry serves the compiled-in allow-list.
type StaticRegistry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewStaticRegistry() *StaticRegistry {
	entries := make(map[string]Entry, len(defaultEntries))
	for _, e := range defaultEntries {
		entries[e.Label] = e
	}
	return &StaticRegistry{entries: entries}
}

func (r *StaticRegistry) Lookup(_ context.Context, label string) (Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[strings.TrimSpace(label)]
	return e, ok, nil
}

func (r *StaticRegistry) Close() error { return nil }

var defaultEntries = []Entry{
	{
		Label:   "Book a Free Demo",
		URL:     "https://example.com/book-demo",
		Message: "Great! We will now direct you to our demo booking page.",
	},
	{
		Label:   "Get ROI Estimate",
		URL:     "https://example.com/roi-estimate-form",
		Message: "Excellent! We will now guide you to a form to get your custom ROI estimate.",
	},
	{
		Label:   "Download Case Study",
		URL:     "https://example.com/case-study.pdf",
		Message: "Fantastic! Your case study download will begin shortly.",
	},
	{
		Label:   "Get Sample Report",
		Message: "Perfect! Your sample market trend report will be sent to your email shortly.",
	},
	{
		Label:   "Talk to Specialist",
		URL:     "https://example.com/contact-specialist",
		Message: "Connecting you with a specialist! We will now direct you to a scheduling link.",
	},
	{
		Label:   "Send Info",
		Message: "Information will be sent to your email. Check your inbox soon!",
	},
	{
		Label:   "Get Retention Info",
		URL:     "https://example.com/retention-info",
		Message: "Accessing client retention strategies. We will now direct you to relevant resources.",
	},
	{
		Label:   "Learn Patient Experience",
		URL:     "https://example.com/patient-experience",
		Message: "Learning how AI enhances patient experience. Redirecting to our insights page.",
	},
	{
		Label:   "Calculate Time Savings",
		URL:     "https://example.com/time-savings-calculator",
		Message: "Calculating potential time savings. We will now direct you to our efficiency calculator.",
	},
	{
		Label:   "Learn Integration",
		URL:     "https://example.com/integration-info",
		Message: "Learning about seamless integration. Redirecting to our integration details.",
	},
	{
		Label:   "Download Whitepaper",
		URL:     "https://example.com/ai-whitepaper.pdf",
		Message: "Downloading our AI whitepaper. Your download will start soon.",
	},
	{
		Label:   "Explore Use Cases",
		URL:     "https://example.com/use-cases",
		Message: "Exploring common AI use cases. Redirecting to our use cases page.",
	},
}
