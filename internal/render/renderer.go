package render

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

const defaultCTALabel = "Learn More"

// Renderer builds plans from parsed responses. Every piece of backend- or
// user-sourced text crosses the sanitizing boundary here before it can reach
// the document; the backend is a remote AI model and its output is untrusted.
type Renderer struct {
	sanitizer *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{sanitizer: bluemonday.StrictPolicy()}
}

// Sanitize strips all markup from untrusted display text.
func (r *Renderer) Sanitize(raw string) string {
	return r.sanitizer.Sanitize(raw)
}

// PlanFor maps a parsed backend response to its interaction template.
func (r *Renderer) PlanFor(resp Response) Plan {
	const title = "Your AI Journey Continues..."

	switch v := resp.(type) {
	case Question:
		actions := make([]Action, 0, len(v.Options))
		for i, opt := range v.Options {
			actions = append(actions, Action{
				ID:    fmt.Sprintf("option-%d", i),
				Kind:  ActionSelectOption,
				Label: r.Sanitize(opt),
				Value: opt,
			})
		}
		return Plan{Title: title, Body: r.Sanitize(v.Body), Actions: actions}
	case InputRequired:
		return Plan{
			Title: title,
			Body:  r.Sanitize(v.Body),
			Inputs: []Input{{
				ID:          "user-free-input",
				Kind:        InputTextarea,
				Placeholder: "Type your specific details here (e.g., 'Our main challenge is integrating old CRM data').",
				Required:    true,
			}},
			Actions: []Action{{
				ID:    "submit-response",
				Kind:  ActionSubmitText,
				Label: "Submit Details",
			}},
		}
	case Offer:
		return r.ctaPlan(title, v.Body, v.CTA)
	case Closing:
		return r.ctaPlan(title, v.Body, v.CTA)
	default:
		// Unreachable for the closed set; Parse rejects everything else.
		return Plan{Title: title}
	}
}

func (r *Renderer) ctaPlan(title, body, cta string) Plan {
	label := r.Sanitize(cta)
	if label == "" {
		label = defaultCTALabel
	}
	return Plan{
		Title: title,
		Body:  r.Sanitize(body),
		Actions: []Action{{
			ID:    "call-to-action",
			Kind:  ActionResolveCTA,
			Label: label,
			Value: cta,
		}},
	}
}

// EmailCapturePlan is the step-0 surface shown on connect and after reset.
func (r *Renderer) EmailCapturePlan() Plan {
	return Plan{
		Title: "Discover Your Sales Potential",
		Body:  "Ready to transform your business? Our AI will guide you to unprecedented growth.",
		Inputs: []Input{{
			ID:          "user-email",
			Kind:        InputEmail,
			Placeholder: "Enter your email to begin",
			Required:    true,
		}},
		Actions: []Action{{
			ID:    "start-funnel",
			Kind:  ActionSubmitEmail,
			Label: "Start Your AI Journey",
		}},
	}
}

// ProfileFormPlan is the step-1 surface collecting company, role, and
// primary interest.
func (r *Renderer) ProfileFormPlan(roles, interests []string) Plan {
	return Plan{
		Title: "Tell Us More About Your Needs",
		Body:  "A few quick details help us tailor your AI journey.",
		Inputs: []Input{
			{
				ID:          "company-name",
				Kind:        InputText,
				Label:       "Company Name (Optional)",
				Placeholder: "E.g., Beauty Innovations Inc.",
			},
			{
				ID:       "user-role",
				Kind:     InputSelect,
				Label:    "Your Role",
				Options:  roles,
				Required: true,
			},
			{
				ID:       "primary-interest",
				Kind:     InputSelect,
				Label:    "Primary Interest",
				Options:  interests,
				Required: true,
			},
		},
		Actions: []Action{{
			ID:    "submit-details",
			Kind:  ActionSubmitProfile,
			Label: "Continue to AI Guide",
		}},
	}
}
