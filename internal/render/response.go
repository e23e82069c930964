// Package render turns tagged backend responses and internal step
// transitions into declarative render plans for the presentation layer.
package render

import (
	"fmt"
	"strings"

	"github.com/Echolyx123/advansells-frontend/internal/brain"
)

// Response is the closed set of renderable backend replies. Anything the
// parser cannot place in this set is unrenderable and forces a reset.
type Response interface {
	// Text returns the display text common to every variant.
	Text() string
	isResponse()
}

type Question struct {
	Body    string
	Options []string
}

type InputRequired struct {
	Body string
}

type Offer struct {
	Body string
	CTA  string
}

type Closing struct {
	Body string
	CTA  string
}

func (q Question) Text() string      { return q.Body }
func (i InputRequired) Text() string { return i.Body }
func (o Offer) Text() string         { return o.Body }
func (c Closing) Text() string       { return c.Body }

func (Question) isResponse()      {}
func (InputRequired) isResponse() {}
func (Offer) isResponse()         {}
func (Closing) isResponse()       {}

// MalformedResponseError marks a recognized response that is missing required
// fields (no text, or a question without options).
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed backend response: %s", e.Reason)
}

// UnrecognizedTypeError marks a response tag outside the closed set.
type UnrecognizedTypeError struct {
	Type string
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("unrecognized backend response type %q", e.Type)
}

// Parse validates a raw tagged response into the closed Response set.
// A response without text is malformed regardless of its tag.
func Parse(raw brain.FunnelResponse) (Response, error) {
	text := strings.TrimSpace(raw.Text)
	if text == "" {
		return nil, &MalformedResponseError{Reason: "missing text"}
	}

	switch raw.Type {
	case "question":
		options := make([]string, 0, len(raw.Options))
		for _, opt := range raw.Options {
			if strings.TrimSpace(opt) != "" {
				options = append(options, opt)
			}
		}
		if len(options) == 0 {
			return nil, &MalformedResponseError{Reason: "question with no options"}
		}
		return Question{Body: text, Options: options}, nil
	case "input_required":
		return InputRequired{Body: text}, nil
	case "offer":
		return Offer{Body: text, CTA: strings.TrimSpace(raw.CTA)}, nil
	case "closing":
		return Closing{Body: text, CTA: strings.TrimSpace(raw.CTA)}, nil
	default:
		return nil, &UnrecognizedTypeError{Type: raw.Type}
	}
}
