package protocol

import (
	"errors"
	"testing"
)

func TestParseClientMessage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want MessageType
	}{
		{"submit email", `{"type":"submit_email","session_id":"s1","email":"a@b.co"}`, TypeSubmitEmail},
		{"submit profile", `{"type":"submit_profile","session_id":"s1","user_role":"Owner/CEO","primary_interest":"Grow Sales"}`, TypeSubmitProfile},
		{"select option", `{"type":"select_option","session_id":"s1","action_id":"option-1","value":"B"}`, TypeSelectOption},
		{"free text", `{"type":"submit_free_text","session_id":"s1","text":"hello"}`, TypeSubmitFreeText},
		{"continue", `{"type":"continue_funnel","session_id":"s1"}`, TypeContinueFunnel},
		{"resolve cta", `{"type":"resolve_cta","session_id":"s1","cta":"Book a Free Demo"}`, TypeResolveCTA},
		{"dismiss notice", `{"type":"dismiss_notice","session_id":"s1"}`, TypeDismissNotice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := ParseClientMessage([]byte(tc.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			var got MessageType
			switch m := msg.(type) {
			case SubmitEmail:
				got = m.Type
			case SubmitProfile:
				got = m.Type
			case SelectOption:
				got = m.Type
			case SubmitFreeText:
				got = m.Type
			case ContinueFunnel:
				got = m.Type
			case ResolveCTA:
				got = m.Type
			case DismissNotice:
				got = m.Type
			default:
				t.Fatalf("unexpected message type %T", msg)
			}
			if got != tc.want {
				t.Fatalf("type = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseClientMessageRejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{oops`},
		{"missing session id", `{"type":"submit_email","email":"a@b.co"}`},
		{"select without value", `{"type":"select_option","session_id":"s1","action_id":"option-0"}`},
		{"dismiss without session", `{"type":"dismiss_notice"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseClientMessage([]byte(tc.raw)); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestParseClientMessageUnsupportedType(t *testing.T) {
	_, err := ParseClientMessage([]byte(`{"type":"render_plan","session_id":"s1"}`))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("server-bound types must be rejected, got %v", err)
	}
	_, err = ParseClientMessage([]byte(`{"type":"telemetry","session_id":"s1"}`))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("unknown types must be rejected, got %v", err)
	}
}
