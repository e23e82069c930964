package policy

import (
	"strings"
	"testing"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe+leads@example.com", "  padded@example.org  "}
	for _, in := range valid {
		if !ValidEmail(in) {
			t.Fatalf("ValidEmail(%q) = false, want true", in)
		}
	}

	invalid := []string{"", "plain", "no-at.example.com", "no-dot@example", "two@@example.com", "sp ace@example.com"}
	for _, in := range invalid {
		if ValidEmail(in) {
			t.Fatalf("ValidEmail(%q) = true, want false", in)
		}
	}
}

func TestRedactPIIMasksEmailPhoneCard(t *testing.T) {
	in := "reach me at jane@example.com or +1 (555) 123-4567, card 4111 1111 1111 1111"
	out, changed := RedactPII(in)
	if !changed {
		t.Fatalf("RedactPII() changed = false, want true")
	}
	for _, leak := range []string{"jane@example.com", "4111", "555"} {
		if strings.Contains(out, leak) {
			t.Fatalf("RedactPII() output still contains %q: %s", leak, out)
		}
	}
}

func TestRedactPIINoopOnCleanText(t *testing.T) {
	in := "I want to grow sales for my boutique"
	out, changed := RedactPII(in)
	if changed || out != in {
		t.Fatalf("RedactPII(%q) = (%q, %v), want unchanged", in, out, changed)
	}
}
