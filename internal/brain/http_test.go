package brain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPAdapterSend(t *testing.T) {
	var got FunnelRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/advansells-funnel" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(FunnelResponse{
			Text:    "Pick one.",
			Type:    "question",
			Options: []string{"A", "B"},
		})
	}))
	defer srv.Close()

	adapter := NewHTTPAdapter(srv.URL+"/", time.Second)
	resp, err := adapter.Send(context.Background(), FunnelRequest{
		Email:       "lead@example.com",
		Action:      ActionUserResponse,
		CurrentStep: 3,
		ChatHistory: []HistoryTurn{{Role: "user", Parts: []TurnPart{{Text: "hi"}}}},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.Type != "question" || len(resp.Options) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.Email != "lead@example.com" || got.Action != ActionUserResponse || got.CurrentStep != 3 {
		t.Fatalf("request not forwarded verbatim: %+v", got)
	}
	if len(got.ChatHistory) != 1 || got.ChatHistory[0].Parts[0].Text != "hi" {
		t.Fatalf("history not forwarded: %+v", got.ChatHistory)
	}
}

func TestHTTPAdapterBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "model unavailable"})
	}))
	defer srv.Close()

	adapter := NewHTTPAdapter(srv.URL, time.Second)
	_, err := adapter.Send(context.Background(), FunnelRequest{})

	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.StatusCode != http.StatusBadGateway || backendErr.Message != "model unavailable" {
		t.Fatalf("unexpected backend error: %+v", backendErr)
	}
}

func TestHTTPAdapterBackendErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	adapter := NewHTTPAdapter(srv.URL, time.Second)
	_, err := adapter.Send(context.Background(), FunnelRequest{})

	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.Message != "" {
		t.Fatalf("message should be empty for unparseable bodies, got %q", backendErr.Message)
	}
}

func TestHTTPAdapterTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	adapter := NewHTTPAdapter(srv.URL, time.Second)
	_, err := adapter.Send(context.Background(), FunnelRequest{})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestHTTPAdapterMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	adapter := NewHTTPAdapter(srv.URL, time.Second)
	_, err := adapter.Send(context.Background(), FunnelRequest{})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError for undecodable body, got %v", err)
	}
}

func TestHTTPAdapterResetSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reset-session" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "lead@example.com" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Session for lead@example.com has been reset."})
	}))
	defer srv.Close()

	adapter := NewHTTPAdapter(srv.URL, time.Second)
	msg, err := adapter.ResetSession(context.Background(), "lead@example.com")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if msg != "Session for lead@example.com has been reset." {
		t.Fatalf("message = %q", msg)
	}
}

func TestNewAdapterModes(t *testing.T) {
	if _, err := NewAdapter(Config{Mode: "http"}); err == nil {
		t.Fatalf("http mode without base URL must fail")
	}
	if _, err := NewAdapter(Config{Mode: "teleport"}); err == nil {
		t.Fatalf("unknown mode must fail")
	}

	a, err := NewAdapter(Config{Mode: "auto"})
	if err != nil {
		t.Fatalf("auto without URL: %v", err)
	}
	if _, ok := a.(*MockAdapter); !ok {
		t.Fatalf("auto without URL should pick the mock, got %T", a)
	}

	a, err = NewAdapter(Config{Mode: "auto", BaseURL: "http://localhost:9"})
	if err != nil {
		t.Fatalf("auto with URL: %v", err)
	}
	if _, ok := a.(*HTTPAdapter); !ok {
		t.Fatalf("auto with URL should pick http, got %T", a)
	}
}
