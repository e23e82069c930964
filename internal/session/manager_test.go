package session

import (
	"errors"
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager(time.Minute)
	created := m.Create()
	if created.ID == "" {
		t.Fatalf("session id missing")
	}
	if created.Status != StatusActive {
		t.Fatalf("status = %s", created.Status)
	}

	got, err := m.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("id mismatch")
	}

	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBindEmailAndEndByEmail(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create()

	if err := m.BindEmail(s.ID, "lead@example.com"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	ended, err := m.EndByEmail("lead@example.com")
	if err != nil {
		t.Fatalf("end by email: %v", err)
	}
	if ended.ID != s.ID || ended.Status != StatusEnded {
		t.Fatalf("unexpected session: %+v", ended)
	}

	// Mapping is dropped when the session ends.
	if _, err := m.EndByEmail("lead@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after end, got %v", err)
	}
}

func TestBindEmailReplacesOldMapping(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create()

	if err := m.BindEmail(s.ID, "first@example.com"); err != nil {
		t.Fatalf("bind first: %v", err)
	}
	if err := m.BindEmail(s.ID, "second@example.com"); err != nil {
		t.Fatalf("bind second: %v", err)
	}

	if _, err := m.EndByEmail("first@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale mapping survived rebind")
	}
	if _, err := m.EndByEmail("second@example.com"); err != nil {
		t.Fatalf("end by rebound email: %v", err)
	}
}

func TestActiveCount(t *testing.T) {
	m := NewManager(time.Minute)
	a := m.Create()
	m.Create()
	if got := m.ActiveCount(); got != 2 {
		t.Fatalf("active = %d", got)
	}
	if _, err := m.End(a.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if got := m.ActiveCount(); got != 1 {
		t.Fatalf("active after end = %d", got)
	}
}

func TestExpireInactive(t *testing.T) {
	m := NewManager(5 * time.Second)
	s := m.Create()
	if err := m.BindEmail(s.ID, "lead@example.com"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	var expired []*Session
	m.SetExpireHook(func(sess *Session) {
		expired = append(expired, sess)
	})

	// Backdate the last activity past the timeout.
	m.mu.Lock()
	m.sessions[s.ID].LastActivityAt = time.Now().UTC().Add(-time.Minute)
	m.mu.Unlock()

	m.expireInactive()

	if len(expired) != 1 || expired[0].ID != s.ID {
		t.Fatalf("expire hook not fired: %v", expired)
	}
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusEnded {
		t.Fatalf("status = %s", got.Status)
	}
	if _, err := m.EndByEmail("lead@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("email mapping survived expiry")
	}
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	m := NewManager(5 * time.Second)
	s := m.Create()

	m.mu.Lock()
	m.sessions[s.ID].LastActivityAt = time.Now().UTC().Add(-time.Minute)
	m.mu.Unlock()

	if err := m.Touch(s.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	m.expireInactive()

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusActive {
		t.Fatalf("touched session expired")
	}
}
