package auth

import (
	"testing"
	"time"
)

func newClockedStore(idle, warning time.Duration) (*SessionStore, *time.Time) {
	s := NewSessionStore(idle, warning)
	now := time.Now()
	s.now = func() time.Time { return now }
	return s, &now
}

func TestSessionStore_TouchSlidesExpiry(t *testing.T) {
	s, now := newClockedStore(5*time.Minute, time.Minute)
	sess := s.Create("user-1")

	*now = now.Add(4 * time.Minute)
	if !s.Touch(sess.Token) {
		t.Fatal("session should still be alive at 4m idle")
	}

	// Another 4 minutes after the touch: still inside the window.
	*now = now.Add(4 * time.Minute)
	if _, ok := s.Get(sess.Token); !ok {
		t.Fatal("touch should have restarted the idle clock")
	}
}

func TestSessionStore_IdleExpiry(t *testing.T) {
	s, now := newClockedStore(5*time.Minute, time.Minute)
	sess := s.Create("user-1")

	*now = now.Add(5 * time.Minute)
	if _, ok := s.Get(sess.Token); ok {
		t.Fatal("session should expire after the idle window")
	}
	if s.Touch(sess.Token) {
		t.Fatal("expired session must not be touchable")
	}
}

func TestSessionStore_WarningWindow(t *testing.T) {
	s, now := newClockedStore(5*time.Minute, time.Minute)
	sess := s.Create("user-1")

	st, ok := s.Status(sess.Token)
	if !ok || st.Warning {
		t.Fatalf("fresh session should not warn, got %+v ok=%v", st, ok)
	}

	*now = now.Add(4*time.Minute + 30*time.Second)
	st, ok = s.Status(sess.Token)
	if !ok || !st.Warning {
		t.Fatalf("30s before logout should warn, got %+v ok=%v", st, ok)
	}
	if st.RemainingIdle > time.Minute {
		t.Errorf("remaining idle %v should be under a minute", st.RemainingIdle)
	}
}

func TestSessionStore_DeleteForUser(t *testing.T) {
	s, _ := newClockedStore(5*time.Minute, time.Minute)
	a := s.Create("user-1")
	b := s.Create("user-1")
	c := s.Create("user-2")

	s.DeleteForUser("user-1")
	if _, ok := s.Get(a.Token); ok {
		t.Error("user-1 session a should be gone")
	}
	if _, ok := s.Get(b.Token); ok {
		t.Error("user-1 session b should be gone")
	}
	if _, ok := s.Get(c.Token); !ok {
		t.Error("user-2 session should survive")
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	s, now := newClockedStore(5*time.Minute, time.Minute)
	s.Create("user-1")
	s.Create("user-2")

	*now = now.Add(10 * time.Minute)
	fresh := s.Create("user-3")

	if n := s.Sweep(); n != 2 {
		t.Fatalf("swept %d sessions, want 2", n)
	}
	if _, ok := s.Get(fresh.Token); !ok {
		t.Error("fresh session should survive the sweep")
	}
}
