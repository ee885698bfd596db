package memory

import (
	"context"
	"testing"
	"time"

	"github.com/campusconnect/portal/internal/core/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := &domain.Session{
		Token:     "tok-1",
		User:      domain.User{ID: "u1", Role: domain.RoleStudent},
		CreatedAt: time.Now(),
	}
	if err := store.Write(ctx, "k1", sess); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := store.Read(ctx, "k1")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !got.Authenticated() || got.User.ID != "u1" {
		t.Errorf("got %+v", got)
	}

	if err := store.Clear(ctx, "k1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = store.Read(ctx, "k1")
	if err != nil || got != nil {
		t.Errorf("after clear: %v %+v", err, got)
	}
}

func TestSessionStoreCorruptDataFailsClosed(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	store.Write(ctx, "k1", &domain.Session{Token: "tok-1"})
	store.Corrupt("k1")

	got, err := store.Read(ctx, "k1")
	if err != nil {
		t.Fatalf("corrupt read should not error: %v", err)
	}
	if got != nil {
		t.Errorf("corrupt read should look unauthenticated, got %+v", got)
	}
}

func TestPreferencesSurviveSessionClear(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	store.Write(ctx, "k1", &domain.Session{Token: "tok-1"})
	store.WritePreference(ctx, "remember:k1", "ada@uni.edu")
	store.Clear(ctx, "k1")

	v, err := store.ReadPreference(ctx, "remember:k1")
	if err != nil || v != "ada@uni.edu" {
		t.Errorf("got %q, %v", v, err)
	}
}

func TestRateLimiterWindowAnchoredAtFirstRequest(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl.SetClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := rl.Allow(ctx, "k1")
		if err != nil || !d.Allowed {
			t.Fatalf("request %d: %+v %v", i, d, err)
		}
	}

	d, _ := rl.Allow(ctx, "k1")
	if d.Allowed {
		t.Fatal("4th request within the window should be blocked")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("retryAfter = %v", d.RetryAfter)
	}

	// Still blocked just before the window ends.
	now = now.Add(59 * time.Second)
	if d, _ := rl.Allow(ctx, "k1"); d.Allowed {
		t.Error("request at 59s should still be blocked")
	}

	// Window measured from the first request, so 60s later it reopens.
	now = now.Add(time.Second)
	if d, _ := rl.Allow(ctx, "k1"); !d.Allowed {
		t.Error("request after the window should be allowed again")
	}
}

func TestRateLimiterTracksKeysIndependently(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx := context.Background()

	if d, _ := rl.Allow(ctx, "a"); !d.Allowed {
		t.Fatal("first request for a should pass")
	}
	if d, _ := rl.Allow(ctx, "b"); !d.Allowed {
		t.Error("b should have its own window")
	}
	if d, _ := rl.Allow(ctx, "a"); d.Allowed {
		t.Error("a should be exhausted")
	}
}
