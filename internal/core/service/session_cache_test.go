package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

func settledCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func noServer(context.Context) (*domain.Session, error)    { return nil, nil }
func noClient(context.Context) (*domain.Identity, error)   { return nil, nil }
func noRoles(context.Context, string) (domain.Role, error) { return "", domain.ErrProfileNotFound }

func TestSessionCache_ServerLookupWins(t *testing.T) {
	identity := &domain.Identity{ID: "user-1", Email: "u@example.com"}
	server := func(context.Context) (*domain.Session, error) {
		return &domain.Session{Identity: identity, Role: domain.RoleAdmin}, nil
	}
	clientCalled := false
	client := func(context.Context) (*domain.Identity, error) {
		clientCalled = true
		return nil, nil
	}

	cache := NewSessionCache(server, client, noRoles, NewAuthEventHub(), zerolog.Nop())
	cache.Start(context.Background())
	defer cache.Close()

	snap := cache.WaitSettled(settledCtx(t))
	if snap.Loading {
		t.Fatalf("cache did not settle")
	}
	if snap.Identity == nil || snap.Identity.ID != "user-1" {
		t.Fatalf("unexpected identity: %+v", snap.Identity)
	}
	if snap.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", snap.Role)
	}
	if clientCalled {
		t.Fatalf("client fallback ran despite server session")
	}
}

func TestSessionCache_FallsBackToProvider(t *testing.T) {
	server := func(context.Context) (*domain.Session, error) {
		return nil, context.DeadlineExceeded
	}
	client := func(context.Context) (*domain.Identity, error) {
		return &domain.Identity{ID: "user-2"}, nil
	}
	roles := func(_ context.Context, id string) (domain.Role, error) {
		if id != "user-2" {
			t.Fatalf("role lookup for wrong identity: %s", id)
		}
		return domain.RoleStudent, nil
	}

	cache := NewSessionCache(server, client, roles, NewAuthEventHub(), zerolog.Nop())
	cache.Start(context.Background())
	defer cache.Close()

	snap := cache.WaitSettled(settledCtx(t))
	if snap.Identity == nil || snap.Identity.ID != "user-2" {
		t.Fatalf("unexpected identity: %+v", snap.Identity)
	}
	if snap.Role != domain.RoleStudent {
		t.Fatalf("unexpected role: %s", snap.Role)
	}
}

func TestSessionCache_BothPathsFailResolvesToAnonymous(t *testing.T) {
	server := func(context.Context) (*domain.Session, error) {
		return nil, context.DeadlineExceeded
	}
	client := func(context.Context) (*domain.Identity, error) {
		return nil, context.DeadlineExceeded
	}

	cache := NewSessionCache(server, client, noRoles, NewAuthEventHub(), zerolog.Nop())
	cache.Start(context.Background())
	defer cache.Close()

	snap := cache.WaitSettled(settledCtx(t))
	if snap.Loading {
		t.Fatalf("cache did not settle")
	}
	if snap.Identity != nil {
		t.Fatalf("expected anonymous, got %+v", snap.Identity)
	}
}

func TestSessionCache_SignOutClearsBeforeReresolution(t *testing.T) {
	identity := &domain.Identity{ID: "user-3"}

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	server := func(context.Context) (*domain.Session, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n > 1 {
			// Second resolution (triggered by the sign-out event) hangs
			// until the test releases it.
			<-release
			return nil, nil
		}
		return &domain.Session{Identity: identity, Role: domain.RoleAdmin}, nil
	}

	hub := NewAuthEventHub()
	cache := NewSessionCache(server, noClient, noRoles, hub, zerolog.Nop())
	cache.Start(context.Background())
	defer cache.Close()
	defer close(release)

	snap := cache.WaitSettled(settledCtx(t))
	if snap.Identity == nil {
		t.Fatalf("precondition: expected signed-in state")
	}

	hub.Publish(domain.AuthEvent{Kind: domain.AuthSignedOut})

	// The stale identity must become unobservable even while the follow-up
	// resolution is still in flight.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if snap := cache.Snapshot(); snap.Identity == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("stale identity still observable after sign-out event")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionCache_VisibilityChangeTriggersRefresh(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := func(context.Context) (*domain.Session, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return nil, nil
		}
		return &domain.Session{Identity: &domain.Identity{ID: "late"}, Role: domain.RoleInstructor}, nil
	}

	cache := NewSessionCache(server, noClient, noRoles, NewAuthEventHub(), zerolog.Nop())
	cache.Start(context.Background())
	defer cache.Close()

	snap := cache.WaitSettled(settledCtx(t))
	if snap.Identity != nil {
		t.Fatalf("precondition: expected anonymous after first resolution")
	}

	cache.NotifyVisible()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if snap := cache.Snapshot(); snap.Identity != nil && !snap.Loading {
			if snap.Identity.ID != "late" || snap.Role != domain.RoleInstructor {
				t.Fatalf("unexpected resolution: %+v role=%s", snap.Identity, snap.Role)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("visibility change did not trigger re-resolution")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionCache_StaleCommitDiscarded(t *testing.T) {
	cache := NewSessionCache(noServer, noClient, noRoles, NewAuthEventHub(), zerolog.Nop())

	gen1 := cache.bumpGeneration()
	gen2 := cache.bumpGeneration()

	// A resolution started before the newest refresh must not win.
	cache.commit(gen1, &domain.Identity{ID: "stale"}, domain.RoleAdmin)
	if snap := cache.Snapshot(); snap.Identity != nil || !snap.Loading {
		t.Fatalf("stale commit applied: %+v", snap)
	}

	cache.commit(gen2, &domain.Identity{ID: "fresh"}, domain.RoleStudent)
	snap := cache.Snapshot()
	if snap.Identity == nil || snap.Identity.ID != "fresh" || snap.Loading {
		t.Fatalf("latest commit not applied: %+v", snap)
	}
}
