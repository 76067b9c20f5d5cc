package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// ServerLookup is the authoritative, cookie-based session resolution path.
// It returns (nil, nil) when no server session exists.
type ServerLookup func(ctx context.Context) (*domain.Session, error)

// ClientLookup resolves the identity directly against the identity
// provider, bypassing the server session endpoint.
type ClientLookup func(ctx context.Context) (*domain.Identity, error)

// RoleLookup resolves the role for an identity resolved via ClientLookup.
type RoleLookup func(ctx context.Context, identityID string) (domain.Role, error)

// SessionSnapshot is what consumers observe: either loading=true, or a
// terminal (identity, role) pair.
type SessionSnapshot struct {
	Identity *domain.Identity
	Role     domain.Role
	Loading  bool
}

// SessionCache maintains a single shared view of the current identity for
// one client lifecycle. It is explicitly constructed and torn down (no
// package-level state) and re-resolves on start, on every auth-state-change
// event, and on hidden-to-visible transitions.
//
// Overlapping resolutions are serialized with a generation counter: only
// the result of the newest refresh is committed, so a slow early lookup can
// never overwrite a later one.
type SessionCache struct {
	server ServerLookup
	client ClientLookup
	roles  RoleLookup
	events *AuthEventHub
	log    zerolog.Logger

	mu       sync.Mutex
	gen      uint64
	identity *domain.Identity
	role     domain.Role
	loading  bool

	visible chan struct{}
	done    chan struct{}
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

func NewSessionCache(server ServerLookup, client ClientLookup, roles RoleLookup, events *AuthEventHub, log zerolog.Logger) *SessionCache {
	return &SessionCache{
		server:  server,
		client:  client,
		roles:   roles,
		events:  events,
		log:     log,
		loading: true,
		visible: make(chan struct{}, 1),
	}
}

// Start kicks off the initial resolution and the event loop. It must be
// called exactly once; Close releases everything Start acquired.
func (c *SessionCache) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.stop = cancel
	c.done = make(chan struct{})

	events, unsubscribe := c.events.Subscribe()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer unsubscribe()
		defer close(c.done)

		c.refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Kind == domain.AuthSignedOut {
					// Clear synchronously so no reader can observe the
					// previous identity between the event and the refresh.
					c.commit(c.bumpGeneration(), nil, "")
				}
				c.refresh(ctx)
			case <-c.visible:
				c.refresh(ctx)
			}
		}
	}()
}

// Close stops the event loop and waits for in-flight resolutions to settle.
func (c *SessionCache) Close() {
	if c.stop != nil {
		c.stop()
	}
	c.wg.Wait()
}

// NotifyVisible signals a hidden-to-visible transition. Coalesced: repeated
// signals while a refresh is pending collapse into one.
func (c *SessionCache) NotifyVisible() {
	select {
	case c.visible <- struct{}{}:
	default:
	}
}

// Snapshot returns the current cache state.
func (c *SessionCache) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionSnapshot{Identity: c.identity, Role: c.role, Loading: c.loading}
}

// WaitSettled blocks until the cache leaves the loading state or the
// context expires. Intended for tests and for callers that need a terminal
// snapshot.
func (c *SessionCache) WaitSettled(ctx context.Context) SessionSnapshot {
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		snap := c.Snapshot()
		if !snap.Loading {
			return snap
		}
		select {
		case <-ctx.Done():
			return snap
		case <-tick.C:
		}
	}
}

func (c *SessionCache) bumpGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.loading = true
	return c.gen
}

// refresh runs one full resolution pass: server-trusted lookup first,
// direct provider check second, nil when both fail. Errors are swallowed;
// the cache only ever settles to a snapshot.
func (c *SessionCache) refresh(ctx context.Context) {
	gen := c.bumpGeneration()

	sess, err := c.server(ctx)
	if err == nil && sess != nil && sess.Identity != nil {
		c.commit(gen, sess.Identity, sess.Role)
		return
	}
	if err != nil {
		c.log.Debug().Err(err).Msg("server session lookup failed, falling back to provider")
	}

	identity, err := c.client(ctx)
	if err != nil || identity == nil {
		if err != nil {
			c.log.Debug().Err(err).Msg("provider identity check failed, resolving to anonymous")
		}
		c.commit(gen, nil, "")
		return
	}

	role, err := c.roles(ctx, identity.ID)
	if err != nil {
		// Fail closed: keep the identity but no role, so role gates deny.
		c.log.Debug().Err(err).Str("identity_id", identity.ID).Msg("role lookup failed")
		role = ""
	}
	c.commit(gen, identity, role)
}

// commit installs a resolution result unless a newer refresh has started.
func (c *SessionCache) commit(gen uint64, identity *domain.Identity, role domain.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.identity = identity
	c.role = role
	c.loading = false
}
