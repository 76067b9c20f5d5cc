package service

import (
	"sync"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

const eventBuffer = 16

// AuthEventHub fans auth-state-change notifications out to subscribers.
// Publishing never blocks: a subscriber that falls behind loses events,
// which is acceptable because every event triggers a full re-resolution
// rather than carrying incremental state.
type AuthEventHub struct {
	mu   sync.Mutex
	subs map[int]chan domain.AuthEvent
	next int
}

func NewAuthEventHub() *AuthEventHub {
	return &AuthEventHub{subs: make(map[int]chan domain.AuthEvent)}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called to release the subscription; the channel is closed afterwards.
func (h *AuthEventHub) Subscribe() (<-chan domain.AuthEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan domain.AuthEvent, eventBuffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber.
func (h *AuthEventHub) Publish(ev domain.AuthEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
