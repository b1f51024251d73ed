// Package identity supplies the current user identifier, or signals that
// nobody is logged in.
package identity

import (
	"context"
	"errors"
	"sync"
)

// ErrUnauthenticated is returned by Resolve when the provider reports no user.
var ErrUnauthenticated = errors.New("not logged in")

// State is one identity observation.
type State struct {
	UserID        string
	Authenticated bool
}

// Provider streams identity states. The channel yields the current state
// immediately, then every change, and is closed once ctx is done.
type Provider interface {
	Watch(ctx context.Context) <-chan State
}

// Resolve takes the provider's current state and returns its user ID.
func Resolve(ctx context.Context, p Provider) (string, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	select {
	case st, ok := <-p.Watch(watchCtx):
		if !ok || !st.Authenticated || st.UserID == "" {
			return "", ErrUnauthenticated
		}
		return st.UserID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Static always reports the same user. An empty ID reports unauthenticated.
type Static struct {
	userID string
}

func NewStatic(userID string) *Static {
	return &Static{userID: userID}
}

func (s *Static) Watch(ctx context.Context) <-chan State {
	ch := make(chan State, 1)
	ch <- State{UserID: s.userID, Authenticated: s.userID != ""}
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}

// hub fans state changes out to watchers. Each watcher holds only the
// latest state; a slow reader sees the newest value, never a backlog.
type hub struct {
	mu       sync.Mutex
	watchers map[chan State]struct{}
}

func (h *hub) subscribe(ctx context.Context, initial State) <-chan State {
	ch := make(chan State, 1)
	ch <- initial

	h.mu.Lock()
	if h.watchers == nil {
		h.watchers = make(map[chan State]struct{})
	}
	h.watchers[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.watchers, ch)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

func (h *hub) publish(st State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
