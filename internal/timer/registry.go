// Package timer hands out cancelable handles for delayed UI effects.
//
// The registry never sleeps or spawns goroutines. Callers schedule the actual
// delay themselves (bubbletea's tea.Tick in the TUI) and pass the handle back
// to Fire when it elapses; canceled handles report false and must be dropped.
package timer

import "time"

// Scope groups handles that are canceled together
type Scope string

// Handle identifies one scheduled effect
type Handle struct {
	ID    uint64
	Scope Scope
}

// Zero reports whether h was never armed
func (h Handle) Zero() bool {
	return h.ID == 0
}

// Request asks the caller to deliver Handle after Delay
type Request struct {
	Handle Handle
	Delay  time.Duration
}

// Registry tracks live handles. It is not safe for concurrent use; it belongs
// to a single event loop.
type Registry struct {
	next uint64
	live map[uint64]Scope
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{live: make(map[uint64]Scope)}
}

// Arm returns a new live handle in scope
func (r *Registry) Arm(scope Scope) Handle {
	r.next++
	r.live[r.next] = scope
	return Handle{ID: r.next, Scope: scope}
}

// Schedule arms a handle and pairs it with a delay
func (r *Registry) Schedule(scope Scope, delay time.Duration) Request {
	return Request{Handle: r.Arm(scope), Delay: delay}
}

// Live reports whether h has neither fired nor been canceled
func (r *Registry) Live(h Handle) bool {
	_, ok := r.live[h.ID]
	return ok
}

// Fire consumes h. It returns false when h was canceled or already fired.
func (r *Registry) Fire(h Handle) bool {
	if _, ok := r.live[h.ID]; !ok {
		return false
	}
	delete(r.live, h.ID)
	return true
}

// Cancel invalidates h
func (r *Registry) Cancel(h Handle) {
	delete(r.live, h.ID)
}

// CancelScope invalidates every live handle in scope
func (r *Registry) CancelScope(scope Scope) {
	for id, s := range r.live {
		if s == scope {
			delete(r.live, id)
		}
	}
}

// CancelAll invalidates every live handle
func (r *Registry) CancelAll() {
	for id := range r.live {
		delete(r.live, id)
	}
}

// Pending returns the number of live handles in scope, or in all scopes when
// scope is empty
func (r *Registry) Pending(scope Scope) int {
	if scope == "" {
		return len(r.live)
	}
	n := 0
	for _, s := range r.live {
		if s == scope {
			n++
		}
	}
	return n
}
