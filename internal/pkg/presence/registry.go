package presence

import "sync"

// Event is an application-level event pushed over a live channel.
type Event struct {
	Name string
	Data interface{}
}

// Channel is the delivery handle registered for a connected user.
type Channel chan Event

// Registry maps user identities to their active delivery channel. It is
// in-memory only: entries exist while a connection is open and the whole
// map is rebuilt from zero on process restart. Each user holds at most one
// entry; a second connection's Announce overwrites the first, so with
// multiple simultaneous tabs only the latest one stays reachable and any
// disconnect drops the slot. Known limitation.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Channel
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Channel),
	}
}

// Announce sets or overwrites the single entry for userID.
func (r *Registry) Announce(userID string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[userID] = ch
}

// Remove deletes the entry whose channel equals ch. Linear scan; fine at
// the registry's intended scale. A handle that was already overwritten by
// a reconnection removes nothing.
func (r *Registry) Remove(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, entry := range r.entries {
		if entry == ch {
			delete(r.entries, userID)
			return
		}
	}
}

// Lookup returns the live channel for userID, if any.
func (r *Registry) Lookup(userID string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.entries[userID]
	return ch, ok
}

// Len returns the number of connected users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
