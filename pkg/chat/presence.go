package chat

import "sync"

// Tracker maintains the typing state of a room's participants. Every
// presence-sync event replaces the state wholesale, so the tracker's contents
// are a pure function of the latest snapshot. The one exception is a message
// insert, which clears its sender's typing flag: a sent message is stronger
// evidence than any typing broadcast. Typing state is eventually consistent.
// A stopped-typing sync and the insert that supersedes it may arrive in
// either order and both are tolerated.
type Tracker struct {
	mu      sync.RWMutex
	entries []PresenceEntry
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Sync replaces the tracked state with a full snapshot.
func (t *Tracker) Sync(snapshot []PresenceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make([]PresenceEntry, len(snapshot))
	copy(t.entries, snapshot)
}

// ClearTyping marks a participant as not typing, regardless of prior state.
func (t *Tracker) ClearTyping(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].Email == email {
			t.entries[i].IsTyping = false
		}
	}
}

// Typing returns the participants currently typing, excluding self.
func (t *Tracker) Typing(selfEmail string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var typing []string
	for _, entry := range t.entries {
		if entry.IsTyping && entry.Email != selfEmail {
			typing = append(typing, entry.Email)
		}
	}
	return typing
}

// Entries returns a copy of the full presence state.
func (t *Tracker) Entries() []PresenceEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]PresenceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
