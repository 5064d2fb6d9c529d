package chat

import "sync"

// Feed holds the ordered message sequence for one room. It has exactly two
// mutation sources: a bulk replace when history loads, and a tail append per
// realtime insert event. Inserts arrive in commit order from a single
// upstream feed, so a plain append preserves ascending timestamp order.
// Upstream redelivery is not defended against: a message present in the
// history snapshot and echoed again on the stream appears twice.
type Feed struct {
	mu       sync.RWMutex
	messages []Message
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Replace installs a freshly loaded history, pre-sorted ascending by
// creation time.
func (f *Feed) Replace(messages []Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = make([]Message, len(messages))
	copy(f.messages, messages)
}

// Append adds one realtime insert to the tail of the feed.
func (f *Feed) Append(message Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

// Messages returns a copy of the current sequence.
func (f *Feed) Messages() []Message {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Message, len(f.messages))
	copy(out, f.messages)
	return out
}

// Len reports the number of messages in the feed.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.messages)
}
