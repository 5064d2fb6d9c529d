package broker

import (
	"context"
	"sync"
)

// MemoryBroker is a loopback broker for single-instance deployments. Events
// published to a room are delivered synchronously to local subscribers.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[uint]map[int]func(data []byte)
	next int
}

// NewMemory creates a new in-process broker.
func NewMemory() *MemoryBroker {
	return &MemoryBroker{subs: make(map[uint]map[int]func(data []byte))}
}

func (b *MemoryBroker) Publish(_ context.Context, roomID uint, data []byte) error {
	b.mu.RLock()
	handlers := make([]func([]byte), 0, len(b.subs[roomID]))
	for _, h := range b.subs[roomID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(roomID uint, handler func(data []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[roomID]; !ok {
		b.subs[roomID] = make(map[int]func(data []byte))
	}
	id := b.next
	b.next++
	b.subs[roomID][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if handlers, ok := b.subs[roomID]; ok {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(b.subs, roomID)
			}
		}
	}, nil
}

func (b *MemoryBroker) Close() {}
