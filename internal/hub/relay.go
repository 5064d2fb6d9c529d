package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"whisper/rooms/internal/broker"
)

// Relay bridges the broker and the local hub. Message events are published
// through the broker and looped back into every instance's hub, so clients
// converge no matter which instance they are connected to. Broker
// subscriptions are reference-counted per room: the first local client opens
// one, the last closes it.
type Relay struct {
	hub    *Hub
	broker broker.Broker

	mu    sync.Mutex
	stops map[uint]func()
	refs  map[uint]int
}

// GlobalRelay is wired up once at startup via InitRelay.
var GlobalRelay *Relay

// InitRelay installs the process-wide relay over the given broker.
func InitRelay(b broker.Broker) {
	GlobalRelay = NewRelay(GlobalHub, b)
}

// NewRelay creates a relay delivering broker events into h.
func NewRelay(h *Hub, b broker.Broker) *Relay {
	return &Relay{
		hub:    h,
		broker: b,
		stops:  make(map[uint]func()),
		refs:   make(map[uint]int),
	}
}

// Publish marshals an event and sends it to the room's broker topic.
func (r *Relay) Publish(ctx context.Context, roomID uint, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.broker.Publish(ctx, roomID, data)
}

// Attach registers interest in a room's broker topic. Must be paired with
// Detach when the client goes away.
func (r *Relay) Attach(roomID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refs[roomID]++
	if r.refs[roomID] > 1 {
		return nil
	}

	stop, err := r.broker.Subscribe(roomID, func(data []byte) {
		r.hub.BroadcastRaw(roomID, data)
	})
	if err != nil {
		r.refs[roomID]--
		return err
	}
	r.stops[roomID] = stop
	return nil
}

// Detach releases interest in a room's broker topic.
func (r *Relay) Detach(roomID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs[roomID] == 0 {
		log.Printf("relay: detach without attach for room %d", roomID)
		return
	}
	r.refs[roomID]--
	if r.refs[roomID] > 0 {
		return
	}
	delete(r.refs, roomID)
	if stop, ok := r.stops[roomID]; ok {
		stop()
		delete(r.stops, roomID)
	}
}
