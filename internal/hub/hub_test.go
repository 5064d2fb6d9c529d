package hub

import (
	"context"
	"encoding/json"
	"testing"

	"whisper/rooms/internal/broker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, client Client) Event {
	t.Helper()
	select {
	case data := <-client:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	default:
		t.Fatal("expected a buffered event")
		return Event{}
	}
}

func presenceOf(t *testing.T, event Event) []PresenceEntry {
	t.Helper()
	require.Equal(t, EventPresenceSync, event.Type)
	data, err := json.Marshal(event.Payload)
	require.NoError(t, err)
	var entries []PresenceEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	return entries
}

func TestHub_BroadcastReachesOnlySubscribedRoom(t *testing.T) {
	h := NewHub()
	inRoom := make(Client, 4)
	otherRoom := make(Client, 4)
	h.Subscribe(1, inRoom)
	h.Subscribe(2, otherRoom)

	h.Broadcast(1, Event{Type: EventMessageInsert, Payload: "hi"})

	event := recvEvent(t, inRoom)
	assert.Equal(t, EventMessageInsert, event.Type)
	assert.Empty(t, otherRoom)
}

func TestHub_SlowClientDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub()
	full := make(Client) // unbuffered and never read
	healthy := make(Client, 4)
	h.Subscribe(1, full)
	h.Subscribe(1, healthy)

	h.Broadcast(1, Event{Type: EventMessageInsert, Payload: "hi"})

	// The send to the full client is dropped; the healthy one still gets it.
	assert.Equal(t, EventMessageInsert, recvEvent(t, healthy).Type)
}

func TestHub_UnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(1, client)
	h.Unsubscribe(1, client)

	_, open := <-client
	assert.False(t, open)
}

func TestHub_TrackBroadcastsFullSnapshot(t *testing.T) {
	h := NewHub()
	alice := make(Client, 4)
	bob := make(Client, 4)
	h.Subscribe(1, alice)
	h.Subscribe(1, bob)

	h.Track(1, alice, PresenceEntry{Email: "alice@x.com"})

	entries := presenceOf(t, recvEvent(t, bob))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice@x.com", entries[0].Email)

	// Every participant gets the same complete snapshot, the tracker included.
	assert.Len(t, presenceOf(t, recvEvent(t, alice)), 1)

	h.Track(1, bob, PresenceEntry{Email: "bob@x.com"})
	assert.Len(t, presenceOf(t, recvEvent(t, alice)), 2)
}

func TestHub_UntrackRemovesEntryAndBroadcasts(t *testing.T) {
	h := NewHub()
	alice := make(Client, 8)
	bob := make(Client, 8)
	h.Subscribe(1, alice)
	h.Subscribe(1, bob)
	h.Track(1, alice, PresenceEntry{Email: "alice@x.com"})
	h.Track(1, bob, PresenceEntry{Email: "bob@x.com"})
	for len(alice) > 0 {
		<-alice
	}

	h.Untrack(1, bob)

	entries := presenceOf(t, recvEvent(t, alice))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice@x.com", entries[0].Email)
	assert.Empty(t, h.Snapshot(2))
}

func TestHub_SetTypingFlipsMatchingEmailOnly(t *testing.T) {
	h := NewHub()
	alice := make(Client, 8)
	h.Subscribe(1, alice)
	h.Track(1, alice, PresenceEntry{Email: "alice@x.com"})
	bob := make(Client, 8)
	h.Subscribe(1, bob)
	h.Track(1, bob, PresenceEntry{Email: "bob@x.com"})

	h.SetTyping(1, "bob@x.com", true)

	byEmail := make(map[string]bool)
	for _, entry := range h.Snapshot(1) {
		byEmail[entry.Email] = entry.IsTyping
	}
	assert.True(t, byEmail["bob@x.com"])
	assert.False(t, byEmail["alice@x.com"])

	h.SetTyping(1, "bob@x.com", false)
	for _, entry := range h.Snapshot(1) {
		assert.False(t, entry.IsTyping)
	}
}

func TestRelay_PublishLoopsBackThroughBroker(t *testing.T) {
	h := NewHub()
	relay := NewRelay(h, broker.NewMemory())

	client := make(Client, 4)
	h.Subscribe(1, client)
	require.NoError(t, relay.Attach(1))
	defer relay.Detach(1)

	require.NoError(t, relay.Publish(context.Background(), 1, Event{Type: EventMessageInsert, Payload: "hi"}))

	assert.Equal(t, EventMessageInsert, recvEvent(t, client).Type)
}

func TestRelay_DetachStopsDelivery(t *testing.T) {
	h := NewHub()
	relay := NewRelay(h, broker.NewMemory())

	client := make(Client, 4)
	h.Subscribe(1, client)

	// Two attachments: the subscription survives the first detach.
	require.NoError(t, relay.Attach(1))
	require.NoError(t, relay.Attach(1))
	relay.Detach(1)

	require.NoError(t, relay.Publish(context.Background(), 1, Event{Type: EventMessageInsert, Payload: "hi"}))
	assert.Len(t, client, 1)
	<-client

	relay.Detach(1)
	require.NoError(t, relay.Publish(context.Background(), 1, Event{Type: EventMessageInsert, Payload: "hi"}))
	assert.Empty(t, client)
}
