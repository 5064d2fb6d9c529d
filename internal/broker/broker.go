package broker

import "context"

// Broker is the inter-instance pipe for room events. Message inserts travel
// through the broker so that every server instance sees them; presence stays
// local to each instance's hub.
type Broker interface {
	// Publish sends event bytes to a room's topic.
	Publish(ctx context.Context, roomID uint, data []byte) error

	// Subscribe delivers every event published to a room's topic to handler.
	// The returned stop function tears the subscription down.
	Subscribe(roomID uint, handler func(data []byte)) (stop func(), err error)

	// Close releases the broker's underlying connection.
	Close()
}
