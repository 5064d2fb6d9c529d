package broker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName    = "WHISPER_CHAT"
	subjectPrefix = "whisper.room"
)

// NatsBroker fans room events out across server instances via a JetStream
// stream with one subject per room.
type NatsBroker struct {
	js jetstream.JetStream
	nc *nats.Conn
}

// NewNats connects to NATS and ensures the chat stream exists.
func NewNats(url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := js.Stream(ctx, streamName); err != nil {
		log.Printf("Stream '%s' not found, attempting to create...", streamName)
		streamCfg := jetstream.StreamConfig{
			Name:        streamName,
			Description: "Fans out room events",
			Subjects:    []string{fmt.Sprintf("%s.*", subjectPrefix)},
			MaxAge:      24 * time.Hour,
			Storage:     jetstream.FileStorage,
		}
		if _, err := js.CreateStream(ctx, streamCfg); err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream '%s': %w", streamName, err)
		}
		log.Printf("Stream '%s' created successfully", streamName)
	}

	return &NatsBroker{js: js, nc: nc}, nil
}

func subjectFor(roomID uint) string {
	return fmt.Sprintf("%s.%d", subjectPrefix, roomID)
}

func (b *NatsBroker) Publish(ctx context.Context, roomID uint, data []byte) error {
	subject := subjectFor(roomID)
	if _, err := b.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject '%s': %w", subject, err)
	}
	return nil
}

func (b *NatsBroker) Subscribe(roomID uint, handler func(data []byte)) (func(), error) {
	subject := subjectFor(roomID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Ephemeral consumer delivering from now: subscribers only see events
	// published after they attach; history comes from the database snapshot.
	cons, err := b.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		FilterSubject: subject,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckNonePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for subject '%s': %w", subject, err)
	}

	consumeCtx, err := cons.Consume(func(msg jetstream.Msg) {
		handler(msg.Data())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming from subject '%s': %w", subject, err)
	}

	return consumeCtx.Stop, nil
}

func (b *NatsBroker) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}
