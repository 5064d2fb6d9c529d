package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func msg(id uint, email, content string, at time.Time) Message {
	return Message{
		ID:          id,
		RoomID:      1,
		SenderEmail: email,
		Type:        MessageTypeText,
		Content:     content,
		CreatedAt:   at,
	}
}

func TestFeed_HistoryThenRealtimeOrder(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	history := []Message{
		msg(1, "alice@x.com", "first", base),
		msg(2, "bob@x.com", "second", base.Add(time.Second)),
		msg(3, "alice@x.com", "third", base.Add(2*time.Second)),
	}

	feed := NewFeed()
	feed.Replace(history)

	e1 := msg(4, "bob@x.com", "fourth", base.Add(3*time.Second))
	e2 := msg(5, "alice@x.com", "fifth", base.Add(4*time.Second))
	feed.Append(e1)
	feed.Append(e2)

	got := feed.Messages()
	assert.Len(t, got, 5)
	// The rendered feed equals the history followed by realtime events in
	// arrival order.
	for i, want := range append(append([]Message{}, history...), e1, e2) {
		assert.Equal(t, want.ID, got[i].ID)
		assert.Equal(t, want.Content, got[i].Content)
	}
}

func TestFeed_ReplaceDropsPreviousContents(t *testing.T) {
	feed := NewFeed()
	feed.Append(msg(1, "alice@x.com", "old", time.Now()))

	fresh := []Message{msg(2, "bob@x.com", "new", time.Now())}
	feed.Replace(fresh)

	got := feed.Messages()
	assert.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestFeed_MessagesReturnsCopy(t *testing.T) {
	feed := NewFeed()
	feed.Replace([]Message{msg(1, "alice@x.com", "hello", time.Now())})

	got := feed.Messages()
	got[0].Content = "mutated"

	assert.Equal(t, "hello", feed.Messages()[0].Content)
	assert.Equal(t, 1, feed.Len())
}
