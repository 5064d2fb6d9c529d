package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrEmptyMessage rejects a send with no content after trimming.
	ErrEmptyMessage = errors.New("message content is empty")
	// ErrNotAuthenticated rejects writes without an actor identity.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotJoined rejects room operations before Join succeeds.
	ErrNotJoined = errors.New("no active room session")
)

// RoomAPI is the persistence collaborator a session writes through. Every
// call is fire-and-forget from the session's point of view: a failure is
// terminal for that attempt and no state is retried or rolled forward.
type RoomAPI interface {
	Room(ctx context.Context, roomID uint) (*Room, error)
	History(ctx context.Context, roomID uint) ([]Message, error)
	SendText(ctx context.Context, roomID uint, content string) error
	UploadMedia(ctx context.Context, roomID uint, att Attachment) error
	SetTyping(ctx context.Context, roomID uint, isTyping bool) error
}

// Channel is one room's realtime subscription. Events ends when the channel
// is closed from either side.
type Channel interface {
	Events() <-chan Event
	Close() error
}

// ChannelOpener opens the single realtime channel for a room.
type ChannelOpener interface {
	OpenChannel(ctx context.Context, roomID uint) (Channel, error)
}

// Session orchestrates one room visit: load metadata and history, attach the
// room's event channel, stream events into the feed and presence tracker,
// and expose the outbound send/upload/typing actions. A session handles one
// room; visiting another room means a new session.
type Session struct {
	api    RoomAPI
	opener ChannelOpener
	self   Identity

	feed    *Feed
	tracker *Tracker

	mu         sync.Mutex
	room       *Room
	channel    Channel
	lastTyping bool

	done chan struct{}
}

// NewSession creates a session for the given actor.
func NewSession(api RoomAPI, opener ChannelOpener, self Identity) *Session {
	return &Session{
		api:     api,
		opener:  opener,
		self:    self,
		feed:    NewFeed(),
		tracker: NewTracker(),
	}
}

// Join activates the session: one metadata fetch, one history fetch, one
// channel. The history snapshot is taken before the channel attaches, so a
// message committed in between can be missed until the next visit; that gap
// is accepted rather than patched with a post-attach refetch.
func (s *Session) Join(ctx context.Context, roomID uint) error {
	if s.self.ID == 0 {
		return ErrNotAuthenticated
	}

	room, err := s.api.Room(ctx, roomID)
	if err != nil {
		return err
	}

	history, err := s.api.History(ctx, roomID)
	if err != nil {
		return err
	}
	s.feed.Replace(history)

	channel, err := s.opener.OpenChannel(ctx, roomID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.room = room
	s.channel = channel
	s.lastTyping = false
	s.done = make(chan struct{})
	s.mu.Unlock()

	// Announce the initial presence record: online, not typing.
	if err := s.api.SetTyping(ctx, roomID, false); err != nil {
		s.mu.Lock()
		s.room = nil
		s.channel = nil
		s.mu.Unlock()
		channel.Close()
		return err
	}

	go s.loop(channel)
	return nil
}

// loop is the sole consumer of the room's event channel.
func (s *Session) loop(channel Channel) {
	defer close(s.done)
	for event := range channel.Events() {
		switch event.Type {
		case EventMessageInsert:
			if event.Message == nil {
				continue
			}
			s.feed.Append(*event.Message)
			// A delivered message is the strongest stopped-typing
			// signal its sender can emit.
			s.tracker.ClearTyping(event.Message.SenderEmail)
		case EventPresenceSync:
			s.tracker.Sync(event.Presence)
		}
	}
}

// Leave closes the channel subscription and waits for the event loop to
// drain. Skipping this leaks a live connection and a phantom presence entry.
func (s *Session) Leave() error {
	s.mu.Lock()
	channel := s.channel
	done := s.done
	s.channel = nil
	s.mu.Unlock()

	if channel == nil {
		return ErrNotJoined
	}
	err := channel.Close()
	<-done
	return err
}

// SendText validates and writes a text message through. The message shows up
// in the feed only once the backend echoes it over the channel; there is no
// optimistic local insert.
func (s *Session) SendText(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}
	roomID, err := s.activeRoom()
	if err != nil {
		return err
	}
	return s.api.SendText(ctx, roomID, content)
}

// UploadMedia writes a media message through; the backend derives the kind
// from the attachment's declared media type.
func (s *Session) UploadMedia(ctx context.Context, att Attachment) error {
	roomID, err := s.activeRoom()
	if err != nil {
		return err
	}
	return s.api.UploadMedia(ctx, roomID, att)
}

// SetTyping publishes the actor's typing flag. Only edge transitions go out;
// repeated calls with the same flag are dropped locally.
func (s *Session) SetTyping(ctx context.Context, isTyping bool) error {
	s.mu.Lock()
	if s.channel == nil {
		s.mu.Unlock()
		return ErrNotJoined
	}
	if s.lastTyping == isTyping {
		s.mu.Unlock()
		return nil
	}
	s.lastTyping = isTyping
	roomID := s.room.ID
	s.mu.Unlock()

	return s.api.SetTyping(ctx, roomID, isTyping)
}

// Feed returns the session's message feed store.
func (s *Session) Feed() *Feed { return s.feed }

// Presence returns the session's typing tracker.
func (s *Session) Presence() *Tracker { return s.tracker }

// Room returns the joined room's metadata, or nil before Join.
func (s *Session) Room() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *Session) activeRoom() (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room == nil || s.channel == nil {
		return 0, ErrNotJoined
	}
	return s.room.ID, nil
}
