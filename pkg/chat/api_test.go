package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvChannelEvent(t *testing.T, channel Channel) Event {
	t.Helper()
	select {
	case event, ok := <-channel.Events():
		require.True(t, ok, "event feed closed early")
		return event
	case <-time.After(time.Second):
		t.Fatal("no event arrived")
		return Event{}
	}
}

func TestClient_OpenChannelDecodesFrames(t *testing.T) {
	insert := Message{ID: 3, RoomID: 1, SenderEmail: "bob@x.com", Type: MessageTypeText, Content: "hi"}
	payload, err := json.Marshal(insert)
	require.NoError(t, err)

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "data: {\"type\":\"message.insert\",\"payload\":%s}\n\n", payload)
		fmt.Fprint(w, "data: {\"type\":\"presence.sync\",\"payload\":[{\"email\":\"bob@x.com\",\"is_typing\":true}]}\n\n")
		fmt.Fprint(w, "data: not-json\n\n") // malformed frames are skipped
		w.(http.Flusher).Flush()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	channel, err := c.OpenChannel(context.Background(), 1)
	require.NoError(t, err)
	defer channel.Close()

	event := recvChannelEvent(t, channel)
	require.Equal(t, EventMessageInsert, event.Type)
	require.NotNil(t, event.Message)
	assert.Equal(t, "hi", event.Message.Content)
	assert.Equal(t, "bob@x.com", event.Message.SenderEmail)

	event = recvChannelEvent(t, channel)
	require.Equal(t, EventPresenceSync, event.Type)
	require.Len(t, event.Presence, 1)
	assert.True(t, event.Presence[0].IsTyping)

	// The server closed the stream after the last frame; the feed ends.
	select {
	case _, open := <-channel.Events():
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("event feed did not close after server disconnect")
	}

	assert.Equal(t, "/api/v1/rooms/1/stream", gotPath)
}

func TestClient_OpenChannelRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Room not found"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.OpenChannel(context.Background(), 1)
	require.Error(t, err)
	assert.EqualError(t, err, "server: Room not found")
}

func TestClient_UploadMediaCarriesDeclaredContentType(t *testing.T) {
	var gotFilename, gotPartType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		// The message kind is derived from this header server-side, so the
		// part must carry the declared type, not application/octet-stream.
		gotPartType = header.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, "{}")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-123")
	err := c.UploadMedia(context.Background(), 1, Attachment{
		Name:        "cat.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("file-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "cat.png", gotFilename)
	assert.Equal(t, "image/png", gotPartType)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestClient_ServerErrorPayloadSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"Incorrect password"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.JoinRoom(context.Background(), 1, "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "server: Incorrect password")
}

func TestClient_NonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	err := c.SendText(context.Background(), 1, "hello")
	require.Error(t, err)
	assert.EqualError(t, err, "server: unexpected status 500")
}

func TestClient_LoginStoresTokenForLaterRequests(t *testing.T) {
	var loginBody map[string]string
	var meAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&loginBody)
		fmt.Fprint(w, `{"token":"tok-1"}`)
	})
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		meAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"id":7,"email":"alice@x.com"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	require.NoError(t, c.Login(context.Background(), "alice@x.com", "password123"))
	assert.Equal(t, "alice@x.com", loginBody["email"])

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", meAuth)
	assert.Equal(t, Identity{ID: 7, Email: "alice@x.com"}, *me)
}

func TestClient_SendTextPostsContent(t *testing.T) {
	var gotPath string
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, "{}")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	require.NoError(t, c.SendText(context.Background(), 4, "hello room"))

	assert.Equal(t, "/api/v1/rooms/4/messages", gotPath)
	assert.Equal(t, "hello room", body["content"])
}
