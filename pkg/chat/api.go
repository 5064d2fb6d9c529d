package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Client talks to a Whisper Rooms server over HTTP and SSE. It implements
// RoomAPI and ChannelOpener.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given server. The token may be empty
// until Login or Register is called.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/v1/auth/register", email, password)
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/v1/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	input := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, path, input, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Me returns the authenticated actor's identity.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &Identity{ID: out.ID, Email: out.Email}, nil
}

// CreateRoom creates a password-protected room owned by the caller.
func (c *Client) CreateRoom(ctx context.Context, name, password string) (*Room, error) {
	var room Room
	input := map[string]string{"name": name, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/rooms", input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// JoinRoom verifies the room password with the server.
func (c *Client) JoinRoom(ctx context.Context, roomID uint, password string) (*Room, error) {
	var room Room
	input := map[string]string{"password": password}
	path := fmt.Sprintf("/api/v1/rooms/%d/join", roomID)
	if err := c.do(ctx, http.MethodPost, path, input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) Room(ctx context.Context, roomID uint) (*Room, error) {
	var room Room
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) History(ctx context.Context, roomID uint) ([]Message, error) {
	var messages []Message
	path := fmt.Sprintf("/api/v1/rooms/%d/messages", roomID)
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendText(ctx context.Context, roomID uint, content string) error {
	path := fmt.Sprintf("/api/v1/rooms/%d/messages", roomID)
	return c.do(ctx, http.MethodPost, path, map[string]string{"content": content}, nil)
}

func (c *Client) UploadMedia(ctx context.Context, roomID uint, att Attachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// CreateFormFile would stamp application/octet-stream; the server
	// derives the message kind from the declared media type, so the part
	// header must carry it.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, att.Name))
	header.Set("Content-Type", att.ContentType)
	fw, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, att.Reader); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	path := fmt.Sprintf("/api/v1/rooms/%d/media", roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) SetTyping(ctx context.Context, roomID uint, isTyping bool) error {
	path := fmt.Sprintf("/api/v1/rooms/%d/typing", roomID)
	return c.do(ctx, http.MethodPost, path, map[string]bool{"is_typing": isTyping}, nil)
}

// DeleteRoom deletes a room the caller owns.
func (c *Client) DeleteRoom(ctx context.Context, roomID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, nil)
}

// OpenChannel attaches to a room's SSE stream. The returned Channel's event
// feed ends when Close is called or the server drops the connection.
func (c *Client) OpenChannel(ctx context.Context, roomID uint) (Channel, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	path := fmt.Sprintf("/api/v1/rooms/%d/stream", roomID)
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		cancel()
		return nil, errorFrom(resp)
	}

	channel := &sseChannel{
		events: make(chan Event, 32),
		cancel: cancel,
		body:   resp.Body,
	}
	go channel.read()
	return channel, nil
}

// sseChannel parses "data:" frames off an SSE response body into Events.
type sseChannel struct {
	events chan Event
	cancel context.CancelFunc
	body   io.ReadCloser
}

func (ch *sseChannel) Events() <-chan Event { return ch.events }

func (ch *sseChannel) Close() error {
	ch.cancel()
	return nil
}

func (ch *sseChannel) read() {
	defer close(ch.events)
	defer ch.body.Close()

	scanner := bufio.NewScanner(ch.body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var wire struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &wire); err != nil {
			continue
		}

		switch EventType(wire.Type) {
		case EventMessageInsert:
			var msg Message
			if err := json.Unmarshal(wire.Payload, &msg); err != nil {
				continue
			}
			ch.events <- Event{Type: EventMessageInsert, Message: &msg}
		case EventPresenceSync:
			var entries []PresenceEntry
			if err := json.Unmarshal(wire.Payload, &entries); err != nil {
				continue
			}
			ch.events <- Event{Type: EventPresenceSync, Presence: entries}
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}
	return errorFrom(resp)
}

func errorFrom(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server: %s", payload.Error)
	}
	return fmt.Errorf("server: unexpected status %d", resp.StatusCode)
}
