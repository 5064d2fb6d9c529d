package chat

import (
	"io"
	"strings"
	"sync"
	"time"
)

// DefaultDebounceInterval is the inactivity window after which a typing
// participant is considered to have stopped.
const DefaultDebounceInterval = 2 * time.Second

// Attachment is a file selected for upload.
type Attachment struct {
	Name        string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// ComposerConfig wires the composer's outbound signals.
type ComposerConfig struct {
	// DebounceInterval overrides DefaultDebounceInterval; tests use a
	// short interval.
	DebounceInterval time.Duration

	OnSubmit func(content string)
	OnAttach func(att Attachment)
	OnTyping func(isTyping bool)
}

// Composer holds the draft text and emits edge-triggered typing signals.
// Typing-started fires once when the participant starts typing.
// Typing-stopped fires on clearing the draft, on submit, or after the
// trailing debounce window expires with no further keystroke, whichever
// comes first. Signals never fire per keystroke, so rapid toggling cannot
// flood the presence channel.
type Composer struct {
	cfg ComposerConfig

	mu     sync.Mutex
	text   string
	typing bool
	timer  *time.Timer
	closed bool
}

// NewComposer creates a composer with the given signal callbacks.
func NewComposer(cfg ComposerConfig) *Composer {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	return &Composer{cfg: cfg}
}

// SetText updates the draft, emitting typing transitions as needed. Every
// keystroke with content restarts the trailing debounce timer.
func (c *Composer) SetText(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.text = text

	var started, stopped bool
	if text == "" {
		if c.typing {
			c.typing = false
			c.stopTimerLocked()
			stopped = true
		}
	} else {
		if !c.typing {
			c.typing = true
			started = true
		}
		c.stopTimerLocked()
		c.timer = time.AfterFunc(c.cfg.DebounceInterval, c.expire)
	}
	c.mu.Unlock()

	if started {
		c.emitTyping(true)
	}
	if stopped {
		c.emitTyping(false)
	}
}

// Submit fires the send signal with the trimmed draft and clears it. The
// draft clears on the attempt itself, not on delivery; a failed send is
// surfaced by the submit callback's owner. Empty drafts are a no-op.
func (c *Composer) Submit() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	content := strings.TrimSpace(c.text)
	if content == "" {
		c.mu.Unlock()
		return
	}
	c.text = ""
	wasTyping := c.typing
	c.typing = false
	c.stopTimerLocked()
	c.mu.Unlock()

	if wasTyping {
		c.emitTyping(false)
	}
	if c.cfg.OnSubmit != nil {
		c.cfg.OnSubmit(content)
	}
}

// Attach fires the file-selected signal. The draft is unaffected.
func (c *Composer) Attach(att Attachment) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if c.cfg.OnAttach != nil {
		c.cfg.OnAttach(att)
	}
}

// Text returns the current draft.
func (c *Composer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Close cancels the debounce timer so no stale typing-stopped signal fires
// after the composer is gone. It emits nothing.
func (c *Composer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimerLocked()
}

// expire is the trailing edge of the debounce window.
func (c *Composer) expire() {
	c.mu.Lock()
	if c.closed || !c.typing {
		c.mu.Unlock()
		return
	}
	c.typing = false
	c.mu.Unlock()

	c.emitTyping(false)
}

func (c *Composer) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Composer) emitTyping(isTyping bool) {
	if c.cfg.OnTyping != nil {
		c.cfg.OnTyping(isTyping)
	}
}
