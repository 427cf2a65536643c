// Package notify collects transient user-facing notices (the terminal
// equivalent of toast messages). The content store pushes here instead
// of talking to any UI surface directly.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice severity levels.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notice is a single transient message surfaced to the user.
type Notice struct {
	ID      string
	Level   string
	Message string
	At      time.Time
}

// maxKept bounds the in-memory notice history.
const maxKept = 50

// Center receives notices and fans them out to subscribers.
type Center struct {
	mu      sync.Mutex
	notices []Notice
	subs    []func(Notice)
}

func NewCenter() *Center { return &Center{} }

// Push records a notice and notifies subscribers.
func (c *Center) Push(level, message string) Notice {
	n := Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	}

	c.mu.Lock()
	c.notices = append(c.notices, n)
	if len(c.notices) > maxKept {
		c.notices = c.notices[len(c.notices)-maxKept:]
	}
	subs := append(([]func(Notice))(nil), c.subs...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n
}

// Pushf is Push with fmt formatting.
func (c *Center) Pushf(level, format string, args ...any) Notice {
	return c.Push(level, fmt.Sprintf(format, args...))
}

// Latest returns the most recent notice, if any.
func (c *Center) Latest() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notices) == 0 {
		return Notice{}, false
	}
	return c.notices[len(c.notices)-1], true
}

// Recent returns up to n notices, newest last.
func (c *Center) Recent(n int) []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n > len(c.notices) {
		n = len(c.notices)
	}
	return append([]Notice(nil), c.notices[len(c.notices)-n:]...)
}

// Subscribe registers a callback invoked for every pushed notice.
func (c *Center) Subscribe(fn func(Notice)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}
