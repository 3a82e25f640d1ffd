package locale

import (
	"log/slog"
	"sync"
)

// Listener is notified after the current language changes.
type Listener func(Code)

// Context holds the current language of one document and the listeners
// interested in changes to it. Only Resolver.SetLanguage writes to it.
type Context struct {
	mu        sync.RWMutex
	current   Code
	nextID    int
	listeners []listenerEntry
	logger    *slog.Logger
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewContext returns a context starting at the given language.
func NewContext(initial Code, logger *slog.Logger) *Context {
	if !initial.Valid() {
		initial = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{current: initial, logger: logger}
}

// Current returns the active language.
func (c *Context) Current() Code {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Subscribe registers fn and returns a function that removes it again.
func (c *Context) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, entry := range c.listeners {
			if entry.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Context) set(code Code) {
	c.mu.Lock()
	c.current = code
	c.mu.Unlock()
}

// notify calls listeners in registration order. A panicking listener is
// logged and does not stop the rest.
func (c *Context) notify(code Code) {
	c.mu.RLock()
	snapshot := make([]listenerEntry, len(c.listeners))
	copy(snapshot, c.listeners)
	c.mu.RUnlock()

	for _, entry := range snapshot {
		c.safeCall(entry.fn, code)
	}
}

func (c *Context) safeCall(fn Listener, code Code) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("language listener panicked", "language", code, "panic", r)
		}
	}()
	fn(code)
}
