package dom

import (
	"log/slog"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// DocumentTarget addresses listeners attached to the document itself. They
// receive every dispatched event of their type.
const DocumentTarget = "document"

// Event is one dispatched UI event.
type Event struct {
	Type string
	Key  string
	// DeltaX is the horizontal travel of a touch gesture, positive to the left.
	DeltaX int
	// Target is the element the event was dispatched on (empty for document events).
	Target *goquery.Selection
	// Current is the closest ancestor of Target matching the listener's selector.
	Current *goquery.Selection
}

// Handler reacts to an event.
type Handler func(Event)

type listener struct {
	selector string
	event    string
	name     string
	fn       Handler
}

func (l listener) key() string {
	return l.selector + "\x00" + l.event + "\x00" + l.name
}

// Events is a delegated listener registry. Listeners are keyed by
// (selector, event, name); registering the same key again replaces the
// previous handler, so re-initialisation never stacks duplicates.
type Events struct {
	mu        sync.Mutex
	listeners []listener
}

func newEvents() *Events {
	return &Events{}
}

// On attaches fn for event on elements matching selector, replacing any
// listener registered under the same name.
func (e *Events) On(selector, event, name string, fn Handler) {
	l := listener{selector: selector, event: event, name: name, fn: fn}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.listeners {
		if existing.key() == l.key() {
			e.listeners[i] = l
			return
		}
	}
	e.listeners = append(e.listeners, l)
}

// Off detaches the listener registered under (selector, event, name).
func (e *Events) Off(selector, event, name string) {
	key := listener{selector: selector, event: event, name: name}.key()
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.listeners {
		if existing.key() == key {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Count returns the number of attached listeners.
func (e *Events) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// CountFor returns how many listeners exist for selector and event.
func (e *Events) CountFor(selector, event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, l := range e.listeners {
		if l.selector == selector && l.event == event {
			n++
		}
	}
	return n
}

// Dispatch delivers event to every listener whose selector matches target or
// one of its ancestors, then to document listeners. It returns the number of
// handlers run.
func (e *Events) Dispatch(ev Event) int {
	e.mu.Lock()
	snapshot := make([]listener, len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	ran := 0
	for _, l := range snapshot {
		if l.event != ev.Type {
			continue
		}
		current := ev
		if l.selector == DocumentTarget {
			current.Current = nil
		} else {
			if ev.Target == nil || ev.Target.Length() == 0 {
				continue
			}
			match := ev.Target.Closest(l.selector)
			if match.Length() == 0 {
				continue
			}
			current.Current = match
		}
		e.run(l, current)
		ran++
	}
	return ran
}

func (e *Events) run(l listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().Error("event handler panicked", "selector", l.selector, "event", l.event, "name", l.name, "panic", r)
		}
	}()
	l.fn(ev)
}
