// Package fragment fetches shared HTML fragments (header, footer, sidebars)
// and mounts them into a document.
package fragment

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/skilllab/internal/dom"
	"github.com/sourcegraph/conc"
)

// Mount pairs a placeholder selector with the fragment to load into it.
type Mount struct {
	Selector string
	Path     string
	// Lang selects a language variant (header-en.html) when one exists.
	Lang string
}

// Results reports per-selector mount success.
type Results map[string]bool

// OK reports whether every mount succeeded.
func (r Results) OK() bool {
	for _, ok := range r {
		if !ok {
			return false
		}
	}
	return true
}

// Loader fetches fragments and splices them into a document. Fetches run
// without holding the document lock; mounts take it. A response is applied
// only when it is still the latest request for its selector.
type Loader struct {
	source Source
	lock   sync.Locker
	logger *slog.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

type LoaderOption func(*Loader)

// WithLocker serialises mounts with the document's event loop lock. Without
// it mounts are serialised by a lock private to the loader.
func WithLocker(lock sync.Locker) LoaderOption {
	return func(l *Loader) {
		l.lock = lock
	}
}

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:      source,
		lock:        &sync.Mutex{},
		logger:      slog.Default(),
		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) ticket(selector string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generations[selector]++
	return l.generations[selector]
}

func (l *Loader) current(selector string, ticket uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[selector] == ticket
}

// Load fetches path and replaces the inner content of the element matching
// selector. It returns false, leaving the document untouched, when the fetch
// fails, the mount point is missing, or a newer load for the same selector
// has started meanwhile.
func (l *Loader) Load(ctx context.Context, doc *dom.Document, selector, path string) bool {
	return l.LoadMount(ctx, doc, Mount{Selector: selector, Path: path})
}

// LoadMount is Load with optional language variant lookup.
func (l *Loader) LoadMount(ctx context.Context, doc *dom.Document, m Mount) bool {
	ticket := l.ticket(m.Selector)

	markup, path, err := l.fetch(ctx, m)
	if err != nil {
		l.logger.Warn("fragment load failed", "selector", m.Selector, "path", path, "error", err)
		return false
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if !l.current(m.Selector, ticket) {
		l.logger.Debug("discarding stale fragment", "selector", m.Selector, "path", path)
		return false
	}
	if !doc.ReplaceInner(m.Selector, markup) {
		l.logger.Warn("fragment mount point missing", "selector", m.Selector, "path", path)
		return false
	}
	return true
}

func (l *Loader) fetch(ctx context.Context, m Mount) (string, string, error) {
	if m.Lang != "" {
		variant := VariantPath(m.Path, m.Lang)
		markup, err := l.source.Fetch(ctx, variant)
		if err == nil {
			return markup, variant, nil
		}
		level := slog.LevelWarn
		if errors.Is(err, ErrFragmentNotFound) {
			level = slog.LevelDebug
		}
		l.logger.Log(ctx, level, "fragment variant unavailable", "path", variant, "fallback", m.Path, "error", err)
	}
	markup, err := l.source.Fetch(ctx, m.Path)
	return markup, m.Path, err
}

// LoadAll loads every mount concurrently. Each mount succeeds or fails on
// its own.
func (l *Loader) LoadAll(ctx context.Context, doc *dom.Document, mounts ...Mount) Results {
	results := make(Results, len(mounts))
	var mu sync.Mutex
	var wg conc.WaitGroup
	for _, m := range mounts {
		m := m
		wg.Go(func() {
			ok := l.LoadMount(ctx, doc, m)
			mu.Lock()
			results[m.Selector] = ok
			mu.Unlock()
		})
	}
	wg.Wait()
	return results
}
