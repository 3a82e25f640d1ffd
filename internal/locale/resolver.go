package locale

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnsupportedLanguage is returned by SetLanguage for codes without a dictionary.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Resolver decides the active language and is the only writer of a Context.
type Resolver struct {
	store  Store
	signal func() string
	ctx    *Context
	apply  func(Code)
	logger *slog.Logger
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithSignal sets the environment language signal, e.g. an Accept-Language
// header or the LANG variable.
func WithSignal(signal func() string) ResolverOption {
	return func(r *Resolver) {
		r.signal = signal
	}
}

// WithApplicator runs fn on every successful SetLanguage, before listeners.
func WithApplicator(fn func(Code)) ResolverOption {
	return func(r *Resolver) {
		r.apply = fn
	}
}

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver backed by store. The returned resolver owns a
// fresh Context initialised with Resolve().
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = NewMemoryStore("")
	}
	r.ctx = NewContext(r.Resolve(), r.logger)
	return r
}

// Context exposes the language context for reading and subscribing.
func (r *Resolver) Context() *Context {
	return r.ctx
}

// Resolve applies the precedence stored choice, environment signal, default.
func (r *Resolver) Resolve() Code {
	stored, err := r.store.Load()
	if err != nil {
		r.logger.Warn("load language preference", "error", err)
	}
	if code := NormalizeLanguage(stored); code != "" {
		return code
	}
	if r.signal != nil {
		raw := r.signal()
		if code := LanguageFromAcceptLanguage(raw); code != "" {
			return code
		}
		if code := NormalizeLanguage(raw); code != "" {
			return code
		}
	}
	return DefaultLanguage
}

// SetLanguage persists an explicit choice, updates the context, re-applies
// translations and notifies listeners. Unsupported codes are a logged no-op.
func (r *Resolver) SetLanguage(raw string) error {
	code := Code(raw)
	if !code.Valid() {
		r.logger.Warn("rejecting language change", "language", raw)
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}

	if err := r.store.Save(code.String()); err != nil {
		r.logger.Warn("persist language preference", "language", code, "error", err)
	}
	r.ctx.set(code)
	if r.apply != nil {
		r.apply(code)
	}
	r.ctx.notify(code)
	r.logger.Debug("language changed", "language", code)
	return nil
}
