// Package page composes one rendered page: it mounts shared fragments into a
// page shell, applies the active language, reconciles the layout for the
// client viewport and selects the requested game or tool.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/dom"
	"github.com/skilllab/internal/fragment"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/layout"
	"github.com/skilllab/internal/locale"
	"github.com/skilllab/internal/nav"
)

// ErrInvalidConfig is returned by New when required collaborators are missing.
var ErrInvalidConfig = errors.New("invalid page config")

// Fragment paths and their mount points.
const (
	HeaderPath      = "shared/header.html"
	FooterPath      = "shared/footer.html"
	GameSidebarPath = "shared/game-sidebar.html"
	ToolSidebarPath = "shared/tool-sidebar.html"

	headerMount      = "header"
	footerMount      = "footer"
	gameSidebarMount = "#game-sidebar"
	toolSidebarMount = "#tool-sidebar"

	indexSections = ".games-index, .tools-index"
)

// Config describes one page view.
type Config struct {
	Page catalog.PageType
	// ID is the selected game or tool; empty on index pages.
	ID string
	// Path is the request path, used to flag the active nav item.
	Path  string
	Shell string

	Fragments fragment.Source
	Table     *i18n.Table
	Store     locale.Store
	// Signal returns the client language hint, e.g. Accept-Language.
	Signal func() string

	Width    int
	Debounce time.Duration

	Games  nav.Resetter
	Tools  nav.Resetter
	Logger *slog.Logger
}

// View owns a composed document. Every handler runs under the view lock;
// fragment fetches run outside it and re-acquire it to mount.
type View struct {
	mu sync.Mutex

	cfg        Config
	doc        *dom.Document
	resolver   *locale.Resolver
	applicator *i18n.Applicator
	loader     *fragment.Loader
	reconciler *layout.Reconciler
	controller *nav.Controller
	debouncer  *layout.Debouncer
	logger     *slog.Logger

	width       int
	location    string
	unsubscribe func()
}

// New parses the shell and wires the page collaborators. Nothing is fetched
// until Init.
func New(cfg Config) (*View, error) {
	if cfg.Fragments == nil || cfg.Table == nil {
		return nil, fmt.Errorf("%w: fragments and table are required", ErrInvalidConfig)
	}
	if _, ok := catalog.ParsePageType(string(cfg.Page)); !ok {
		return nil, fmt.Errorf("%w: page type %q", ErrInvalidConfig, cfg.Page)
	}
	if cfg.Page == "" {
		cfg.Page = catalog.PageHome
	}
	if cfg.Width <= 0 {
		cfg.Width = layout.DefaultWidth
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("page", cfg.Page)

	doc, err := dom.ParseString(cfg.Shell)
	if err != nil {
		return nil, fmt.Errorf("parse page shell: %w", err)
	}

	v := &View{
		cfg:        cfg,
		doc:        doc,
		applicator: i18n.NewApplicator(cfg.Table, logger),
		debouncer:  layout.NewDebouncer(cfg.Debounce),
		logger:     logger,
		width:      cfg.Width,
	}
	v.loader = fragment.NewLoader(cfg.Fragments, fragment.WithLocker(&v.mu), fragment.WithLogger(logger))
	v.resolver = locale.NewResolver(cfg.Store,
		locale.WithSignal(cfg.Signal),
		locale.WithApplicator(func(code locale.Code) { v.applicator.Apply(v.doc, code) }),
		locale.WithLogger(logger),
	)
	v.reconciler = layout.NewReconciler(cfg.Page, cfg.ID,
		layout.WithLabeler(v.label),
		layout.WithSelectHandler(v.navigate),
		layout.WithLogger(logger),
	)
	v.controller = nav.New(doc, cfg.Page,
		nav.WithResetter(catalog.PageGames, cfg.Games),
		nav.WithResetter(catalog.PageTools, cfg.Tools),
		nav.WithLanguage(v.resolver.Context().Current),
		nav.WithAfterSelect(v.afterSelect),
		nav.WithLanguageSwitch(v.resolver.SetLanguage),
		nav.WithNavigate(func(path string) { v.location = path }),
		nav.WithLogger(logger),
	)
	v.unsubscribe = v.resolver.Context().Subscribe(v.controller.MarkLanguage)
	return v, nil
}

func (v *View) label(key string) string {
	return v.cfg.Table.Translate(v.resolver.Context().Current(), key, key)
}

func (v *View) afterSelect(id string) {
	v.reconciler.SetItem(id)
	v.reconciler.Reconcile(v.doc, v.width)
}

func (v *View) navigate(id string) {
	v.location = "/" + string(v.cfg.Page) + "/" + id
	v.cfg.ID = id
	if err := v.selectItem(id); err != nil {
		v.logger.Info("mobile selection ignored", "target", id, "error", err)
	}
}

func (v *View) selectItem(id string) error {
	switch v.cfg.Page {
	case catalog.PageGames:
		return v.controller.SelectGame(id)
	case catalog.PageTools:
		return v.controller.SelectTool(id)
	default:
		return nil
	}
}

func (v *View) mounts(lang locale.Code) []fragment.Mount {
	variant := ""
	if lang != locale.DefaultLanguage {
		variant = lang.String()
	}
	mounts := []fragment.Mount{
		{Selector: headerMount, Path: HeaderPath, Lang: variant},
		{Selector: footerMount, Path: FooterPath, Lang: variant},
	}
	if v.cfg.ID == "" {
		return mounts
	}
	switch v.cfg.Page {
	case catalog.PageGames:
		mounts = append(mounts, fragment.Mount{Selector: gameSidebarMount, Path: GameSidebarPath})
	case catalog.PageTools:
		mounts = append(mounts, fragment.Mount{Selector: toolSidebarMount, Path: ToolSidebarPath})
	}
	return mounts
}

// Init composes the page: fragments, listeners, translations, layout,
// selection, then nav and language flags. A failed fragment leaves its mount
// point untouched and is reported in the results.
func (v *View) Init(ctx context.Context) fragment.Results {
	lang := v.resolver.Context().Current()
	results := v.loader.LoadAll(ctx, v.doc, v.mounts(lang)...)
	for selector, ok := range results {
		if !ok {
			v.logger.Warn("fragment unavailable", "selector", selector)
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.controller.Bind()
	if v.cfg.ID != "" {
		dom.SetStyle(v.doc.Find(indexSections), "display", "none")
	}
	v.applicator.Apply(v.doc, lang)
	v.reconciler.Reconcile(v.doc, v.width)
	if v.cfg.ID != "" {
		if err := v.selectItem(v.cfg.ID); err != nil {
			v.logger.Info("initial selection ignored", "error", err)
		}
	}
	if err := v.controller.SelectPage(string(v.cfg.Page)); err != nil {
		v.logger.Info("page selection ignored", "error", err)
	}
	v.controller.MarkNavigation(v.cfg.Path)
	v.controller.MarkLanguage(lang)
	return results
}

// Resize records the viewport width and schedules a debounced reconcile.
func (v *View) Resize(width int) {
	v.mu.Lock()
	v.width = width
	v.mu.Unlock()

	v.debouncer.Trigger(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.reconciler.Reconcile(v.doc, v.width)
	})
}

// Settle runs a pending resize now.
func (v *View) Settle() bool {
	return v.debouncer.Flush()
}

// Click dispatches a click on the first element matching selector and
// returns the number of handlers run.
func (v *View) Click(selector string) int {
	return v.dispatch(dom.Event{Type: "click"}, selector)
}

// Swipe dispatches a touchmove with horizontal travel deltaX on selector.
func (v *View) Swipe(selector string, deltaX int) int {
	return v.dispatch(dom.Event{Type: "touchmove", DeltaX: deltaX}, selector)
}

// KeyDown dispatches a document keydown.
func (v *View) KeyDown(key string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.Events().Dispatch(dom.Event{Type: "keydown", Key: key})
}

func (v *View) dispatch(ev dom.Event, selector string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	target, ok := v.doc.First(selector)
	if !ok {
		v.logger.Debug("event target missing", "selector", selector, "event", ev.Type)
		return 0
	}
	ev.Target = target
	return v.doc.Events().Dispatch(ev)
}

// ChangeLanguage persists code and re-applies translations.
func (v *View) ChangeLanguage(code string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolver.SetLanguage(code)
}

// Language returns the active language.
func (v *View) Language() locale.Code {
	return v.resolver.Context().Current()
}

// Selected returns the shown game or tool id.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.controller.Selected()
}

// Breakpoint returns the breakpoint of the last reconcile.
func (v *View) Breakpoint() layout.Breakpoint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reconciler.Breakpoint()
}

// SidebarOpen reports whether the overlay sidebar is open.
func (v *View) SidebarOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reconciler.SidebarOpen()
}

// Location is the path a header or mobile sidebar selection navigated to, if
// any.
func (v *View) Location() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.location
}

// Inspect runs fn with the document under the view lock.
func (v *View) Inspect(fn func(doc *dom.Document)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.doc)
}

// HTML renders the document.
func (v *View) HTML() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.HTML()
}

// Close drops pending work and language subscriptions.
func (v *View) Close() {
	v.debouncer.Stop()
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}
