package layout

import (
	"html"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/dom"
)

const (
	ToggleSelector  = ".sidebar-toggle"
	MobileSelector  = ".sidebar-mobile"
	OverlaySelector = ".sidebar-overlay"

	overlayElements = ToggleSelector + ", " + MobileSelector + ", " + OverlaySelector

	// SwipeCloseDistance is the leftward travel that closes the mobile sidebar.
	SwipeCloseDistance = 50
)

// Listener names registered by the reconciler.
const (
	listenToggle = "toggle-sidebar"
	listenClose  = "close-sidebar"
	listenEscape = "escape-sidebar"
	listenSelect = "mobile-select"
	listenSwipe  = "swipe-close"
)

// Labeler resolves a dictionary key to display text.
type Labeler func(key string) string

// Reconciler applies the breakpoint policy to a document and manages the
// overlay sidebar of detail pages. It is not safe for concurrent use; callers
// serialise access with their own view lock.
type Reconciler struct {
	page     catalog.PageType
	detail   bool
	active   string
	label    Labeler
	onSelect func(id string)
	logger   *slog.Logger

	open       bool
	breakpoint Breakpoint
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLabeler sets the function used for overlay labels.
func WithLabeler(fn Labeler) Option {
	return func(r *Reconciler) {
		if fn != nil {
			r.label = fn
		}
	}
}

// WithSelectHandler is called with the item id when a mobile sidebar entry is
// clicked.
func WithSelectHandler(fn func(id string)) Option {
	return func(r *Reconciler) {
		r.onSelect = fn
	}
}

// WithLogger sets the reconciler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReconciler builds a reconciler for one page. id is empty on index pages.
func NewReconciler(page catalog.PageType, id string, opts ...Option) *Reconciler {
	r := &Reconciler{
		page:   page,
		detail: id != "",
		active: id,
		label:  func(key string) string { return key },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetItem changes the item flagged active in the mobile list on the next run.
// An empty id flags none; the overlay stays on detail pages.
func (r *Reconciler) SetItem(id string) {
	r.active = id
}

// Breakpoint returns the class applied by the last Reconcile.
func (r *Reconciler) Breakpoint() Breakpoint {
	return r.breakpoint
}

// Reconcile applies the layout for width and rebuilds or removes the overlay
// sidebar. Running it any number of times leaves one of each overlay element
// and one listener per target and event.
func (r *Reconciler) Reconcile(doc *dom.Document, width int) Breakpoint {
	b := Classify(width)
	r.breakpoint = b
	applyPolicy(doc, b)

	if b == Desktop || !r.page.HasDetail() || !r.detail {
		r.removeOverlay(doc)
	} else {
		r.buildOverlay(doc)
	}

	r.logger.Debug("layout reconciled", "item", r.active, "width", width, "breakpoint", b)
	return b
}

func (r *Reconciler) removeOverlay(doc *dom.Document) {
	doc.RemoveAll(overlayElements)
	r.detach(doc.Events())
	r.open = false
	dom.SetStyle(doc.Body(), "overflow", "")
}

func (r *Reconciler) detach(events *dom.Events) {
	events.Off(ToggleSelector, "click", listenToggle)
	events.Off(OverlaySelector, "click", listenClose)
	events.Off(dom.DocumentTarget, "keydown", listenEscape)
	events.Off(r.itemSelector(), "click", listenSelect)
	events.Off(MobileSelector, "touchmove", listenSwipe)
}

func (r *Reconciler) itemSelector() string {
	return MobileSelector + " ." + r.page.ItemClass()
}

func (r *Reconciler) buildOverlay(doc *dom.Document) {
	doc.RemoveAll(overlayElements)
	doc.AppendToBody(r.toggleMarkup() + r.mobileMarkup() + `<div class="sidebar-overlay" style="display: none;"></div>`)

	events := doc.Events()
	events.On(ToggleSelector, "click", listenToggle, func(dom.Event) {
		r.ToggleSidebar(doc)
	})
	events.On(OverlaySelector, "click", listenClose, func(dom.Event) {
		r.CloseSidebar(doc)
	})
	events.On(dom.DocumentTarget, "keydown", listenEscape, func(ev dom.Event) {
		if ev.Key == "Escape" {
			r.CloseSidebar(doc)
		}
	})
	attr := r.page.ItemAttr()
	events.On(r.itemSelector(), "click", listenSelect, func(ev dom.Event) {
		id, ok := ev.Current.Attr(attr)
		if !ok || id == "" {
			return
		}
		r.CloseSidebar(doc)
		if r.onSelect != nil {
			r.onSelect(id)
		}
	})
	events.On(MobileSelector, "touchmove", listenSwipe, func(ev dom.Event) {
		if ev.DeltaX > SwipeCloseDistance {
			r.CloseSidebar(doc)
		}
	})

	if r.open {
		r.OpenSidebar(doc)
	}
}

func (r *Reconciler) toggleMarkup() string {
	label := html.EscapeString(r.label("sidebarToggleLabel"))
	return `<button class="sidebar-toggle" type="button" aria-label="` + label + `">☰</button>`
}

func (r *Reconciler) mobileMarkup() string {
	var b strings.Builder
	listClass := strings.TrimSuffix(r.page.ItemClass(), "-item") + "-list"
	titleKey := r.page.SidebarTitleKey()

	b.WriteString(`<div class="sidebar-mobile">`)
	b.WriteString(`<h3 data-i18n="` + titleKey + `">` + html.EscapeString(r.label(titleKey)) + `</h3>`)
	b.WriteString(`<ul class="` + listClass + `">`)
	for _, item := range catalog.Items(r.page) {
		class := r.page.ItemClass()
		if item.ID == r.active {
			class += " active"
		}
		b.WriteString(`<li class="` + class + `" ` + r.page.ItemAttr() + `="` + html.EscapeString(item.ID) + `" data-i18n="` + item.LabelKey + `">`)
		b.WriteString(html.EscapeString(r.label(item.LabelKey)))
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}

// SidebarOpen reports whether the overlay sidebar is open.
func (r *Reconciler) SidebarOpen() bool {
	return r.open
}

// ToggleSidebar opens a closed sidebar and closes an open one.
func (r *Reconciler) ToggleSidebar(doc *dom.Document) {
	if r.open {
		r.CloseSidebar(doc)
		return
	}
	r.OpenSidebar(doc)
}

// OpenSidebar shows the overlay sidebar and locks body scrolling. It is a
// no-op when the overlay elements are missing.
func (r *Reconciler) OpenSidebar(doc *dom.Document) {
	toggle, mobile, overlay, ok := overlayParts(doc)
	if !ok {
		return
	}
	toggle.AddClass("active")
	mobile.AddClass("open")
	overlay.AddClass("open")
	dom.SetStyle(overlay, "display", "block")
	dom.SetStyle(doc.Body(), "overflow", "hidden")
	r.open = true
}

// CloseSidebar hides the overlay sidebar and restores body scrolling.
func (r *Reconciler) CloseSidebar(doc *dom.Document) {
	r.open = false
	dom.SetStyle(doc.Body(), "overflow", "")
	toggle, mobile, overlay, ok := overlayParts(doc)
	if !ok {
		return
	}
	toggle.RemoveClass("active")
	mobile.RemoveClass("open")
	overlay.RemoveClass("open")
	dom.SetStyle(overlay, "display", "none")
}

func overlayParts(doc *dom.Document) (toggle, mobile, overlay *goquery.Selection, ok bool) {
	toggle = doc.Find(ToggleSelector)
	mobile = doc.Find(MobileSelector)
	overlay = doc.Find(OverlaySelector)
	ok = toggle.Length() > 0 && mobile.Length() > 0 && overlay.Length() > 0
	return toggle, mobile, overlay, ok
}
