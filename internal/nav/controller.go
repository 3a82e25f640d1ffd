// Package nav keeps page, game and tool selection exclusive within a
// composed document.
package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/dom"
	"github.com/skilllab/internal/locale"
)

// ErrUnknownSelection is returned when an id names no page, game or tool.
var ErrUnknownSelection = errors.New("unknown selection")

const (
	// OutputSelector marks the element of a panel that receives collaborator output.
	OutputSelector = "[data-output]"

	pageSelector    = ".page"
	navItemSelector = ".nav-item"
	langBtnSelector = ".lang-btn"
)

// Resetter prepares the panel content of one game or tool.
type Resetter interface {
	Reset(id string, lang locale.Code) (string, error)
}

// Controller applies selections to a document. It is not safe for concurrent
// use; the owning view serialises calls.
type Controller struct {
	doc    *dom.Document
	page   catalog.PageType
	logger *slog.Logger

	resetters  map[catalog.PageType]Resetter
	language   func() locale.Code
	afterMove  func(id string)
	switchLang func(code string) error
	navigate   func(path string)

	selected string
}

// Option configures a Controller.
type Option func(*Controller)

// WithResetter registers the collaborator for a page type's items.
func WithResetter(page catalog.PageType, r Resetter) Option {
	return func(c *Controller) {
		if r != nil {
			c.resetters[page] = r
		}
	}
}

// WithLanguage supplies the active language for collaborator output.
func WithLanguage(fn func() locale.Code) Option {
	return func(c *Controller) {
		if fn != nil {
			c.language = fn
		}
	}
}

// WithAfterSelect runs after every page, game or tool transition, known id or
// not. It receives the shown game or tool id.
func WithAfterSelect(fn func(id string)) Option {
	return func(c *Controller) {
		c.afterMove = fn
	}
}

// WithLanguageSwitch handles clicks on language buttons.
func WithLanguageSwitch(fn func(code string) error) Option {
	return func(c *Controller) {
		c.switchLang = fn
	}
}

// WithNavigate receives the href of a clicked page nav item once the page is
// selected.
func WithNavigate(fn func(path string)) Option {
	return func(c *Controller) {
		c.navigate = fn
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller for doc, rendered as page.
func New(doc *dom.Document, page catalog.PageType, opts ...Option) *Controller {
	c := &Controller{
		doc:       doc,
		page:      page,
		logger:    slog.Default(),
		resetters: make(map[catalog.PageType]Resetter),
		language:  func() locale.Code { return locale.DefaultLanguage },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Selected returns the id of the shown game or tool, empty when none is.
func (c *Controller) Selected() string {
	return c.selected
}

// SelectGame shows the game panel for id.
func (c *Controller) SelectGame(id string) error {
	return c.selectItem(catalog.PageGames, id)
}

// SelectTool shows the tool panel for id.
func (c *Controller) SelectTool(id string) error {
	return c.selectItem(catalog.PageTools, id)
}

func (c *Controller) selectItem(page catalog.PageType, id string) error {
	defer func() {
		if c.afterMove != nil {
			c.afterMove(c.selected)
		}
	}()

	items := catalog.Items(page)
	itemSel := "." + page.ItemClass()
	c.doc.Find(itemSel).RemoveClass("active")
	for _, item := range items {
		dom.SetStyle(c.doc.Find("#"+item.PanelID), "display", "none")
	}

	item, ok := catalog.Lookup(page, id)
	if !ok {
		c.selected = ""
		c.logger.Info("unknown selection", "group", page, "target", id)
		return fmt.Errorf("%w: %s %q", ErrUnknownSelection, page, id)
	}
	c.selected = item.ID

	c.doc.Find(fmt.Sprintf(`%s[%s=%q]`, itemSel, page.ItemAttr(), item.ID)).AddClass("active")
	panel := c.doc.Find("#" + item.PanelID)
	dom.SetStyle(panel, "display", "block")

	if r, ok := c.resetters[page]; ok {
		out, err := r.Reset(item.ID, c.language())
		if err != nil {
			c.logger.Warn("panel reset failed", "group", page, "target", item.ID, "error", err)
		} else {
			panel.Find(OutputSelector).SetHtml(out)
		}
	}
	return nil
}

// SelectPage activates the page section and nav item for id.
func (c *Controller) SelectPage(id string) error {
	defer func() {
		if c.afterMove != nil {
			c.afterMove(c.selected)
		}
	}()

	c.doc.Find(pageSelector).RemoveClass("active")
	c.doc.Find(navItemSelector).RemoveClass("active")

	page, ok := catalog.ParsePageType(id)
	if !ok || id == "" {
		c.logger.Info("unknown selection", "target", id)
		return fmt.Errorf("%w: page %q", ErrUnknownSelection, id)
	}
	name := string(page)
	c.doc.Find("#" + name + "Page").AddClass("active")
	c.doc.Find("#nav" + strings.ToUpper(name[:1]) + name[1:]).AddClass("active")
	return nil
}

// MarkNavigation flags the nav item whose link points at the section of path.
func (c *Controller) MarkNavigation(path string) {
	section := Section(path)
	c.doc.Find(navItemSelector).Each(func(_ int, item *goquery.Selection) {
		href, _ := item.Attr("href")
		if href != "" && Section(href) == section {
			item.AddClass("active")
		} else {
			item.RemoveClass("active")
		}
	})
}

// MarkLanguage flags the language button for code.
func (c *Controller) MarkLanguage(code locale.Code) {
	c.doc.Find(langBtnSelector).Each(func(_ int, btn *goquery.Selection) {
		if lang, _ := btn.Attr("data-lang"); locale.Code(lang) == code {
			btn.AddClass("active")
		} else {
			btn.RemoveClass("active")
		}
	})
}

// Section returns the site section of a path: home, games, tools or about.
// A leading language segment is ignored.
func Section(path string) string {
	path = strings.SplitN(path, "?", 2)[0]
	path = strings.SplitN(path, "#", 2)[0]
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) > 0 && (segments[0] == string(locale.LanguageKorean) || segments[0] == string(locale.LanguageEnglish)) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return string(catalog.PageHome)
	}
	first := strings.TrimSuffix(segments[0], ".html")
	if first == "index" {
		return string(catalog.PageHome)
	}
	return first
}
