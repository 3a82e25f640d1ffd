package nav

import (
	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/dom"
)

const (
	listenGame = "select-game"
	listenTool = "select-tool"
	listenPage = "select-page"
	listenLang = "switch-language"
)

// Bind attaches the click listeners of header and sidebars. Targets are read
// only from data-game, data-tool, data-page and data-lang attributes. Binding
// twice replaces the previous listeners.
func (c *Controller) Bind() {
	events := c.doc.Events()

	events.On(".sidebar [data-game]", "click", listenGame, func(ev dom.Event) {
		if id, ok := ev.Current.Attr(catalog.PageGames.ItemAttr()); ok {
			_ = c.SelectGame(id)
		}
	})
	events.On(".sidebar [data-tool]", "click", listenTool, func(ev dom.Event) {
		if id, ok := ev.Current.Attr(catalog.PageTools.ItemAttr()); ok {
			_ = c.SelectTool(id)
		}
	})
	events.On("[data-page]", "click", listenPage, func(ev dom.Event) {
		id, ok := ev.Current.Attr("data-page")
		if !ok || c.SelectPage(id) != nil {
			return
		}
		if href, ok := ev.Current.Attr("href"); ok && c.navigate != nil {
			c.navigate(href)
		}
	})
	events.On(langBtnSelector+"[data-lang]", "click", listenLang, func(ev dom.Event) {
		code, _ := ev.Current.Attr("data-lang")
		if c.switchLang == nil {
			return
		}
		if err := c.switchLang(code); err != nil {
			c.logger.Warn("language switch rejected", "code", code, "error", err)
		}
	})
}
