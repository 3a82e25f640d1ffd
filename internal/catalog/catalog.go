// Package catalog lists the site's page types, games and tools.
package catalog

// PageType identifies a page family. Detail pages of the games and tools
// families carry an item id.
type PageType string

const (
	PageHome  PageType = "home"
	PageGames PageType = "games"
	PageTools PageType = "tools"
	PageAbout PageType = "about"
)

// Item is one game or tool.
type Item struct {
	ID string
	// LabelKey is the dictionary key of the sidebar label.
	LabelKey string
	// DescKey is the dictionary key of the one-line description.
	DescKey string
	// PanelID is the id of the element showing the item on its page.
	PanelID string
}

var games = []Item{
	{ID: "fps-aim", LabelKey: "game1", DescKey: "fpsAimDesc", PanelID: "fpsAimGame"},
	{ID: "reaction-test", LabelKey: "game2", DescKey: "reactionTestDesc", PanelID: "reactionTestGame"},
	{ID: "memory-game", LabelKey: "game3", DescKey: "memoryGameDesc", PanelID: "memoryGame"},
	{ID: "color-match", LabelKey: "game4", DescKey: "colorMatchDesc", PanelID: "colorMatchGame"},
}

var tools = []Item{
	{ID: "color-palette", LabelKey: "tool1", DescKey: "colorPaletteAboutDesc", PanelID: "colorPaletteTool"},
	{ID: "keywords", LabelKey: "tool2", DescKey: "keywordsAboutDesc", PanelID: "keywordsTool"},
	{ID: "unit-converter", LabelKey: "tool3", DescKey: "unitConverterAboutDesc", PanelID: "unitConverterTool"},
	{ID: "text-transformer", LabelKey: "tool4", DescKey: "textTransformerAboutDesc", PanelID: "textTransformerTool"},
}

// AboutPages are the footer pages rendered from markdown.
var AboutPages = []string{"about", "contact", "privacy", "terms"}

// Games returns the game list in display order.
func Games() []Item {
	return append([]Item(nil), games...)
}

// Tools returns the tool list in display order.
func Tools() []Item {
	return append([]Item(nil), tools...)
}

// Items returns the selectable items of a page type.
func Items(page PageType) []Item {
	switch page {
	case PageGames:
		return Games()
	case PageTools:
		return Tools()
	default:
		return nil
	}
}

// Lookup finds an item by id within a page type.
func Lookup(page PageType, id string) (Item, bool) {
	for _, item := range Items(page) {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// HasDetail reports whether pages of this type select an item.
func (p PageType) HasDetail() bool {
	return p == PageGames || p == PageTools
}

// ItemAttr is the data attribute carrying item ids for the page type.
func (p PageType) ItemAttr() string {
	switch p {
	case PageGames:
		return "data-game"
	case PageTools:
		return "data-tool"
	default:
		return ""
	}
}

// ItemClass is the class of sidebar entries for the page type.
func (p PageType) ItemClass() string {
	switch p {
	case PageGames:
		return "game-item"
	case PageTools:
		return "tool-item"
	default:
		return ""
	}
}

// SidebarTitleKey is the dictionary key of the sidebar heading.
func (p PageType) SidebarTitleKey() string {
	if p == PageTools {
		return "toolSidebarTitle"
	}
	return "sidebarTitle"
}

// ParsePageType maps a route segment to a page type.
func ParsePageType(raw string) (PageType, bool) {
	switch PageType(raw) {
	case PageHome, PageGames, PageTools, PageAbout:
		return PageType(raw), true
	case "":
		return PageHome, true
	default:
		return "", false
	}
}
