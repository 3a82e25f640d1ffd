package layout

import "github.com/skilllab/internal/dom"

const (
	detailContainers = ".games-container, .tools-container"
	pageContainers   = ".about-container, .home-layout"
	aboutContainers  = ".about-container"

	sidebarSelector = ".sidebar"
	contentSelector = ".game-content, .tool-content, .about-content, .home-content"
	adSelector      = ".ad-sidebar"
)

// Policy is the fixed layout for one breakpoint.
type Policy struct {
	Direction   string
	Gap         string
	PageGap     string
	ShowSidebar bool
	ShowAds     bool
}

var policies = map[Breakpoint]Policy{
	Desktop:     {Direction: "row", Gap: "30px", PageGap: "20px", ShowSidebar: true, ShowAds: true},
	Tablet:      {Direction: "row", Gap: "20px", PageGap: "20px", ShowSidebar: false, ShowAds: true},
	Mobile:      {Direction: "column", Gap: "0", PageGap: "0", ShowSidebar: false, ShowAds: false},
	MobileSmall: {Direction: "column", Gap: "0", PageGap: "0", ShowSidebar: false, ShowAds: false},
}

// PolicyFor returns the layout policy of a breakpoint.
func PolicyFor(b Breakpoint) Policy {
	return policies[b]
}

func applyPolicy(doc *dom.Document, b Breakpoint) {
	p := PolicyFor(b)

	dom.SetStyles(doc.Find(detailContainers),
		"display", "flex",
		"flex-direction", p.Direction,
		"gap", p.Gap,
		"width", "100%",
	)
	dom.SetStyles(doc.Find(pageContainers),
		"display", "flex",
		"flex-direction", p.Direction,
		"gap", p.PageGap,
	)
	if b == Desktop {
		dom.SetStyles(doc.Find(aboutContainers), "max-width", "1200px", "margin", "0 auto")
	} else {
		dom.SetStyles(doc.Find(aboutContainers), "max-width", "100%", "margin", "0")
	}

	sidebars := doc.Find(sidebarSelector)
	dom.SetStyle(sidebars, "order", "1")
	if p.ShowSidebar {
		dom.SetStyles(sidebars, "display", "block", "width", "250px", "flex-shrink", "0")
	} else {
		dom.SetStyle(sidebars, "display", "none")
	}

	contents := doc.Find(contentSelector)
	dom.SetStyle(contents, "order", "2")
	if p.Direction == "row" {
		dom.SetStyles(contents, "flex", "1", "min-width", "0", "width", "")
	} else {
		dom.SetStyles(contents, "flex", "", "min-width", "", "width", "100%")
	}

	ads := doc.Find(adSelector)
	dom.SetStyle(ads, "order", "3")
	if p.ShowAds {
		dom.SetStyles(ads, "display", "flex", "flex-direction", "column", "width", "200px", "flex-shrink", "0")
	} else {
		dom.SetStyle(ads, "display", "none")
	}
}
