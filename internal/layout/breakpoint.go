// Package layout reconciles container layout with the viewport width.
package layout

// Breakpoint is a named viewport width class.
type Breakpoint string

const (
	Desktop     Breakpoint = "desktop"
	Tablet      Breakpoint = "tablet"
	Mobile      Breakpoint = "mobile"
	MobileSmall Breakpoint = "mobile-small"
)

// DefaultWidth is assumed when the client sends no viewport hint.
const DefaultWidth = 1280

// Inclusive lower bounds of each class.
const (
	DesktopMinWidth = 1200
	TabletMinWidth  = 768
	MobileMinWidth  = 480
)

// Classify maps a viewport width in CSS pixels to its breakpoint.
func Classify(width int) Breakpoint {
	switch {
	case width >= DesktopMinWidth:
		return Desktop
	case width >= TabletMinWidth:
		return Tablet
	case width >= MobileMinWidth:
		return Mobile
	default:
		return MobileSmall
	}
}

// Stacked reports whether containers stack vertically at this breakpoint.
func (b Breakpoint) Stacked() bool {
	return b == Mobile || b == MobileSmall
}
