package components

import (
	"strings"

	"github.com/zenithtodo/zenith/internal/tui/styles"
)

const (
	scrollTrack = "│"
	scrollThumb = "█"
)

// RenderScrollbar draws a one column scrollbar for viewHeight visible lines
// out of contentHeight, scrolled to yOffset. Content that fits renders a
// blank gutter so the layout width stays put.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}
	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	thumbSize := max(1, viewHeight*viewHeight/contentHeight)
	room := viewHeight - thumbSize
	top := yOffset * room / (contentHeight - viewHeight)
	top = min(max(top, 0), room)

	cells := make([]string, viewHeight)
	for i := range cells {
		if i >= top && i < top+thumbSize {
			cells[i] = scrollThumb
		} else {
			cells[i] = styles.SubtleStyle.Render(scrollTrack)
		}
	}
	return strings.Join(cells, "\n")
}
