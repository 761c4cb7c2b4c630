package components

import (
	"strings"

	"github.com/zenithtodo/zenith/internal/tui/styles"
)

// StatusBar renders a bottom help bar showing contextual key hints.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar for the given width and items. Items are
// joined with " • ". A non-empty notice is shown before the items. The bar
// is always a single line; hints past the width are cut.
func (s StatusBar) Render(width int, items []string, notice string) string {
	content := strings.Join(items, " • ")
	if notice != "" {
		if content != "" {
			content = notice + "  " + content
		} else {
			content = notice
		}
	}
	return styles.StatusBarStyle.Width(width).MaxHeight(1).Render(content)
}
