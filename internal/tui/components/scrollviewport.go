package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// ScrollViewport is a fixed-height window over pre-rendered lines with a
// scrollbar in the last column. Callers move it with EnsureVisible.
type ScrollViewport struct {
	viewport viewport.Model
	lines    []string
	width    int // including the scrollbar column
	height   int
}

// NewScrollViewport creates a viewport width columns wide (one of them the
// scrollbar) and height lines tall.
func NewScrollViewport(width, height int) ScrollViewport {
	s := ScrollViewport{viewport: viewport.New(0, 0)}
	s.SetSize(width, height)
	return s
}

// SetSize resizes the window and keeps the offset in range.
func (s *ScrollViewport) SetSize(width, height int) {
	s.width = max(width, 1)
	s.height = max(height, 1)
	s.viewport.Width = s.ContentWidth()
	s.viewport.Height = s.height
	s.viewport.SetContent(strings.Join(s.lines, "\n"))
	s.viewport.SetYOffset(s.viewport.YOffset)
}

// SetLines replaces the content. The offset is kept, clamped to the new
// length.
func (s *ScrollViewport) SetLines(lines []string) {
	s.lines = append([]string(nil), lines...)
	s.viewport.SetContent(strings.Join(s.lines, "\n"))
	s.viewport.SetYOffset(s.viewport.YOffset)
}

// EnsureVisible scrolls so line is on screen. With center the line is
// placed mid-window, otherwise the window moves as little as possible.
func (s *ScrollViewport) EnsureVisible(line int, center bool) {
	if line < 0 || line >= len(s.lines) {
		return
	}
	if center {
		s.viewport.SetYOffset(max(line-s.height/2, 0))
		return
	}

	top := s.viewport.YOffset
	switch {
	case line < top:
		s.viewport.SetYOffset(line)
	case line > top+s.height-1:
		s.viewport.SetYOffset(line - s.height + 1)
	}
}

// YOffset returns the first visible line.
func (s ScrollViewport) YOffset() int {
	return s.viewport.YOffset
}

// Height returns the number of lines View renders.
func (s ScrollViewport) Height() int {
	return s.height
}

// ContentWidth returns the width left for content.
func (s ScrollViewport) ContentWidth() int {
	return max(s.width-1, 0)
}

// View renders exactly Height lines, each padded to the content width and
// followed by the scrollbar.
func (s ScrollViewport) View() string {
	content := strings.Split(s.viewport.View(), "\n")
	bar := strings.Split(RenderScrollbar(s.height, len(s.lines), s.viewport.YOffset), "\n")
	cw := s.ContentWidth()

	rows := make([]string, s.height)
	for i := range rows {
		var line, gutter string
		if i < len(content) {
			line = content[i]
		}
		if i < len(bar) {
			gutter = bar[i]
		}
		if pad := cw - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[i] = line + gutter
	}
	return strings.Join(rows, "\n")
}
