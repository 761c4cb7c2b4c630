package components

import (
	"fmt"
	"math"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders a fraction as a bar like: ■■■■□□□□ 50%
type Progress struct {
	Fraction float64
	Width    int // character width of the bar portion
}

// NewProgress creates a new Progress instance.
func NewProgress(fraction float64, width int) Progress {
	return Progress{
		Fraction: fraction,
		Width:    width,
	}
}

// View returns the rendered progress bar string.
func (p Progress) View() string {
	if p.Width <= 0 || math.IsNaN(p.Fraction) {
		return ""
	}

	f := math.Max(0, math.Min(1, p.Fraction))
	filled := int(math.Round(f * float64(p.Width)))
	percent := int(math.Round(f * 100))

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)
	return fmt.Sprintf("%s %d%%", bar, percent)
}
