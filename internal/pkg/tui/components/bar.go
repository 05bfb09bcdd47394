package components

import (
	"strings"

	"github.com/emiliopalmerini/assistroi/internal/pkg/tui/theme"
)

// Bar is a horizontal bar scaled against Max.
type Bar struct {
	Width  int
	Value  float64
	Max    float64
	styles *theme.Styles
}

// NewBar creates a bar of width cells.
func NewBar(width int, value, max float64) Bar {
	return Bar{
		Width:  width,
		Value:  value,
		Max:    max,
		styles: theme.Default(),
	}
}

// Filled is the number of cells drawn as filled. Negative values and a
// non-positive Max draw an empty bar.
func (b Bar) Filled() int {
	if b.Max <= 0 || b.Value <= 0 {
		return 0
	}
	n := int(b.Value / b.Max * float64(b.Width))
	if n > b.Width {
		return b.Width
	}
	return n
}

// View renders the bar
func (b Bar) View() string {
	filled := b.Filled()
	var sb strings.Builder
	sb.WriteString(b.styles.BarFilled.Render(strings.Repeat("█", filled)))
	sb.WriteString(b.styles.BarEmpty.Render(strings.Repeat("░", b.Width-filled)))
	return sb.String()
}
