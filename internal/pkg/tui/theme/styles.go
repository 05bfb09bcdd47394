package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains the styles used by command output.
type Styles struct {
	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style

	// Layout
	Card lipgloss.Style

	// Bars
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(BrightTeal),

		Subtitle: lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(LightGray).
			Width(28),

		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Muted: lipgloss.NewStyle().
			Foreground(DimGray),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkTeal).
			Padding(0, 1),

		BarFilled: lipgloss.NewStyle().
			Foreground(Teal),

		BarEmpty: lipgloss.NewStyle().
			Foreground(DarkGray),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Error: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),
	}
}

// Signed renders text in the success style when v > 0 and in the error style
// otherwise.
func (s *Styles) Signed(v float64, text string) string {
	if v > 0 {
		return s.Success.Render(text)
	}
	return s.Error.Render(text)
}

// Payback renders a payback period, flagging an unrecoverable setup cost in
// the warning style.
func (s *Styles) Payback(recoverable bool, text string) string {
	if !recoverable {
		return s.Warning.Render(text)
	}
	return s.Value.Render(text)
}

// Row renders a "label  value" line.
func (s *Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value)
}
