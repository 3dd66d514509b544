package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - keys
	colorGreen = lipgloss.Color("35")  // Green - success
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - origins
	colorDim   = lipgloss.Color("240") // Dim gray - defaults
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleOrigin  = lipgloss.NewStyle().Foreground(colorGray)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// row is one line of a property table.
type row struct {
	name   string
	value  string
	origin string
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printRows renders rows as aligned columns. Rows without a stored value are
// dimmed.
func printRows(w io.Writer, rows []row) {
	nameWidth, valueWidth := 0, 0
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.name))
		valueWidth = max(valueWidth, lipgloss.Width(r.value))
	}
	keyStyle := styleKey.Width(nameWidth + 2)
	for _, r := range rows {
		value := styleValue.Width(valueWidth + 2).Render(r.value)
		origin := styleOrigin.Render(r.origin)
		if r.origin == originDefault {
			value = styleDim.Width(valueWidth + 2).Render(r.value)
			origin = styleDim.Render(r.origin)
		}
		fmt.Fprintln(w, keyStyle.Render(r.name)+value+origin)
	}
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow+" "+fmt.Sprintf(format, args...)))
}
