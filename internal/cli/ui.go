package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary accents
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// styleTitle for main headings.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleDim for secondary/muted text.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	// styleWarning for warning messages.
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printFile prints a generated file path, indented.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(path))
}

// swatch renders a color sample with label text, using the pair's fill
// as background and text color as foreground. Hex colors map directly;
// named SVG colors degrade to the terminal default.
func swatch(label, fill, text string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(fill)).
		Foreground(lipgloss.Color(text)).
		Padding(0, 1).
		Render(label)
}
