// Package cli holds the terminal presentation of the ott command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#E8A317") // amber
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	lowColor     = lipgloss.Color("#D9534F")
	midColor     = lipgloss.Color("#5CB85C")
	highColor    = lipgloss.Color("#5BC0DE")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lowColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	bandStyles = [...]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lowColor),
		lipgloss.NewStyle().Foreground(midColor),
		lipgloss.NewStyle().Foreground(highColor),
	}
)

// KeyValue renders a styled "key value" pair.
func KeyValue(key, value string) string {
	return KeyStyle.Render(key) + " " + ValueStyle.Render(value)
}

// PrintVersion prints version and CPU feature information.
func PrintVersion(w io.Writer, version string, features []string) {
	fmt.Fprintln(w, TitleStyle.Render("ott: three-band upward/downward compressor"))
	fmt.Fprintln(w, KeyValue("Version:", version))
	if len(features) == 0 {
		features = []string{"generic"}
	}
	fmt.Fprintln(w, KeyValue("SIMD:", strings.Join(features, " ")))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
