package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-ott/dsp/ott"
)

var (
	idStyle    = lipgloss.NewStyle().Foreground(primaryColor).Width(16)
	nameStyle  = lipgloss.NewStyle().Width(20)
	valueStyle = lipgloss.NewStyle().Bold(true).Width(12).Align(lipgloss.Right)
	rangeStyle = lipgloss.NewStyle().Foreground(mutedColor).PaddingLeft(2)
)

// FormatValue renders a control value with its unit. Toggles read on/off.
func FormatValue(spec ott.ParamSpec, v float64) string {
	if spec.Toggle {
		if v != 0 {
			return "on"
		}
		return "off"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if spec.Unit == "" {
		return s
	}
	if spec.Unit == "%" || spec.Unit == ":1" {
		return s + spec.Unit
	}
	return s + " " + spec.Unit
}

// PrintParams writes one row per control of params in layout order.
func PrintParams(w io.Writer, params ott.Parameters) {
	for _, spec := range ott.Layout() {
		v, _ := params.Get(spec.ID)
		bounds := "on/off"
		if !spec.Toggle {
			bounds = fmt.Sprintf("[%s, %s]", FormatValue(spec, spec.Min), FormatValue(spec, spec.Max))
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(spec.ID),
			nameStyle.Render(spec.Name),
			valueStyle.Render(FormatValue(spec, v)),
			rangeStyle.Render(bounds),
		))
	}
}
