package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Help styles
var (
	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				MarginTop(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(midColor).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(highColor).
			Bold(true)
)

type helpEntry struct {
	name string
	help string
}

// StyledHelpPrinter returns a kong help printer with lipgloss styling. It
// lists the subcommands of the selected node, its positional arguments and
// its flags.
func StyledHelpPrinter(title string) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		var sb strings.Builder
		sb.WriteString(TitleStyle.Render(title))
		sb.WriteString("\n")
		if node.Help != "" {
			sb.WriteString(helpDescStyle.Render(node.Help))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.Summary())
		sb.WriteString("\n")

		writeSection(&sb, "Commands:", commands(node), helpFlagStyle)
		writeSection(&sb, "Arguments:", arguments(node), helpArgStyle)
		writeSection(&sb, "Flags:", flags(node), helpFlagStyle)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

func writeSection(sb *strings.Builder, title string, entries []helpEntry, style lipgloss.Style) {
	if len(entries) == 0 {
		return
	}
	width := 0
	for _, e := range entries {
		width = max(width, len(e.name))
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))
		if e.help != "" {
			sb.WriteString(strings.Repeat(" ", width-len(e.name)+2))
			sb.WriteString(e.help)
		}
		sb.WriteString("\n")
	}
}

func commands(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		out = append(out, helpEntry{name: child.Name, help: child.Help})
	}
	return out
}

func arguments(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, arg := range node.Positional {
		out = append(out, helpEntry{name: arg.Summary(), help: arg.Help})
	}
	return out
}

func flags(node *kong.Node) []helpEntry {
	out := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}
	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}
			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			if !f.IsBool() {
				name += "=" + f.FormatPlaceHolder()
			}
			help := f.Help
			if f.HasDefault && f.Default != "" {
				help += " (default: " + f.Default + ")"
			}
			out = append(out, helpEntry{name: name, help: help})
		}
	}
	return out
}
