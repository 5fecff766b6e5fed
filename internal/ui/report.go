package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ConfigurePalette downgrades rendering to plain text when the
// environment opts out of color (NO_COLOR, CLICOLOR=0).
func ConfigurePalette() {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// RenderCheck renders one check line of a preflight report.
func RenderCheck(name string, ok bool, detail string) string {
	icon := RenderPassIcon()
	if !ok {
		icon = RenderFailIcon()
	}
	line := fmt.Sprintf("%s %s", icon, name)
	if detail != "" {
		line += " " + RenderMuted("("+detail+")")
	}
	return line
}

// RenderReport renders a titled check report with a summary line.
func RenderReport(title string, lines []string, passed bool) string {
	var b strings.Builder
	b.WriteString(RenderCategory(title) + "\n")
	b.WriteString(RenderSeparator() + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(RenderSeparator() + "\n")
	if passed {
		b.WriteString(RenderPass("All checks passed") + "\n")
	} else {
		b.WriteString(RenderFail("Checks failed") + "\n")
	}
	return b.String()
}
