package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// uiOut receives status output. Tests swap it for a buffer.
var uiOut io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand   = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner   = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusLine is the icon and colours of one kind of status message.
type statusLine struct {
	icon string
	mark lipgloss.Style
	body lipgloss.Style
}

var (
	lineSuccess = statusLine{iconSuccess, lipgloss.NewStyle().Foreground(colorGreen), lipgloss.NewStyle()}
	lineError   = statusLine{iconError, lipgloss.NewStyle().Foreground(colorRed), lipgloss.NewStyle()}
	lineWarning = statusLine{iconWarning, lipgloss.NewStyle().Foreground(colorYellow), lipgloss.NewStyle().Foreground(colorYellow)}
	lineInfo    = statusLine{iconInfo, lipgloss.NewStyle().Foreground(colorGray), lipgloss.NewStyle()}
)

func (l statusLine) print(format string, args ...any) {
	fmt.Fprintln(uiOut, l.mark.Render(l.icon)+" "+l.body.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { lineSuccess.print(format, args...) }
func printError(format string, args ...any)   { lineError.print(format, args...) }
func printWarning(format string, args ...any) { lineWarning.print(format, args...) }
func printInfo(format string, args ...any)    { lineInfo.print(format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printStats prints a one-line summary of a rendered sheet, e.g.
// "4 sections · 12 lines · key G · cached".
func printStats(sections, lines int, key string, cached bool) {
	var parts []string
	if sections > 0 {
		parts = append(parts, plural(sections, "section"))
	}
	if lines > 0 {
		parts = append(parts, plural(lines, "line"))
	}
	if key != "" {
		parts = append(parts, "key "+key)
	}

	status := lipgloss.NewStyle().Foreground(colorGray).Render(iconFresh)
	if cached {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render(iconCached)
	}

	sep := styleDim.Render(" · ")
	for i, p := range parts {
		parts[i] = styleDim.Render(p)
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(append(parts, status), sep))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}
