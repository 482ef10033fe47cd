package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/quantmind-br/appdex/internal/core"
)

// Color scheme for appdex
var (
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)

	Highlight = color.New(color.FgHiCyan, color.Bold)
	Muted     = color.New(color.Faint)
	Bold      = color.New(color.Bold)

	CheckMark = color.GreenString("✓")
	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")

	// Origin colors
	originMenu     = color.New(color.FgCyan)
	originPrograms = color.New(color.FgBlue)
	originExtra    = color.New(color.FgYellow)
)

// InitColors applies the configured color policy ("always", "never" or
// "auto") plus the usual environment conventions.
func InitColors(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
		return
	case "never":
		color.NoColor = true
		return
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		color.NoColor = true
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Fprintf(os.Stdout, "%s %s\n", CheckMark, fmt.Sprintf(format, args...))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "%s Error: %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Fprintf(os.Stdout, "! %s\n", fmt.Sprintf(format, args...))
}

// PrintInfo prints an informational message
func PrintInfo(format string, args ...interface{}) {
	Info.Fprintf(os.Stdout, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}

// PrintHeader prints a section header
func PrintHeader(text string) {
	Bold.Fprintf(os.Stdout, "%s\n", text)
}

// PrintKeyValue prints an aligned key/value diagnostic line
func PrintKeyValue(key, value string) {
	fmt.Fprintf(os.Stdout, "  %s %s\n", Muted.Sprintf("%-18s", key+":"), value)
}

// OriginLabel renders an entry origin as a short colored tag.
func OriginLabel(o core.Origin) string {
	switch o {
	case core.OriginStartMenu:
		return originMenu.Sprint("menu")
	case core.OriginProgramFiles:
		return originPrograms.Sprint("programs")
	default:
		return originExtra.Sprint("extra")
	}
}

// IconLabel renders an entry's icon for terminal output: the cached file
// path for extracted icons, the placeholder letter otherwise.
func IconLabel(e core.Entry) string {
	if e.Icon.Kind == core.IconFile {
		return e.Icon.Path
	}
	return fmt.Sprintf("[%c]", e.Icon.Placeholder.Letter)
}
