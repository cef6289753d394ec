// Package style provides shared UI styling primitives including colors and
// icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Teal   = lipgloss.Color("#0D9488")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(Green)
	failureStyle = lipgloss.NewStyle().Foreground(Red)
	dimStyle     = lipgloss.NewStyle().Foreground(Slate)
)

// Header renders a section heading.
func Header(s string) string { return headerStyle.Render(s) }

// Success renders a success line with a leading check mark.
func Success(s string) string { return successStyle.Render(Check + " " + s) }

// Failure renders a failure line with a leading cross.
func Failure(s string) string { return failureStyle.Render(Cross + " " + s) }

// Dim renders secondary information.
func Dim(s string) string { return dimStyle.Render(s) }
