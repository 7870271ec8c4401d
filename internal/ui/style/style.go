// Package style holds the palette and glyphs shared by the logger and renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Ink    = lipgloss.Color("#111827")
	Slate  = lipgloss.Color("#667085")
	Teal   = lipgloss.Color("#0E9F9A")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Reload  = "↻"
)

// URL renders an address the way the dev server banner shows it.
var URL = lipgloss.NewStyle().Foreground(Teal).Underline(true)
