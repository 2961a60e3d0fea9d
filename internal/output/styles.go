package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: set names, paths, options.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "create" file status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "modify" file status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "delete" file status.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (set names, file paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleBold styles headings and the tree root.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleMuted styles descriptions and structural chrome.
	StyleMuted = lipgloss.NewStyle().Faint(true)
)

// OpStyle returns the style for a diff operation name.
func OpStyle(op string) lipgloss.Style {
	switch op {
	case "create":
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case "modify":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case "delete":
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
