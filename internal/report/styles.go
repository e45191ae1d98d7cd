package report

import "github.com/charmbracelet/lipgloss"

// Styles controls terminal styling of the rendered report. Plain styles
// leave the text untouched, which is what the email body and the default
// stdout mode use.
type Styles struct {
	Rule    lipgloss.Style
	Title   lipgloss.Style
	Section lipgloss.Style
	Alert   lipgloss.Style
}

// PlainStyles renders every element verbatim.
func PlainStyles() Styles {
	return Styles{
		Rule:    lipgloss.NewStyle(),
		Title:   lipgloss.NewStyle(),
		Section: lipgloss.NewStyle(),
		Alert:   lipgloss.NewStyle(),
	}
}

// ColorStyles highlights rules, titles, and section headers for terminal
// output (--color).
func ColorStyles() Styles {
	return Styles{
		Rule:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Section: lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		Alert:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}
