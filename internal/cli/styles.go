package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// headerStyle for the document line above an outline
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// dimStyle for page numbers and metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for written files
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for skipped files
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for failures
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
