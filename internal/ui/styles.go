package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the jog console
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - sent frames
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - active motion
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	MaxContentWidth  = 90 // Maximum content width before capping
)

// Shared styles for the jog console
var (
	// TitleStyle is for the console header line
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// CameraInfoStyle is for the camera identity line under the title
	CameraInfoStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// StatusLabelStyle is for status row labels (e.g. "Speed:")
	StatusLabelStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Width(10)

	// StatusValueStyle is for status row values
	StatusValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// MotionActiveStyle is for the currently running motion
	MotionActiveStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	// MotionIdleStyle is for the stopped state
	MotionIdleStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// FrameStyle is for the hex dump of the last frame sent
	FrameStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// ErrorStyle is for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)
)

// ConsoleBorderStyle returns the border style for the console box
func ConsoleBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(1, 2)
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}
