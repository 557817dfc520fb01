package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("124")).
			Padding(1, 2)

	modalTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	buttonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("28")).Padding(0, 1)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	nameStyle         = lipgloss.NewStyle().Bold(true)
	priceStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	availableStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unavailableStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)
