package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	lowStockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	outStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	disabledStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("8")).Foreground(lipgloss.Color("7"))
)
