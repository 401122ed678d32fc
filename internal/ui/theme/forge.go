package theme

import "github.com/charmbracelet/lipgloss"

var (
	Coal   = lipgloss.Color("#0f172a")
	Slate  = lipgloss.Color("#1e293b")
	Iron   = lipgloss.Color("#334155")
	Ash    = lipgloss.Color("#64748b")
	Silver = lipgloss.Color("#cbd5e1")
	Amber  = lipgloss.Color("#f59e0b")
	Ember  = lipgloss.Color("#d97706")
	Gold   = lipgloss.Color("#fbbf24")
	Blood  = lipgloss.Color("#f87171")

	App = lipgloss.NewStyle().
		Background(Coal).
		Foreground(Silver).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Iron).
		Background(Slate).
		Foreground(Silver).
		Padding(1)

	PaneActive = Pane.BorderForeground(Amber)

	Title  = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Ash)
	Hot    = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	Danger = lipgloss.NewStyle().Foreground(Blood)
	Quote  = lipgloss.NewStyle().Foreground(Gold).Italic(true)
)
