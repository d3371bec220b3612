package colors

import "github.com/charmbracelet/lipgloss"

// Catppuccin palette: Latte on light terminals, Mocha on dark ones.
var (
	Base     = lipgloss.AdaptiveColor{Light: "#eff1f5", Dark: "#1e1e2e"}
	Surface0 = lipgloss.AdaptiveColor{Light: "#ccd0da", Dark: "#313244"}
	Surface1 = lipgloss.AdaptiveColor{Light: "#bcc0cc", Dark: "#45475a"}
	Surface2 = lipgloss.AdaptiveColor{Light: "#acb0be", Dark: "#585b70"}
	Overlay0 = lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#6c7086"}
	Subtext0 = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"}
	Subtext1 = lipgloss.AdaptiveColor{Light: "#5c5f77", Dark: "#bac2de"}
	Text     = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"}

	Blue   = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	Sky    = lipgloss.AdaptiveColor{Light: "#04a5e5", Dark: "#89dceb"}
	Green  = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	Yellow = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	Peach  = lipgloss.AdaptiveColor{Light: "#fe640b", Dark: "#fab387"}
	Red    = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	Mauve  = lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"}
)
