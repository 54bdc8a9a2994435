package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("244")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")
	colorRise    = lipgloss.Color("203")
	colorDrop    = lipgloss.Color("42")
	colorBorder  = lipgloss.Color("240")
)

func styleBrand() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleSuccess() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSuccess)
}

func stylePanel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)
}

func styleButton(active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	if active {
		s = s.Bold(true).Foreground(lipgloss.Color("231")).Background(colorAccent)
	}
	return s
}

func styleToast(kind string) lipgloss.Style {
	if kind == toastError {
		return lipgloss.NewStyle().Bold(true).Foreground(colorError)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
}
