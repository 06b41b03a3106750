package frontend

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/setupvm/dashcore"
)

// Styles holds the lipgloss styles of the full screen frontend
type Styles struct {
	Header   lipgloss.Style
	Marker   lipgloss.Style
	Enabled  lipgloss.Style
	Disabled lipgloss.Style

	StepRunning lipgloss.Style
	StepSuccess lipgloss.Style
	StepSkipped lipgloss.Style
	StepFailure lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Enabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		StepRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		StepSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StepSkipped: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StepFailure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (it Styles) ForStatus(status dashcore.StepStatus) lipgloss.Style {
	switch status {
	case dashcore.StepRunning:
		return it.StepRunning
	case dashcore.StepSuccess:
		return it.StepSuccess
	case dashcore.StepFailure:
		return it.StepFailure
	default:
		return it.StepSkipped
	}
}
