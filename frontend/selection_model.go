package frontend

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/setupvm/dashcore"
)

type selectionOutcome int

const (
	selectionPending selectionOutcome = iota
	selectionConfirmed
	selectionQuit
	selectionInterrupted
)

// selectionModel is the Bubble Tea model of the selection screen
type selectionModel struct {
	names     []string
	selection *Selection
	keys      KeyMap
	styles    Styles
	help      help.Model
	outcome   selectionOutcome
}

func newSelectionModel(names []string, height int, keys KeyMap, styles Styles) *selectionModel {
	return &selectionModel{
		names:     names,
		selection: NewSelection(len(names), height),
		keys:      keys,
		styles:    styles,
		help:      help.New(),
	}
}

func (m *selectionModel) Init() tea.Cmd {
	return nil
}

func (m *selectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.selection.Resize(msg.Height)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Interrupt):
			m.outcome = selectionInterrupted
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			m.outcome = selectionQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			m.outcome = selectionConfirmed
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.selection.Up()
		case key.Matches(msg, m.keys.Down):
			m.selection.Down()
		case key.Matches(msg, m.keys.Toggle):
			m.selection.Toggle()
		}
	}
	return m, nil
}

func (m *selectionModel) line(index int) string {
	var b strings.Builder
	if index == m.selection.Cursor() {
		b.WriteString(m.styles.Marker.Render("▶"))
	} else {
		b.WriteString(" ")
	}
	if m.selection.Enabled(index) {
		b.WriteString(m.styles.Enabled.Render(" " + enabledGlyph() + " "))
	} else {
		b.WriteString(m.styles.Disabled.Render(" " + disabledGlyph() + " "))
	}
	b.WriteString(m.names[index])
	return b.String()
}

func enabledGlyph() string {
	if dashcore.Iconic {
		return "✔"
	}
	return "+"
}

func disabledGlyph() string {
	if dashcore.Iconic {
		return "✗"
	}
	return "-"
}

// View draws at most as many rows as the screen has; a screen shorter than
// the reserved rows shows only what fits.
func (m *selectionModel) View() string {
	if m.outcome != selectionPending {
		return ""
	}

	height := m.selection.height
	rows := make([]string, 0, max(height, 0))
	if height > 0 {
		rows = append(rows, m.styles.Header.Render("Select:"))
	}
	if height > 1 {
		rows = append(rows, "")
	}
	start, end := m.selection.Visible()
	for index := start; index < end; index++ {
		rows = append(rows, m.line(index))
	}
	if height >= reservedRows {
		rows = append(rows, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(rows, "\n")
}

// chosen maps the confirmed selection back onto the candidate steps.
func (m *selectionModel) chosen(candidates []dashcore.Step) []dashcore.Step {
	indexes := m.selection.Chosen()
	result := make([]dashcore.Step, 0, len(indexes))
	for _, index := range indexes {
		result = append(result, candidates[index])
	}
	return result
}
