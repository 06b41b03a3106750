package frontend

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/progresscore"
)

// Messages for Bubble Tea
type frameMsg time.Time
type stopMsg struct{}

// progressModel repaints the tail of the status log on every tick. It only
// reads the log; the goroutine running steps is its sole writer.
type progressModel struct {
	log         *progresscore.StatusLog
	frames      []string
	frame       int
	tick        time.Duration
	height      int
	keys        KeyMap
	styles      Styles
	onInterrupt func()
	interrupted bool
	stopping    bool
}

func newProgressModel(log *progresscore.StatusLog, tick time.Duration, height int, keys KeyMap, styles Styles, onInterrupt func()) *progressModel {
	return &progressModel{
		log:         log,
		frames:      dashcore.SpinnerFrames(),
		tick:        tick,
		height:      height,
		keys:        keys,
		styles:      styles,
		onInterrupt: onInterrupt,
	}
}

func (m *progressModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *progressModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) && !m.interrupted {
			m.interrupted = true
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
		}

	case frameMsg:
		if m.stopping {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(m.frames)
		return m, m.tickCmd()

	case stopMsg:
		m.stopping = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *progressModel) glyph(status dashcore.StepStatus) string {
	if status == dashcore.StepRunning {
		return m.frames[m.frame]
	}
	return status.String()
}

// View always tails the log: the most recent entries that fit the height.
func (m *progressModel) View() string {
	if m.stopping {
		return ""
	}

	entries := m.log.Tail(m.height)
	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		style := m.styles.ForStatus(entry.Status)
		rows = append(rows, style.Render(m.glyph(entry.Status))+" "+entry.Name)
	}
	return strings.Join(rows, "\n")
}
