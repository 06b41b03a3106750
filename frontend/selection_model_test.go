package frontend

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/setupvm/dashcore"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func candidates(names ...string) []dashcore.Step {
	result := make([]dashcore.Step, 0, len(names))
	for _, name := range names {
		result = append(result, dashcore.Step{Name: name})
	}
	return result
}

func feed(t *testing.T, model *selectionModel, messages ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range messages {
		var next tea.Model
		next, cmd = model.Update(msg)
		if next != model {
			t.Fatalf("model replaced by %T", next)
		}
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSelectionModelDisableOneAndConfirm(t *testing.T) {
	steps := candidates("s0", "s1", "s2", "s3", "s4")
	model := newSelectionModel(dashcore.Names(steps), 24, DefaultKeyMap(), NewStyles())

	cmd := feed(t, model, keyDown, keyDown, keySpace, keyEnter)
	if !isQuit(cmd) {
		t.Fatal("enter should end the program")
	}
	if model.outcome != selectionConfirmed {
		t.Fatalf("expected confirmed outcome, got %v", model.outcome)
	}

	chosen := model.chosen(steps)
	names := dashcore.Names(chosen)
	if strings.Join(names, ",") != "s0,s1,s3,s4" {
		t.Errorf("unexpected selection %v", names)
	}
}

func TestSelectionModelQuitAndInterrupt(t *testing.T) {
	model := newSelectionModel([]string{"a"}, 24, DefaultKeyMap(), NewStyles())
	if !isQuit(feed(t, model, keyQuit)) || model.outcome != selectionQuit {
		t.Errorf("q should quit, outcome %v", model.outcome)
	}

	model = newSelectionModel([]string{"a"}, 24, DefaultKeyMap(), NewStyles())
	if !isQuit(feed(t, model, keyCtrlC)) || model.outcome != selectionInterrupted {
		t.Errorf("ctrl+c should interrupt, outcome %v", model.outcome)
	}
}

func TestSelectionModelNavigationDoesNotQuit(t *testing.T) {
	model := newSelectionModel([]string{"a", "b"}, 24, DefaultKeyMap(), NewStyles())
	if cmd := feed(t, model, keyDown, keyUp, keySpace); cmd != nil {
		t.Error("navigation should not produce commands")
	}
	if model.outcome != selectionPending {
		t.Errorf("unexpected outcome %v", model.outcome)
	}
	if model.selection.Enabled(0) {
		t.Error("first entry should be toggled off")
	}
}

func TestSelectionModelViewShowsMarkersAndNames(t *testing.T) {
	model := newSelectionModel([]string{"update system", "vscode"}, 24, DefaultKeyMap(), NewStyles())
	feed(t, model, keySpace)

	view := model.View()
	lines := strings.Split(view, "\n")
	if !strings.Contains(lines[0], "Select:") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(lines[2], "▶") || !strings.Contains(lines[2], "update system") {
		t.Errorf("highlighted line wrong: %q", lines[2])
	}
	if strings.Contains(lines[3], "▶") || !strings.Contains(lines[3], "vscode") {
		t.Errorf("second line wrong: %q", lines[3])
	}
}

func TestSelectionModelViewFitsScreen(t *testing.T) {
	names := make([]string, 50)
	for i := range names {
		names[i] = "step"
	}
	for _, height := range []int{0, 1, 2, 3, 4, 10} {
		model := newSelectionModel(names, height, DefaultKeyMap(), NewStyles())
		feed(t, model, tea.WindowSizeMsg{Width: 80, Height: height})
		view := model.View()
		rows := 0
		if view != "" {
			rows = len(strings.Split(view, "\n"))
		}
		if rows > height {
			t.Errorf("height %d: view has %d rows", height, rows)
		}
	}
}

func TestSelectionModelClearsScreenWhenDone(t *testing.T) {
	model := newSelectionModel([]string{"a"}, 24, DefaultKeyMap(), NewStyles())
	feed(t, model, keyEnter)
	if model.View() != "" {
		t.Errorf("expected empty final view, got %q", model.View())
	}
}
