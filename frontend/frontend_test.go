package frontend

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestVariantSelection(t *testing.T) {
	cases := []struct {
		name     string
		options  Options
		expected Kind
	}{
		{"unattended wins over fancy", Options{Unattended: true, Fancy: true, StdinTerminal: true, StdoutTerminal: true}, KindPlain},
		{"piped input", Options{Fancy: true, StdoutTerminal: true}, KindPlain},
		{"piped output", Options{Fancy: true, StdinTerminal: true}, KindPlain},
		{"fancy on a terminal", Options{Fancy: true, StdinTerminal: true, StdoutTerminal: true}, KindFancy},
		{"terminal without fancy prompts", Options{StdinTerminal: true, StdoutTerminal: true}, KindPrompting},
		{"nothing at all", Options{}, KindPlain},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if actual := Variant(c.options); actual != c.expected {
				t.Errorf("expected %s, got %s", c.expected, actual)
			}
		})
	}
}

func TestChooseBuildsMatchingFrontend(t *testing.T) {
	var progress bytes.Buffer

	plain, ok := Choose(Options{Unattended: true, Progress: &progress}).(*Plain)
	if !ok {
		t.Fatal("unattended should build a plain frontend")
	}
	if plain.prompter != nil {
		t.Error("unattended frontend must not prompt")
	}

	prompting, ok := Choose(Options{StdinTerminal: true, StdoutTerminal: true, Input: strings.NewReader(""), Progress: &progress}).(*Plain)
	if !ok || prompting.prompter == nil {
		t.Error("interactive terminal without fancy should prompt")
	}

	if _, ok := Choose(Options{Fancy: true, StdinTerminal: true, StdoutTerminal: true, Progress: &progress}).(*Fancy); !ok {
		t.Error("fancy on a terminal should build the full screen frontend")
	}
}

func TestFancyStopWithoutStepsIsSafe(t *testing.T) {
	var progress bytes.Buffer
	fancy := NewFancy(Options{Progress: &progress, Input: strings.NewReader(""), Output: &bytes.Buffer{}})

	chosen, err := fancy.SelectSteps(context.Background(), nil)
	if err != nil || len(chosen) != 0 {
		t.Errorf("empty selection should pass through, got %v, %v", chosen, err)
	}

	fancy.Stop()
	fancy.Stop()
	if fancy.Report() != "" {
		t.Errorf("expected empty report, got %q", fancy.Report())
	}
}
