package wizard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfirmDefaultsToYesOnEmptyLine(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("\n"), &out)

	result, err := prompter.Confirm(context.Background(), "update system", true)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !result {
		t.Error("Expected true for empty input with default yes")
	}
	if !strings.Contains(out.String(), "update system") || !strings.Contains(out.String(), "[y]") {
		t.Errorf("Prompt not shown as expected: %q", out.String())
	}
}

func TestConfirmReadsAnswers(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"No\n", false},
		{"maybe\nn\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			prompter := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
			result, err := prompter.Confirm(context.Background(), "question", true)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Expected %v for %q", tt.expected, tt.input)
			}
		})
	}
}

func TestConfirmEndOfInputUsesDefault(t *testing.T) {
	prompter := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	result, err := prompter.Confirm(context.Background(), "question", true)
	if err != nil || !result {
		t.Errorf("Expected default yes on EOF, got %v, %v", result, err)
	}

	result, err = prompter.Confirm(context.Background(), "question", false)
	if err != nil || result {
		t.Errorf("Expected default no on EOF, got %v, %v", result, err)
	}
}

func TestChooseEachKeepsOrder(t *testing.T) {
	prompter := NewPrompter(strings.NewReader("\nn\ny\n"), &bytes.Buffer{})

	answers, err := prompter.ChooseEach(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := []bool{true, false, true}
	for i := range expected {
		if answers[i] != expected[i] {
			t.Errorf("Answer %d: expected %v, got %v", i, expected[i], answers[i])
		}
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("tty gone")
}

func TestConfirmPropagatesReadErrors(t *testing.T) {
	prompter := NewPrompter(brokenReader{}, &bytes.Buffer{})

	_, err := prompter.Confirm(context.Background(), "question", true)
	if err == nil || err.Error() != "tty gone" {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestConfirmGivesUpWhenContextEnds(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	prompter := NewPrompter(reader, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := prompter.Confirm(ctx, "question", true)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Confirm kept waiting for input after cancel")
	}
}

func TestAnswersTypedAheadSurviveBetweenQuestions(t *testing.T) {
	reader, writer := io.Pipe()
	prompter := NewPrompter(reader, &bytes.Buffer{})
	go func() {
		writer.Write([]byte("n\n"))
		writer.Write([]byte("y\n"))
		writer.Close()
	}()

	answers, err := prompter.ChooseEach(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if answers[0] || !answers[1] {
		t.Errorf("Expected [false true], got %v", answers)
	}
}
