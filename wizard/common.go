package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/joshyorko/setupvm/pretty"
)

const (
	UNIX_NEWLINE    = "\n"
	WINDOWS_NEWLINE = "\r\n"

	newline = '\n'
)

type Validator func(string) bool

type reply struct {
	text string
	err  error
}

// Prompter asks line based questions. One reader goroutine owns the input
// for the whole life of the prompter, so typed-ahead answers are not lost
// between questions and a waiting question can be abandoned.
type Prompter struct {
	source  *bufio.Reader
	out     io.Writer
	replies chan reply
	reading sync.Once
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		source:  bufio.NewReader(in),
		out:     out,
		replies: make(chan reply),
	}
}

func (it *Prompter) readLines() {
	defer close(it.replies)
	for {
		text, err := it.source.ReadString(newline)
		it.replies <- reply{text, err}
		if err != nil {
			return
		}
	}
}

// readLine waits for the next input line or for the context to end. The
// reader goroutine stays blocked on its input after a cancel.
func (it *Prompter) readLine(ctx context.Context) (string, error) {
	it.reading.Do(func() {
		go it.readLines()
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-it.replies:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}

func (it *Prompter) say(form string, details ...interface{}) {
	fmt.Fprintf(it.out, form, details...)
}

func (it *Prompter) memberValidation(members []string, erratic string) Validator {
	return func(input string) bool {
		for _, member := range members {
			if input == member {
				return true
			}
		}
		it.say("%s%s%s\n\n", pretty.Red, erratic, pretty.Reset)
		return false
	}
}

// Ask shows the question with its default and reads one line. An empty line
// selects the default; so does end of input, once nothing more can be read.
// A canceled context ends the wait with the context error.
func (it *Prompter) Ask(ctx context.Context, question, defaults string, validator Validator) (string, error) {
	for {
		it.say("%s? %s%s %s[%s]:%s ", pretty.Green, pretty.White, question, pretty.Grey, defaults, pretty.Reset)
		reply, err := it.readLine(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			it.say("\n")
			return "", err
		}
		if errors.Is(err, io.EOF) {
			it.say("\n")
			if len(strings.TrimSpace(reply)) == 0 {
				return defaults, nil
			}
		}
		if reply == UNIX_NEWLINE || reply == WINDOWS_NEWLINE {
			reply = defaults
		}
		reply = strings.TrimSpace(reply)
		if !validator(reply) {
			if errors.Is(err, io.EOF) {
				return defaults, nil
			}
			continue
		}
		return reply, nil
	}
}
