package steps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
)

// AppendFile adds text to a file unless the marker is already in it.
type AppendFile struct {
	Path   string `yaml:"path"`
	Marker string `yaml:"marker"`
	Text   string `yaml:"text"`
}

// WriteFile creates a file unless it exists, then runs the action commands.
type WriteFile struct {
	Path string `yaml:"path"`
	Mode string `yaml:"mode,omitempty"`
	Text string `yaml:"text"`
}

// Action is one tracked invocation of a catalog step.
type Action struct {
	Name       string      `yaml:"name"`
	Check      *Check      `yaml:"check,omitempty"`
	Commands   []string    `yaml:"commands,omitempty"`
	Script     string      `yaml:"script,omitempty"`
	AppendFile *AppendFile `yaml:"append_file,omitempty"`
	WriteFile  *WriteFile  `yaml:"write_file,omitempty"`
	SkipIf     *SkipIf     `yaml:"skip_if,omitempty"`

	argv [][]string
}

func (it *Action) kinds() []string {
	result := []string{}
	if it.Check != nil {
		result = append(result, "check")
	}
	if len(it.Commands) > 0 && it.WriteFile == nil {
		result = append(result, "commands")
	}
	if len(it.Script) > 0 {
		result = append(result, "script")
	}
	if it.AppendFile != nil {
		result = append(result, "append_file")
	}
	if it.WriteFile != nil {
		result = append(result, "write_file")
	}
	return result
}

func (it *Action) prepare() error {
	if len(strings.TrimSpace(it.Name)) == 0 {
		return errors.New("action without a name")
	}
	kinds := it.kinds()
	if len(kinds) != 1 {
		return fmt.Errorf("action %q needs exactly one of check, commands, script, append_file, write_file; has %v", it.Name, kinds)
	}
	if it.Check != nil && it.Check.empty() {
		return fmt.Errorf("action %q has an empty check", it.Name)
	}
	if it.AppendFile != nil && (len(it.AppendFile.Path) == 0 || len(it.AppendFile.Marker) == 0) {
		return fmt.Errorf("action %q: append_file needs path and marker", it.Name)
	}
	if it.WriteFile != nil {
		if len(it.WriteFile.Path) == 0 {
			return fmt.Errorf("action %q: write_file needs a path", it.Name)
		}
		if _, err := it.WriteFile.mode(); err != nil {
			return fmt.Errorf("action %q: %w", it.Name, err)
		}
	}
	it.argv = make([][]string, 0, len(it.Commands))
	for _, command := range it.Commands {
		argv, err := shlex.Split(command)
		if err != nil {
			return fmt.Errorf("action %q: command %q: %w", it.Name, command, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("action %q has an empty command", it.Name)
		}
		it.argv = append(it.argv, argv)
	}
	return nil
}

// Perform runs the action as one tracked invocation through the handle.
func (it *Action) Perform(handle dashcore.Handle, executor *Executor) error {
	skip := it.SkipIf.Condition(executor)
	switch {
	case len(it.Script) > 0:
		return handle.RunScript(it.Name, skip, it.Script)
	case it.Check != nil:
		return handle.RunStep(it.Name, guarded(skip, it.Check.Verify))
	case it.AppendFile != nil:
		return handle.RunStep(it.Name, guarded(skip, it.AppendFile.apply))
	case it.WriteFile != nil:
		return handle.RunStep(it.Name, guarded(skip, func(ctx context.Context) error {
			if err := it.WriteFile.apply(ctx); err != nil {
				return err
			}
			for _, argv := range it.argv {
				if err := executor.Command(ctx, expandAll(argv, it.WriteFile.Path)...); err != nil {
					return err
				}
			}
			return nil
		}))
	default:
		return handle.RunCommands(it.Name, skip, it.argv...)
	}
}

func guarded(skip dashcore.SkipCondition, work dashcore.Work) dashcore.Work {
	return func(ctx context.Context) error {
		if err := checkSkip(ctx, skip); err != nil {
			return err
		}
		return work(ctx)
	}
}

func (it *AppendFile) apply(ctx context.Context) error {
	path := common.ExpandPath(it.Path)
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if strings.Contains(string(content), it.Marker) {
		return dashcore.Skip(it.Marker + " already in " + it.Path)
	}
	sink, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer sink.Close()
	_, err = sink.WriteString(it.Text)
	return err
}

func (it *WriteFile) mode() (os.FileMode, error) {
	if len(it.Mode) == 0 {
		return 0o644, nil
	}
	mode, err := strconv.ParseUint(it.Mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("bad file mode %q", it.Mode)
	}
	return os.FileMode(mode), nil
}

func (it *WriteFile) apply(ctx context.Context) error {
	path := common.ExpandPath(it.Path)
	if _, err := os.Stat(path); err == nil {
		return dashcore.Skip(it.Path + " exists")
	}
	mode, err := it.mode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(it.Text), mode); err != nil {
		return err
	}
	// WriteFile honors umask, the catalog mode is meant literally
	return os.Chmod(path, mode)
}

// expandAll replaces {path} in arguments with the expanded file path.
func expandAll(argv []string, path string) []string {
	expanded := common.ExpandPath(path)
	result := make([]string, 0, len(argv))
	for _, arg := range argv {
		result = append(result, strings.ReplaceAll(arg, "{path}", expanded))
	}
	return result
}
