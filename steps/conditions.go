package steps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
)

// FileText names a file and a text to look for in it.
type FileText struct {
	Path string `yaml:"path"`
	Text string `yaml:"text"`
}

// SkipIf describes when the goal of an action already holds. The action is
// skipped when any of the set conditions is true.
type SkipIf struct {
	Packages     []string  `yaml:"packages,omitempty"`
	KernelModule string    `yaml:"kernel_module,omitempty"`
	FileExists   string    `yaml:"file_exists,omitempty"`
	FileContains *FileText `yaml:"file_contains,omitempty"`
	FileLacks    *FileText `yaml:"file_lacks,omitempty"`
	Shell        string    `yaml:"shell,omitempty"`
}

// Condition turns the description into a skip condition run by executor.
func (it *SkipIf) Condition(executor *Executor) dashcore.SkipCondition {
	if it == nil {
		return nil
	}
	return func(ctx context.Context) (bool, error) {
		probes := []func(context.Context, *Executor) (bool, error){
			it.packagesInstalled,
			it.moduleLoaded,
			it.fileExists,
			it.fileContains,
			it.fileLacks,
			it.shellSucceeds,
		}
		for _, probe := range probes {
			hit, err := probe(ctx, executor)
			if err != nil {
				return false, err
			}
			if hit {
				return true, nil
			}
		}
		return false, nil
	}
}

func (it *SkipIf) packagesInstalled(ctx context.Context, executor *Executor) (bool, error) {
	if len(it.Packages) == 0 {
		return false, nil
	}
	argv := append([]string{"dpkg", "-s"}, it.Packages...)
	return executor.Probe(ctx, argv...)
}

func (it *SkipIf) moduleLoaded(ctx context.Context, executor *Executor) (bool, error) {
	if len(it.KernelModule) == 0 {
		return false, nil
	}
	output, err := executor.Output(ctx, "lsmod")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == it.KernelModule {
			return true, nil
		}
	}
	return false, nil
}

func (it *SkipIf) fileExists(ctx context.Context, executor *Executor) (bool, error) {
	if len(it.FileExists) == 0 {
		return false, nil
	}
	matches, err := filepath.Glob(common.ExpandPath(it.FileExists))
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (it *SkipIf) fileContains(ctx context.Context, executor *Executor) (bool, error) {
	if it.FileContains == nil {
		return false, nil
	}
	found, _, err := it.FileContains.lookup()
	return found, err
}

func (it *SkipIf) fileLacks(ctx context.Context, executor *Executor) (bool, error) {
	if it.FileLacks == nil {
		return false, nil
	}
	found, _, err := it.FileLacks.lookup()
	return !found, err
}

func (it *SkipIf) shellSucceeds(ctx context.Context, executor *Executor) (bool, error) {
	if len(it.Shell) == 0 {
		return false, nil
	}
	argv := append(append([]string{}, executor.Shell...), it.Shell)
	return executor.Probe(ctx, argv...)
}

// lookup reports whether the file contains the text. A missing file does not
// contain anything and is not an error.
func (it *FileText) lookup() (bool, bool, error) {
	content, err := os.ReadFile(common.ExpandPath(it.Path))
	if errors.Is(err, os.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return strings.Contains(string(content), it.Text), true, nil
}
