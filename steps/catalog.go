package steps

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
	"gopkg.in/yaml.v2"
)

//go:embed assets/default.yaml
var defaultCatalog []byte

// StepSpec is one selectable entry of the catalog. A step either lists its
// actions or is a single action itself, tracked under Title or its name.
type StepSpec struct {
	Action  `yaml:",inline"`
	Title   string   `yaml:"title,omitempty"`
	Actions []Action `yaml:"actions,omitempty"`
}

type Catalog struct {
	Steps []StepSpec `yaml:"steps"`
}

func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func LoadCatalog(filename string) (*Catalog, error) {
	content, err := os.ReadFile(common.ExpandPath(filename))
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(content)
}

// SummonCatalog loads the named catalog, or the embedded one for an empty name.
func SummonCatalog(filename string) (*Catalog, error) {
	if len(strings.TrimSpace(filename)) == 0 {
		common.Debug("using embedded step catalog")
		return DefaultCatalog()
	}
	common.Debug("using step catalog %q", filename)
	return LoadCatalog(filename)
}

func ParseCatalog(content []byte) (*Catalog, error) {
	catalog := &Catalog{}
	if err := yaml.UnmarshalStrict(content, catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := catalog.prepare(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}

func (it *Catalog) prepare() error {
	if len(it.Steps) == 0 {
		return errors.New("no steps")
	}
	seen := make(map[string]bool)
	for index := range it.Steps {
		step := &it.Steps[index]
		if len(strings.TrimSpace(step.Name)) == 0 {
			return fmt.Errorf("step #%d has no name", index+1)
		}
		if seen[step.Name] {
			return fmt.Errorf("step %q defined twice", step.Name)
		}
		seen[step.Name] = true
		if err := step.prepare(); err != nil {
			return err
		}
	}
	return nil
}

func (it *StepSpec) prepare() error {
	if len(it.Actions) > 0 {
		if len(it.Action.kinds()) > 0 || it.SkipIf != nil {
			return fmt.Errorf("step %q mixes actions with an inline action", it.Name)
		}
		for index := range it.Actions {
			if err := it.Actions[index].prepare(); err != nil {
				return fmt.Errorf("step %q: %w", it.Name, err)
			}
		}
		return nil
	}
	it.Actions = []Action{it.Action}
	if len(it.Title) > 0 {
		it.Actions[0].Name = it.Title
	}
	if err := it.Actions[0].prepare(); err != nil {
		return fmt.Errorf("step %q: %w", it.Name, err)
	}
	return nil
}

func (it *Catalog) Names() []string {
	result := make([]string, 0, len(it.Steps))
	for _, step := range it.Steps {
		result = append(result, step.Name)
	}
	return result
}

// Build turns the catalog into runnable steps. Actions of one step run in
// order and the first failure ends the step.
func (it *Catalog) Build(executor *Executor) []dashcore.Step {
	result := make([]dashcore.Step, 0, len(it.Steps))
	for index := range it.Steps {
		actions := it.Steps[index].Actions
		result = append(result, dashcore.Step{
			Name: it.Steps[index].Name,
			Run: func(ctx context.Context, handle dashcore.Handle) error {
				for position := range actions {
					if err := actions[position].Perform(handle, executor); err != nil {
						return err
					}
					if ctx.Err() != nil {
						return dashcore.ErrInterrupted
					}
				}
				return nil
			},
		})
	}
	return result
}
