// Package settings merges built-in defaults, the optional settings file,
// SETUPVM_ environment variables and command line flags, in rising order of
// precedence.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joshyorko/setupvm/common"
	"github.com/spf13/viper"
)

const (
	FrontendTick    = `frontend.tick`
	FrontendSpinner = `frontend.spinner`
	FrontendIconic  = `frontend.iconic`
	SudoEnabled     = `sudo.enabled`
	SudoInterval    = `sudo.interval`
	StepsCatalog    = `steps.catalog`
	StepsShell      = `steps.shell`
)

var Global *Settings

type Settings struct {
	Tick         time.Duration
	Spinner      []string
	Iconic       bool
	SudoEnabled  bool
	SudoInterval time.Duration
	Catalog      string
	Shell        []string
	Source       string
}

// Config returns a viper instance with every key defaulted. A non empty
// filename overrides the settings file location.
func Config(filename string) *viper.Viper {
	config := viper.New()
	config.SetDefault(FrontendTick, 50*time.Millisecond)
	config.SetDefault(FrontendSpinner, "")
	config.SetDefault(FrontendIconic, true)
	config.SetDefault(SudoEnabled, true)
	config.SetDefault(SudoInterval, 10*time.Second)
	config.SetDefault(StepsCatalog, "")
	config.SetDefault(StepsShell, "/bin/sh -c")

	if len(filename) == 0 {
		filename = common.Product().SettingsFile()
	}
	config.SetConfigFile(common.ExpandPath(filename))
	config.SetConfigType("yaml")

	config.SetEnvPrefix(common.Product().EnvPrefix())
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	return config
}

// SummonSettings reads the settings file of config, when there is one, and
// publishes the result as Global.
func SummonSettings(config *viper.Viper) (*Settings, error) {
	source := config.ConfigFileUsed()
	err := config.ReadInConfig()
	if errors.Is(err, os.ErrNotExist) {
		common.Trace("no settings file at %q, using defaults", source)
		source = ""
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %q: %w", source, err)
	}

	result := &Settings{
		Tick:         config.GetDuration(FrontendTick),
		Spinner:      strings.Fields(config.GetString(FrontendSpinner)),
		Iconic:       config.GetBool(FrontendIconic),
		SudoEnabled:  config.GetBool(SudoEnabled),
		SudoInterval: config.GetDuration(SudoInterval),
		Catalog:      config.GetString(StepsCatalog),
		Shell:        strings.Fields(config.GetString(StepsShell)),
		Source:       source,
	}
	if err := result.validate(); err != nil {
		return nil, err
	}
	Global = result
	return result, nil
}

func (it *Settings) validate() error {
	if it.Tick <= 0 {
		return fmt.Errorf("%s must be positive, got %v", FrontendTick, it.Tick)
	}
	if it.SudoInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %v", SudoInterval, it.SudoInterval)
	}
	if len(it.Shell) == 0 {
		return fmt.Errorf("%s must name a shell", StepsShell)
	}
	return nil
}
