package common

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	SETUPVM_HOME_VARIABLE = `SETUPVM_HOME`
	SETUPVM_PRODUCT_NAME  = `SETUPVM_PRODUCT_NAME`
	SETUPVM_NAME          = `setupvm`
	SETUPVM_ENV_PREFIX    = `SETUPVM`

	defaultHomeLocation = "$HOME/.setupvm"
)

type (
	ProductStrategy interface {
		Name() string
		ForceHome(string)
		HomeVariable() string
		Home() string
		SettingsFile() string
		EnvPrefix() string
	}

	setupStrategy struct {
		forcedHome string
	}
)

func Product() ProductStrategy {
	return &setupStrategy{}
}

func (it *setupStrategy) Name() string {
	if value := os.Getenv(SETUPVM_PRODUCT_NAME); len(value) > 0 {
		return value
	}
	return SETUPVM_NAME
}

func (it *setupStrategy) ForceHome(value string) {
	it.forcedHome = value
}

func (it *setupStrategy) HomeVariable() string {
	return SETUPVM_HOME_VARIABLE
}

func (it *setupStrategy) Home() string {
	if len(it.forcedHome) > 0 {
		return ExpandPath(it.forcedHome)
	}
	home := os.Getenv(SETUPVM_HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	return ExpandPath(defaultHomeLocation)
}

func (it *setupStrategy) SettingsFile() string {
	return filepath.Join(it.Home(), "settings.yaml")
}

func (it *setupStrategy) EnvPrefix() string {
	return SETUPVM_ENV_PREFIX
}

// ExpandPath expands environment variables and a leading "~" and makes the
// result absolute when possible.
func ExpandPath(entry string) string {
	if entry == "~" || strings.HasPrefix(entry, "~/") {
		entry = "$HOME" + entry[1:]
	}
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}
