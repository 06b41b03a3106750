package settings_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joshyorko/setupvm/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutSettingsFile(t *testing.T) {
	config := settings.Config(filepath.Join(t.TempDir(), "missing.yaml"))

	sut, err := settings.SummonSettings(config)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, sut.Tick)
	assert.True(t, sut.Iconic)
	assert.True(t, sut.SudoEnabled)
	assert.Equal(t, 10*time.Second, sut.SudoInterval)
	assert.Equal(t, "", sut.Catalog)
	assert.Equal(t, []string{"/bin/sh", "-c"}, sut.Shell)
	assert.Empty(t, sut.Spinner)
	assert.Empty(t, sut.Source)
	assert.Same(t, sut, settings.Global)
}

func TestSettingsFileAndEnvironment(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "settings.yaml")
	content := "frontend:\n  tick: 100ms\n  spinner: \". o O\"\nsudo:\n  enabled: false\nsteps:\n  shell: /bin/bash -ec\n"
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	t.Setenv("SETUPVM_STEPS_CATALOG", "/etc/setupvm/steps.yaml")

	sut, err := settings.SummonSettings(settings.Config(filename))
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, sut.Tick)
	assert.Equal(t, []string{".", "o", "O"}, sut.Spinner)
	assert.False(t, sut.SudoEnabled)
	assert.Equal(t, []string{"/bin/bash", "-ec"}, sut.Shell)
	assert.Equal(t, "/etc/setupvm/steps.yaml", sut.Catalog)
	assert.Equal(t, filename, sut.Source)
}

func TestBrokenSettingsAreRejected(t *testing.T) {
	folder := t.TempDir()
	broken := filepath.Join(folder, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("frontend: [\n"), 0o644))
	_, err := settings.SummonSettings(settings.Config(broken))
	assert.Error(t, err)

	negative := filepath.Join(folder, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("frontend:\n  tick: -1s\n"), 0o644))
	_, err = settings.SummonSettings(settings.Config(negative))
	assert.Error(t, err)
}
