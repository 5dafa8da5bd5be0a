package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/model"
)

func TestLoadConfigFileMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestSaveAndLoadConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomoflow", "settings.yaml")
	want := model.Config{
		WorkSeconds:          600,
		ShortBreakSeconds:    120,
		LongBreakSeconds:     1200,
		CyclesUntilLongBreak: 3,
	}

	require.NoError(t, SaveConfigFile(path, want))

	got, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigFileIgnoresNonPositiveFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "work_seconds: 0\nshort_break_seconds: -5\nlong_break_seconds: 600\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig().WorkSeconds, config.WorkSeconds)
	assert.Equal(t, model.DefaultConfig().ShortBreakSeconds, config.ShortBreakSeconds)
	assert.Equal(t, 600, config.LongBreakSeconds)
	assert.Equal(t, model.DefaultConfig().CyclesUntilLongBreak, config.CyclesUntilLongBreak)
}

func TestLoadConfigFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_seconds: [not a number"), 0o644))

	config, err := LoadConfigFile(path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}
