package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomoflow/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlConfig struct {
	WorkSeconds          int `yaml:"work_seconds"`
	ShortBreakSeconds    int `yaml:"short_break_seconds"`
	LongBreakSeconds     int `yaml:"long_break_seconds"`
	CyclesUntilLongBreak int `yaml:"cycles_until_long_break"`
}

// ConfigPath resolves the settings file location for the given app name.
func ConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadConfig reads the pomodoro configuration from YAML.
// If the config file does not exist, defaults are returned.
func LoadConfig(appName string) (model.Config, error) {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return model.DefaultConfig(), err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile reads the pomodoro configuration from the given path.
// Missing or non-positive fields fall back to their defaults.
func LoadConfigFile(path string) (model.Config, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

// SaveConfig writes the pomodoro configuration to YAML.
func SaveConfig(appName string, config model.Config) error {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveConfigFile(configPath, config)
}

// SaveConfigFile writes the pomodoro configuration to the given path,
// creating parent directories as needed.
func SaveConfigFile(path string, config model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlConfig{
		WorkSeconds:          config.WorkSeconds,
		ShortBreakSeconds:    config.ShortBreakSeconds,
		LongBreakSeconds:     config.LongBreakSeconds,
		CyclesUntilLongBreak: config.CyclesUntilLongBreak,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlConfig(config *model.Config, fileData yamlConfig) {
	if fileData.WorkSeconds > 0 {
		config.WorkSeconds = fileData.WorkSeconds
	}
	if fileData.ShortBreakSeconds > 0 {
		config.ShortBreakSeconds = fileData.ShortBreakSeconds
	}
	if fileData.LongBreakSeconds > 0 {
		config.LongBreakSeconds = fileData.LongBreakSeconds
	}
	if fileData.CyclesUntilLongBreak > 0 {
		config.CyclesUntilLongBreak = fileData.CyclesUntilLongBreak
	}
}
