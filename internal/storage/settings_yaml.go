package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"droplet/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ErrInvalidSettings indicates the settings file could not be parsed.
var ErrInvalidSettings = errors.New("invalid settings file")

type yamlSettings struct {
	WorkMinutes          int      `yaml:"work_minutes,omitempty"`
	ShortBreakMinutes    int      `yaml:"short_break_minutes,omitempty"`
	LongBreakMinutes     int      `yaml:"long_break_minutes,omitempty"`
	WorkflowCount        int      `yaml:"workflow_count,omitempty"`
	AutoStartNextSession *bool    `yaml:"auto_start_next_session,omitempty"`
	AlwaysOnTop          *bool    `yaml:"always_on_top,omitempty"`
	LaunchAtLogin        *bool    `yaml:"launch_at_login,omitempty"`
	ShowMenuBarTimer     *bool    `yaml:"show_menu_bar_timer,omitempty"`
	Theme                string   `yaml:"theme,omitempty"`
	TimerFontSize        *float64 `yaml:"timer_font_size,omitempty"`
	EnableGlow           *bool    `yaml:"enable_glow,omitempty"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	return parseSettings(rawData)
}

func parseSettings(rawData []byte) (model.Settings, error) {
	settings := model.DefaultSettings()

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("%w: parse settings yaml: %v", ErrInvalidSettings, err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalSettings(settings)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	return writeFileAtomic(path, serialized)
}

// writeFileAtomic replaces path through a temp file in the same directory so
// readers never see a truncated settings file.
func writeFileAtomic(path string, data []byte) error {
	temp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := temp.Chmod(0o644); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// MarshalSettings renders normalized settings the way they are stored on disk.
func MarshalSettings(settings model.Settings) ([]byte, error) {
	settings = settings.Normalize()
	return yaml.Marshal(yamlSettings{
		WorkMinutes:          settings.WorkMinutes,
		ShortBreakMinutes:    settings.ShortBreakMinutes,
		LongBreakMinutes:     settings.LongBreakMinutes,
		WorkflowCount:        settings.WorkflowCount,
		AutoStartNextSession: &settings.AutoStartNextSession,
		AlwaysOnTop:          &settings.AlwaysOnTop,
		LaunchAtLogin:        &settings.LaunchAtLogin,
		ShowMenuBarTimer:     &settings.ShowMenuBarTimer,
		Theme:                settings.Theme,
		TimerFontSize:        &settings.TimerFontSize,
		EnableGlow:           &settings.EnableGlow,
	})
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakMinutes = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.WorkflowCount > 0 {
		settings.WorkflowCount = fileData.WorkflowCount
	}
	if fileData.Theme != "" {
		settings.Theme = fileData.Theme
	}
	if fileData.TimerFontSize != nil {
		settings.TimerFontSize = *fileData.TimerFontSize
	}

	applyBool(&settings.AutoStartNextSession, fileData.AutoStartNextSession)
	applyBool(&settings.AlwaysOnTop, fileData.AlwaysOnTop)
	applyBool(&settings.LaunchAtLogin, fileData.LaunchAtLogin)
	applyBool(&settings.ShowMenuBarTimer, fileData.ShowMenuBarTimer)
	applyBool(&settings.EnableGlow, fileData.EnableGlow)
}

func applyBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
