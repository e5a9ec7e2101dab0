package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"pomocus/internal/core/model"
	"pomocus/internal/platform"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Persisted keys. The legacy keys were written by earlier JSON builds and are
// read only when the current key is absent.
const (
	keyFocusMinutes      = "focus_minutes"
	keyShortBreakMinutes = "short_break_minutes"
	keyLongBreakMinutes  = "long_break_minutes"
	keyLongBreakInterval = "long_break_interval"
	keyAutoStart         = "auto_start"
	keySoundEnabled      = "sound_enabled"
	keyThemeMode         = "theme_mode"

	legacyKeyWork       = "work_duration"
	legacyKeyShortBreak = "short_break_duration"
	legacyKeyLongBreak  = "long_break_duration"
	legacyKeySound      = "enable_sound"
)

type yamlSettings struct {
	FocusMinutes      int    `yaml:"focus_minutes"`
	ShortBreakMinutes int    `yaml:"short_break_minutes"`
	LongBreakMinutes  int    `yaml:"long_break_minutes"`
	LongBreakInterval int    `yaml:"long_break_interval"`
	AutoStart         bool   `yaml:"auto_start"`
	SoundEnabled      bool   `yaml:"sound_enabled"`
	ThemeMode         string `yaml:"theme_mode"`
}

// SettingsStore persists the timer configuration as a YAML file.
type SettingsStore struct {
	path   string
	logger *slog.Logger
}

// NewSettingsStore returns a store backed by the file at path.
func NewSettingsStore(path string, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SettingsStore{path: path, logger: logger}
}

// DefaultSettingsPath returns <config dir>/<appName>/settings.yaml.
func DefaultSettingsPath(service platform.Service, appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads the settings file. It never fails: a missing or unreadable file
// yields DefaultConfig, and each missing or invalid field falls back to its
// default on its own.
func (store *SettingsStore) Load() model.Config {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.logger.Warn("settings unreadable, using defaults", "path", store.path, "error", err)
		}
		return config
	}

	var document yaml.Node
	if err := yaml.Unmarshal(rawData, &document); err != nil {
		store.logger.Warn("settings unparseable, using defaults", "path", store.path, "error", err)
		return config
	}

	fields, ok := mappingFields(&document)
	if !ok {
		store.logger.Warn("settings file is not a mapping, using defaults", "path", store.path)
		return config
	}

	applyFields(&config, fields)
	return config
}

// Save validates config and atomically replaces the settings file.
func (store *SettingsStore) Save(config model.Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:      config.FocusMinutes,
		ShortBreakMinutes: config.ShortBreakMinutes,
		LongBreakMinutes:  config.LongBreakMinutes,
		LongBreakInterval: config.LongBreakInterval,
		AutoStart:         config.AutoStart,
		SoundEnabled:      config.SoundEnabled,
		ThemeMode:         string(config.Theme),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := atomic.WriteFile(store.path, bytes.NewReader(serialized)); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	store.logger.Debug("settings saved", "path", store.path)
	return nil
}

// ToggleTheme flips the theme and saves. The toggled config is returned even
// when saving fails.
func (store *SettingsStore) ToggleTheme(config model.Config) (model.Config, error) {
	config.Theme = config.Theme.Toggle()
	return config, store.Save(config)
}

// Reset saves and returns the default configuration.
func (store *SettingsStore) Reset() (model.Config, error) {
	config := model.DefaultConfig()
	return config, store.Save(config)
}

func mappingFields(document *yaml.Node) (map[string]*yaml.Node, bool) {
	root := document
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, false
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, false
	}

	fields := make(map[string]*yaml.Node, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		fields[root.Content[i].Value] = root.Content[i+1]
	}
	return fields, true
}

func applyFields(config *model.Config, fields map[string]*yaml.Node) {
	if minutes, ok := minutesField(fields, model.MaxFocusMinutes, keyFocusMinutes, legacyKeyWork); ok {
		config.FocusMinutes = minutes
	}
	if minutes, ok := minutesField(fields, model.MaxShortBreakMinutes, keyShortBreakMinutes, legacyKeyShortBreak); ok {
		config.ShortBreakMinutes = minutes
	}
	if minutes, ok := minutesField(fields, model.MaxLongBreakMinutes, keyLongBreakMinutes, legacyKeyLongBreak); ok {
		config.LongBreakMinutes = minutes
	}
	if interval, ok := minutesField(fields, model.MaxLongBreakInterval, keyLongBreakInterval); ok {
		config.LongBreakInterval = interval
	}
	if enabled, ok := boolField(fields, keyAutoStart); ok {
		config.AutoStart = enabled
	}
	if enabled, ok := boolField(fields, keySoundEnabled, legacyKeySound); ok {
		config.SoundEnabled = enabled
	}
	if mode, ok := stringField(fields, keyThemeMode); ok && model.ThemeMode(mode).Valid() {
		config.Theme = model.ThemeMode(mode)
	}
}

// lookup returns the node of the first key present.
func lookup(fields map[string]*yaml.Node, keys ...string) (*yaml.Node, bool) {
	for _, key := range keys {
		if node, ok := fields[key]; ok {
			return node, true
		}
	}
	return nil, false
}

// minutesField accepts positive integers and clamps them to max.
func minutesField(fields map[string]*yaml.Node, max int, keys ...string) (int, bool) {
	node, ok := lookup(fields, keys...)
	if !ok || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return 0, false
	}
	var value int
	if err := node.Decode(&value); err != nil || value <= 0 {
		return 0, false
	}
	if value > max {
		value = max
	}
	return value, true
}

func boolField(fields map[string]*yaml.Node, keys ...string) (bool, bool) {
	node, ok := lookup(fields, keys...)
	if !ok || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
		return false, false
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return false, false
	}
	return value, true
}

func stringField(fields map[string]*yaml.Node, keys ...string) (string, bool) {
	node, ok := lookup(fields, keys...)
	if !ok || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", false
	}
	return node.Value, true
}
