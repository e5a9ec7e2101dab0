package storage

import (
	"os"
	"path/filepath"
	"testing"

	"pomocus/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(filepath.Join(t.TempDir(), "pomocus", settingsFileName), nil)
}

func writeSettings(t *testing.T, store *SettingsStore, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))
}

type stubService struct {
	dir string
	err error
}

func (service stubService) GetConfigDir() (string, error) {
	return service.dir, service.err
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, model.DefaultConfig(), store.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	config := model.Config{
		FocusMinutes:      50,
		ShortBreakMinutes: 10,
		LongBreakMinutes:  30,
		LongBreakInterval: 3,
		AutoStart:         true,
		SoundEnabled:      false,
		Theme:             model.ThemeDark,
	}

	require.NoError(t, store.Save(config))
	loaded := store.Load()
	assert.Equal(t, config, loaded)

	require.NoError(t, store.Save(loaded))
	assert.Equal(t, config, store.Load())
}

func TestSaveOverwritesAndLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.DefaultConfig()))

	config := model.DefaultConfig()
	config.FocusMinutes = 45
	require.NoError(t, store.Save(config))

	assert.Equal(t, 45, store.Load().FocusMinutes)
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, settingsFileName, entries[0].Name())
}

func TestSaveWritesReadableKeys(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.DefaultConfig()))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	for _, key := range []string{
		"focus_minutes: 25",
		"short_break_minutes: 5",
		"long_break_minutes: 15",
		"long_break_interval: 4",
		"auto_start: false",
		"sound_enabled: true",
		"theme_mode: light",
	} {
		assert.Contains(t, string(raw), key)
	}
}

func TestLoadMissingAutoStartKeepsOtherFields(t *testing.T) {
	store := newTestStore(t)
	writeSettings(t, store, `
focus_minutes: 40
short_break_minutes: 8
long_break_minutes: 20
long_break_interval: 3
sound_enabled: false
theme_mode: dark
`)

	assert.Equal(t, model.Config{
		FocusMinutes:      40,
		ShortBreakMinutes: 8,
		LongBreakMinutes:  20,
		LongBreakInterval: 3,
		AutoStart:         false,
		SoundEnabled:      false,
		Theme:             model.ThemeDark,
	}, store.Load())
}

func TestLoadReplacesInvalidFieldsIndividually(t *testing.T) {
	store := newTestStore(t)
	writeSettings(t, store, `
focus_minutes: "thirty"
short_break_minutes: 0
long_break_minutes: -4
long_break_interval: 2.5
auto_start: "yes please"
sound_enabled: 1
theme_mode: sepia
`)

	assert.Equal(t, model.DefaultConfig(), store.Load())
}

func TestLoadClampsAboveLimits(t *testing.T) {
	store := newTestStore(t)
	writeSettings(t, store, `
focus_minutes: 500
short_break_minutes: 31
long_break_minutes: 61
long_break_interval: 99
`)

	config := store.Load()
	assert.Equal(t, model.MaxFocusMinutes, config.FocusMinutes)
	assert.Equal(t, model.MaxShortBreakMinutes, config.ShortBreakMinutes)
	assert.Equal(t, model.MaxLongBreakMinutes, config.LongBreakMinutes)
	assert.Equal(t, model.MaxLongBreakInterval, config.LongBreakInterval)
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	store := newTestStore(t)
	writeSettings(t, store, `
focus_minutes: 30
window_width: 480
plugins: [a, b]
`)

	config := store.Load()
	assert.Equal(t, 30, config.FocusMinutes)
	assert.Equal(t, model.DefaultConfig().ShortBreakMinutes, config.ShortBreakMinutes)
}

func TestLoadLegacyJSON(t *testing.T) {
	store := newTestStore(t)
	writeSettings(t, store, `{
  "work_duration": 35,
  "short_break_duration": 7,
  "long_break_duration": 25,
  "long_break_interval": 5,
  "auto_start": true,
  "theme_mode": "dark",
  "enable_sound": false
}`)

	assert.Equal(t, model.Config{
		FocusMinutes:      35,
		ShortBreakMinutes: 7,
		LongBreakMinutes:  25,
		LongBreakInterval: 5,
		AutoStart:         true,
		SoundEnabled:      false,
		Theme:             model.ThemeDark,
	}, store.Load())
}

func TestLoadPrefersCurrentKeysOverLegacy(t *testing.T) {
	store := newTestStore(t)
	writeSettings(t, store, "work_duration: 35\nfocus_minutes: 20\n")

	assert.Equal(t, 20, store.Load().FocusMinutes)
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	tests := map[string]string{
		"garbage":  "{{{ not: [yaml",
		"list":     "- 1\n- 2\n",
		"scalar":   "just a string",
		"empty":    "",
		"comments": "# nothing here\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t)
			writeSettings(t, store, content)
			assert.Equal(t, model.DefaultConfig(), store.Load())
		})
	}
}

func TestLoadUnreadablePathReturnsDefaults(t *testing.T) {
	store := NewSettingsStore(t.TempDir(), nil)
	assert.Equal(t, model.DefaultConfig(), store.Load())
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	store := newTestStore(t)
	config := model.DefaultConfig()
	config.FocusMinutes = 0

	err := store.Save(config)
	require.ErrorIs(t, err, model.ErrInvalidConfig)
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	store := NewSettingsStore(filepath.Join(blocker, settingsFileName), nil)

	config := model.DefaultConfig()
	config.AutoStart = true
	require.Error(t, store.Save(config))
	assert.True(t, config.AutoStart)
}

func TestToggleTheme(t *testing.T) {
	store := newTestStore(t)

	config, err := store.ToggleTheme(model.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, config.Theme)
	assert.Equal(t, model.ThemeDark, store.Load().Theme)

	config, err = store.ToggleTheme(config)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, config.Theme)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	custom := model.DefaultConfig()
	custom.FocusMinutes = 60
	require.NoError(t, store.Save(custom))

	config, err := store.Reset()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
	assert.Equal(t, model.DefaultConfig(), store.Load())
}

func TestDefaultSettingsPath(t *testing.T) {
	path, err := DefaultSettingsPath(stubService{dir: "/home/me/.config"}, "Pomocus")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/me/.config", "Pomocus", settingsFileName), path)

	_, err = DefaultSettingsPath(stubService{err: os.ErrPermission}, "Pomocus")
	require.ErrorIs(t, err, os.ErrPermission)
}
