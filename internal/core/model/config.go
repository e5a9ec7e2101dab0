package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Phase is one segment of the pomodoro cycle.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Title returns the heading shown for the phase.
func (phase Phase) Title() string {
	switch phase {
	case PhaseShortBreak:
		return "SHORT BREAK"
	case PhaseLongBreak:
		return "LONG BREAK"
	default:
		return "FOCUS TIME"
	}
}

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// ThemeMode selects the light or dark palette.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether mode is a known theme.
func (mode ThemeMode) Valid() bool {
	return mode == ThemeLight || mode == ThemeDark
}

// Toggle returns the opposite theme.
func (mode ThemeMode) Toggle() ThemeMode {
	if mode == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Upper limits accepted from the settings form.
const (
	MaxFocusMinutes      = 90
	MaxShortBreakMinutes = 30
	MaxLongBreakMinutes  = 60
	MaxLongBreakInterval = 10
)

// Config is a snapshot of the user's timer settings. It is replaced wholesale,
// never edited in place while a countdown depends on it.
type Config struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	AutoStart         bool
	SoundEnabled      bool
	Theme             ThemeMode
}

// DefaultConfig returns the settings used when nothing valid is persisted.
func DefaultConfig() Config {
	return Config{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
		AutoStart:         false,
		SoundEnabled:      true,
		Theme:             ThemeLight,
	}
}

// Validate checks ranges and the theme value.
func (config Config) Validate() error {
	if err := checkRange("focus minutes", config.FocusMinutes, MaxFocusMinutes); err != nil {
		return err
	}
	if err := checkRange("short break minutes", config.ShortBreakMinutes, MaxShortBreakMinutes); err != nil {
		return err
	}
	if err := checkRange("long break minutes", config.LongBreakMinutes, MaxLongBreakMinutes); err != nil {
		return err
	}
	if err := checkRange("long break interval", config.LongBreakInterval, MaxLongBreakInterval); err != nil {
		return err
	}
	if !config.Theme.Valid() {
		return fmt.Errorf("%w: theme mode %q", ErrInvalidConfig, config.Theme)
	}
	return nil
}

// Minutes returns the configured minutes for phase.
func (config Config) Minutes(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return config.ShortBreakMinutes
	case PhaseLongBreak:
		return config.LongBreakMinutes
	default:
		return config.FocusMinutes
	}
}

// Seconds returns the full length of phase in seconds.
func (config Config) Seconds(phase Phase) int {
	return config.Minutes(phase) * 60
}

// Duration returns the full length of phase.
func (config Config) Duration(phase Phase) time.Duration {
	return time.Duration(config.Minutes(phase)) * time.Minute
}

func checkRange(name string, value, max int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, value)
	}
	if value > max {
		return fmt.Errorf("%w: %s must be at most %d, got %d", ErrInvalidConfig, name, max, value)
	}
	return nil
}
