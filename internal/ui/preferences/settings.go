package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"pomocus/internal/core/model"
)

// Form holds the raw values typed into the settings window.
type Form struct {
	FocusMinutes      string
	ShortBreakMinutes string
	LongBreakMinutes  string
	LongBreakInterval string
	AutoStart         bool
	SoundEnabled      bool
}

// FormFromConfig fills a form with the values of config.
func FormFromConfig(config model.Config) Form {
	return Form{
		FocusMinutes:      strconv.Itoa(config.FocusMinutes),
		ShortBreakMinutes: strconv.Itoa(config.ShortBreakMinutes),
		LongBreakMinutes:  strconv.Itoa(config.LongBreakMinutes),
		LongBreakInterval: strconv.Itoa(config.LongBreakInterval),
		AutoStart:         config.AutoStart,
		SoundEnabled:      config.SoundEnabled,
	}
}

// ParseForm builds a validated Config from form. Fields the form does not
// edit, such as the theme, are taken from base. On error base stays the
// config in effect.
func ParseForm(form Form, base model.Config) (model.Config, error) {
	config := base

	var err error
	if config.FocusMinutes, err = parseField("focus duration", form.FocusMinutes); err != nil {
		return base, err
	}
	if config.ShortBreakMinutes, err = parseField("short break", form.ShortBreakMinutes); err != nil {
		return base, err
	}
	if config.LongBreakMinutes, err = parseField("long break", form.LongBreakMinutes); err != nil {
		return base, err
	}
	if config.LongBreakInterval, err = parseField("rounds before long break", form.LongBreakInterval); err != nil {
		return base, err
	}
	config.AutoStart = form.AutoStart
	config.SoundEnabled = form.SoundEnabled

	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

func parseField(label, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", model.ErrInvalidConfig, label)
	}
	return parsed, nil
}
