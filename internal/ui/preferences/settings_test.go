package preferences

import (
	"testing"

	"pomocus/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFromConfig(t *testing.T) {
	form := FormFromConfig(model.DefaultConfig())

	assert.Equal(t, Form{
		FocusMinutes:      "25",
		ShortBreakMinutes: "5",
		LongBreakMinutes:  "15",
		LongBreakInterval: "4",
		AutoStart:         false,
		SoundEnabled:      true,
	}, form)
}

func TestParseFormKeepsTheme(t *testing.T) {
	base := model.DefaultConfig()
	base.Theme = model.ThemeDark

	config, err := ParseForm(Form{
		FocusMinutes:      " 50 ",
		ShortBreakMinutes: "10",
		LongBreakMinutes:  "30",
		LongBreakInterval: "2",
		AutoStart:         true,
		SoundEnabled:      false,
	}, base)

	require.NoError(t, err)
	assert.Equal(t, model.Config{
		FocusMinutes:      50,
		ShortBreakMinutes: 10,
		LongBreakMinutes:  30,
		LongBreakInterval: 2,
		AutoStart:         true,
		SoundEnabled:      false,
		Theme:             model.ThemeDark,
	}, config)
}

func TestParseFormRejectsInvalidInput(t *testing.T) {
	valid := FormFromConfig(model.DefaultConfig())
	tests := []struct {
		name   string
		mutate func(*Form)
	}{
		{"empty focus", func(f *Form) { f.FocusMinutes = "" }},
		{"text short break", func(f *Form) { f.ShortBreakMinutes = "five" }},
		{"zero long break", func(f *Form) { f.LongBreakMinutes = "0" }},
		{"negative interval", func(f *Form) { f.LongBreakInterval = "-1" }},
		{"decimal focus", func(f *Form) { f.FocusMinutes = "12.5" }},
		{"focus above limit", func(f *Form) { f.FocusMinutes = "91" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := model.DefaultConfig()
			base.FocusMinutes = 33
			form := valid
			tt.mutate(&form)

			config, err := ParseForm(form, base)
			require.ErrorIs(t, err, model.ErrInvalidConfig)
			assert.Equal(t, base, config)
		})
	}
}
