package preferences

import (
	"fmt"

	"pomocus/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the settings UI.
type Window struct {
	window     fyne.Window
	config     model.Config
	onSave     func(model.Config) error
	focus      *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	interval   *widget.Entry
	autoStart  *widget.Check
	sound      *widget.Check
}

// New creates a settings window. onSave receives a validated config that is
// already in effect; an error it returns (a failed write) is shown to the user.
func New(app fyne.App, config model.Config, onSave func(model.Config) error) *Window {
	window := app.NewWindow("Pomocus Settings")

	prefs := &Window{
		window:     window,
		config:     config,
		onSave:     onSave,
		focus:      widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		interval:   widget.NewEntry(),
		autoStart:  widget.NewCheck("Auto-start next timer", nil),
		sound:      widget.NewCheck("Enable sound effects", nil),
	}
	prefs.fill(FormFromConfig(config))

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem(fmt.Sprintf("Focus (1-%d min)", model.MaxFocusMinutes), prefs.focus),
			widget.NewFormItem(fmt.Sprintf("Short break (1-%d min)", model.MaxShortBreakMinutes), prefs.shortBreak),
			widget.NewFormItem(fmt.Sprintf("Long break (1-%d min)", model.MaxLongBreakMinutes), prefs.longBreak),
			widget.NewFormItem(fmt.Sprintf("Rounds before long break (1-%d)", model.MaxLongBreakInterval), prefs.interval),
		),
		prefs.autoStart,
		prefs.sound,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	defaultsButton := widget.NewButton("Defaults", func() {
		prefs.fill(FormFromConfig(model.DefaultConfig()))
	})
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.fill(FormFromConfig(prefs.config))
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, defaultsButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(func() {
		prefs.fill(FormFromConfig(prefs.config))
		window.Hide()
	})
	window.Resize(fyne.NewSize(380, 320))

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces the values shown in the window.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	prefs.fill(FormFromConfig(config))
}

func (prefs *Window) fill(form Form) {
	prefs.focus.SetText(form.FocusMinutes)
	prefs.shortBreak.SetText(form.ShortBreakMinutes)
	prefs.longBreak.SetText(form.LongBreakMinutes)
	prefs.interval.SetText(form.LongBreakInterval)
	prefs.autoStart.SetChecked(form.AutoStart)
	prefs.sound.SetChecked(form.SoundEnabled)
}

func (prefs *Window) handleSave() {
	config, err := ParseForm(Form{
		FocusMinutes:      prefs.focus.Text,
		ShortBreakMinutes: prefs.shortBreak.Text,
		LongBreakMinutes:  prefs.longBreak.Text,
		LongBreakInterval: prefs.interval.Text,
		AutoStart:         prefs.autoStart.Checked,
		SoundEnabled:      prefs.sound.Checked,
	}, prefs.config)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.config = config
	if prefs.onSave != nil {
		if err := prefs.onSave(config); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.window.Hide()
}
