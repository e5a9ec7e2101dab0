package timerview

import (
	"strings"

	"pomocus/internal/core/model"
	"pomocus/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines the user actions of the timer window.
type Callbacks struct {
	OnToggle      func()
	OnResetPhase  func()
	OnResetFlow   func()
	OnSkip        func()
	OnSettings    func()
	OnToggleTheme func()
}

// Window is the main timer window. Render must run on the UI goroutine;
// Update may be called from any goroutine.
type Window struct {
	window       fyne.Window
	phaseLabel   *canvas.Text
	timeLabel    *canvas.Text
	roundsLabel  *widget.Label
	progress     *widget.ProgressBar
	toggleButton *widget.Button
}

// New builds the timer window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("Pomocus")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	phaseLabel := canvas.NewText(model.PhaseFocus.Title(), focusColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 18

	timeLabel := canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 56

	roundsLabel := widget.NewLabel("")
	roundsLabel.Alignment = fyne.TextAlignCenter

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	toggleButton := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), callbacks.OnToggle)
	toggleButton.Importance = widget.HighImportance
	resetButton := newResetButton(callbacks.OnResetPhase, callbacks.OnResetFlow)
	skipButton := widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), callbacks.OnSkip)
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), callbacks.OnSettings)
	themeButton := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), callbacks.OnToggleTheme)

	header := container.NewHBox(themeButton, layout.NewSpacer(), settingsButton)
	controls := container.NewHBox(layout.NewSpacer(), resetButton, toggleButton, skipButton, layout.NewSpacer())
	body := container.NewVBox(
		layout.NewSpacer(),
		phaseLabel,
		timeLabel,
		progress,
		roundsLabel,
		controls,
		layout.NewSpacer(),
	)

	window.SetContent(container.NewBorder(header, nil, nil, nil, container.NewPadded(body)))
	window.Resize(fyne.NewSize(340, 380))

	return &Window{
		window:       window,
		phaseLabel:   phaseLabel,
		timeLabel:    timeLabel,
		roundsLabel:  roundsLabel,
		progress:     progress,
		toggleButton: toggleButton,
	}
}

// Window exposes the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window and brings it to the front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Update schedules a render on the UI goroutine.
func (view *Window) Update(snapshot timekeeper.Snapshot) {
	fyne.Do(func() {
		view.Render(snapshot)
	})
}

// Render redraws the window from snapshot.
func (view *Window) Render(snapshot timekeeper.Snapshot) {
	accent := PhaseColor(snapshot.Phase)

	view.phaseLabel.Text = snapshot.Phase.Title()
	view.phaseLabel.Color = accent
	view.phaseLabel.Refresh()

	view.timeLabel.Text = snapshot.Display()
	view.timeLabel.Color = theme.Color(theme.ColorNameForeground)
	view.timeLabel.Refresh()

	view.progress.SetValue(snapshot.Progress())
	view.roundsLabel.SetText(RoundDots(snapshot))

	if snapshot.Running {
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggleButton.SetIcon(theme.MediaPlayIcon())
	}
	view.window.SetTitle(WindowTitle(snapshot))
}

// WindowTitle returns the title bar text for snapshot.
func WindowTitle(snapshot timekeeper.Snapshot) string {
	return "Pomocus - " + snapshot.Display()
}

// RoundDots renders one dot per focus round of the current cycle. Finished
// rounds and the active focus round are filled; a long break adds a cup.
func RoundDots(snapshot timekeeper.Snapshot) string {
	interval := snapshot.LongBreakInterval
	if interval <= 0 {
		return ""
	}
	done := snapshot.CycleRounds()
	if snapshot.Phase == model.PhaseLongBreak {
		done = interval
	}

	dots := make([]string, 0, interval)
	for i := 0; i < interval; i++ {
		filled := i < done || (i == done && snapshot.Phase == model.PhaseFocus)
		if filled {
			dots = append(dots, "●")
		} else {
			dots = append(dots, "○")
		}
	}
	line := strings.Join(dots, " — ")
	if snapshot.Phase == model.PhaseLongBreak {
		line += "  ☕"
	}
	return line
}

// resetButton restarts the phase on tap and the whole flow on double tap.
type resetButton struct {
	widget.Button
	onDoubleTapped func()
}

func newResetButton(onTapped, onDoubleTapped func()) *resetButton {
	button := &resetButton{onDoubleTapped: onDoubleTapped}
	button.Icon = theme.MediaReplayIcon()
	button.OnTapped = onTapped
	button.ExtendBaseWidget(button)
	return button
}

func (button *resetButton) DoubleTapped(*fyne.PointEvent) {
	if button.onDoubleTapped != nil {
		button.onDoubleTapped()
	}
}
