package main

import (
	"context"
	"log/slog"
	"time"

	"pomocus/internal/core/model"
	"pomocus/internal/core/timekeeper"
	"pomocus/internal/platform"
	"pomocus/internal/platform/audio"
	"pomocus/internal/storage"
	"pomocus/internal/ui/preferences"
	"pomocus/internal/ui/timerview"
	"pomocus/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName           = "Pomocus"
	fallbackSettings  = "pomocus_settings.yaml"
	eventBufferLength = 64
)

func main() {
	logger := newLogger(slog.LevelInfo)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Error("single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsPath, err := storage.DefaultSettingsPath(platform.NewService(), appName)
	if err != nil {
		logger.Warn("using working directory for settings", "error", err)
		settingsPath = fallbackSettings
	}
	store := storage.NewSettingsStore(settingsPath, logger)
	config := store.Load()
	logger.Info("settings loaded", "path", settingsPath, "focus_minutes", config.FocusMinutes, "theme", config.Theme)

	keeper := timekeeper.New(config, timekeeper.Config{TickInterval: time.Second})
	keeper.SetChimer(audio.NewChime(logger))

	fyneApp := app.NewWithID("com.pomocus.app")
	fyneApp.Settings().SetTheme(timerview.NewTheme(config.Theme))

	var prefsWindow *preferences.Window
	var view *timerview.Window
	view = timerview.New(fyneApp, timerview.Callbacks{
		OnToggle:     keeper.Toggle,
		OnResetPhase: keeper.ResetPhase,
		OnResetFlow:  keeper.ResetFlow,
		OnSkip:       keeper.Skip,
		OnSettings: func() {
			prefsWindow.Show()
		},
		OnToggleTheme: func() {
			updated, err := store.ToggleTheme(config)
			if err != nil {
				logger.Error("save theme", "error", err)
			}
			config = updated
			fyneApp.Settings().SetTheme(timerview.NewTheme(config.Theme))
			prefsWindow.UpdateConfig(config)
			view.Render(keeper.Snapshot())
		},
	})
	view.Window().SetMaster()

	prefsWindow = preferences.New(fyneApp, config, func(updated model.Config) error {
		config = updated
		keeper.ApplyConfig(updated)
		if err := store.Save(updated); err != nil {
			logger.Error("save settings", "error", err)
			return err
		}
		return nil
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:   view.Show,
			OnToggle: keeper.Toggle,
			OnSkip:   keeper.Skip,
			OnQuit:   fyneApp.Quit,
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	events := keeper.Subscribe(eventBufferLength)
	go func() {
		for event := range events {
			handleEvent(event, view, trayManager, logger)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go keeper.Run(ctx)

	view.Render(keeper.Snapshot())
	view.Show()
	fyneApp.Run()

	cancel()
	keeper.Close()
}

func handleEvent(event timekeeper.Event, view *timerview.Window, trayManager *tray.Manager, logger *slog.Logger) {
	switch event.Type {
	case timekeeper.EventPhaseChange:
		logger.Info("phase finished",
			"previous", event.Previous,
			"next", event.Snapshot.Phase,
			"rounds", event.Snapshot.CompletedRounds,
			"skipped", event.Skipped)
	case timekeeper.EventChime:
		fyne.Do(view.Show)
	case timekeeper.EventChimeError:
		logger.Warn("chime failed", "error", event.Message)
	}

	view.Update(event.Snapshot)
	if trayManager != nil {
		snapshot := event.Snapshot
		fyne.Do(func() {
			trayManager.Update(snapshot)
		})
	}
}
