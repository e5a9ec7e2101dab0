package tray

import (
	"fmt"

	"pomocus/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow   func()
	OnToggle func()
	OnSkip   func()
	OnQuit   func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: ready", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnToggle) })

	manager.refreshMenu()
	return manager
}

// Update reflects the timer snapshot in the menu.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	manager.statusItem.Label = StatusLine(snapshot)
	if snapshot.Running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshMenu()
}

// StatusLine formats the tray status entry.
func StatusLine(snapshot timekeeper.Snapshot) string {
	status := fmt.Sprintf("Status: %s %s", snapshot.Phase.Title(), snapshot.Display())
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomocus",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShow) }),
		manager.toggleItem,
		fyne.NewMenuItem("Skip phase", func() { call(manager.callbacks.OnSkip) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
