package tray

import (
	"testing"

	"pomocus/internal/core/model"
	"pomocus/internal/core/timekeeper"

	"github.com/stretchr/testify/assert"
)

func TestStatusLine(t *testing.T) {
	running := timekeeper.Snapshot{Phase: model.PhaseFocus, Remaining: 1499, Running: true}
	assert.Equal(t, "Status: FOCUS TIME 24:59", StatusLine(running))

	paused := timekeeper.Snapshot{Phase: model.PhaseLongBreak, Remaining: 900}
	assert.Equal(t, "Status: LONG BREAK 15:00 (paused)", StatusLine(paused))
}

func TestUpdateWithoutTray(t *testing.T) {
	toggled := 0
	manager := New(nil, Callbacks{OnToggle: func() { toggled++ }})

	manager.Update(timekeeper.Snapshot{Phase: model.PhaseShortBreak, Remaining: 60, Running: true})
	assert.Equal(t, "Pause", manager.toggleItem.Label)
	assert.Equal(t, "Status: SHORT BREAK 01:00", manager.statusItem.Label)

	manager.toggleItem.Action()
	assert.Equal(t, 1, toggled)
}
