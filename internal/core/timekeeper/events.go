package timekeeper

import (
	"fmt"
	"time"

	"pomocus/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventPhaseChange EventType = "phase_change"
	EventChime       EventType = "chime"
	EventChimeError  EventType = "chime_error"
)

// Snapshot is a copy of the timer state handed to observers.
type Snapshot struct {
	Phase             model.Phase
	Remaining         int
	Total             int
	CompletedRounds   int
	Running           bool
	LongBreakInterval int
}

// Display formats the remaining time as mm:ss.
func (snapshot Snapshot) Display() string {
	return FormatSeconds(snapshot.Remaining)
}

// Progress returns the elapsed fraction of the current phase.
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Total <= 0 {
		return 0
	}
	progress := float64(snapshot.Total-snapshot.Remaining) / float64(snapshot.Total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// CycleRounds returns how many focus rounds of the current long-break cycle are done.
func (snapshot Snapshot) CycleRounds() int {
	if snapshot.LongBreakInterval <= 0 {
		return 0
	}
	return snapshot.CompletedRounds % snapshot.LongBreakInterval
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Previous model.Phase
	Skipped  bool
	Message  string
	At       time.Time
}

// FormatSeconds renders seconds as mm:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
