package timekeeper

import (
	"context"
	"sync"
	"time"

	"pomocus/internal/core/model"
)

// Chimer plays the audible cue requested on natural phase completion.
type Chimer interface {
	Chime() error
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

// TimeKeeper is the pomodoro phase state machine. It owns the countdown, the
// active phase and the completed round counter.
type TimeKeeper struct {
	mu        sync.Mutex
	config    model.Config
	options   Config
	phase     model.Phase
	remaining int
	total     int
	rounds    int
	running   bool
	chimer    Chimer
	events    []chan Event
	closed    bool
}

// New creates a stopped TimeKeeper at the start of a focus phase. The config is
// expected to be validated already.
func New(config model.Config, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	keeper := &TimeKeeper{
		config:  config,
		options: options,
	}
	keeper.enterPhaseLocked(model.PhaseFocus)
	return keeper
}

// SetChimer injects the sound capability.
func (keeper *TimeKeeper) SetChimer(chimer Chimer) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.chimer = chimer
}

// Subscribe registers a new observer channel. Delivery never blocks: a
// subscriber whose buffer is full misses the event.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Close closes all observer channels. Later events are dropped.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns the current timer state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Config returns the active configuration.
func (keeper *TimeKeeper) Config() model.Config {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// Start resumes the countdown.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running {
		return
	}
	keeper.running = true
	keeper.emitLocked(Event{Type: EventStateChange})
}

// Pause freezes the countdown.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}
	keeper.running = false
	keeper.emitLocked(Event{Type: EventStateChange})
}

// Toggle pauses a running countdown or starts a stopped one.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.running = !keeper.running
	keeper.emitLocked(Event{Type: EventStateChange})
}

// Tick advances the countdown by one second. Ticks delivered while paused
// are ignored.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}

	if keeper.remaining > 0 {
		keeper.remaining--
	}
	if keeper.remaining > 0 {
		keeper.emitLocked(Event{Type: EventProgress})
		keeper.mu.Unlock()
		return
	}

	keeper.completePhaseLocked(false)
	var chimer Chimer
	if keeper.config.SoundEnabled {
		chimer = keeper.chimer
		keeper.emitLocked(Event{Type: EventChime})
	}
	keeper.mu.Unlock()

	if chimer == nil {
		return
	}
	if err := chimer.Chime(); err != nil {
		keeper.emit(Event{Type: EventChimeError, Message: err.Error()})
	}
}

// ResetPhase restarts the current phase from its full duration and stops the
// countdown. Phase and round count are kept.
func (keeper *TimeKeeper) ResetPhase() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.running = false
	keeper.enterPhaseLocked(keeper.phase)
	keeper.emitLocked(Event{Type: EventStateChange})
}

// ResetFlow returns to a stopped first focus phase and clears the round count.
func (keeper *TimeKeeper) ResetFlow() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.running = false
	keeper.rounds = 0
	keeper.enterPhaseLocked(model.PhaseFocus)
	keeper.emitLocked(Event{Type: EventStateChange})
}

// Skip completes the current phase immediately. It never requests a chime.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.completePhaseLocked(true)
}

// ApplyConfig replaces the active configuration. A stopped timer picks up the
// new duration at once; a running countdown keeps going and the new durations
// apply from the next phase boundary.
func (keeper *TimeKeeper) ApplyConfig(config model.Config) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.config = config
	if !keeper.running {
		keeper.enterPhaseLocked(keeper.phase)
	}
	keeper.emitLocked(Event{Type: EventStateChange})
}

// Run ticks every TickInterval until ctx is cancelled.
func (keeper *TimeKeeper) Run(ctx context.Context) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			keeper.Tick()
		}
	}
}

func (keeper *TimeKeeper) completePhaseLocked(skipped bool) {
	previous := keeper.phase
	next := model.PhaseFocus
	if previous == model.PhaseFocus {
		keeper.rounds++
		next = model.PhaseShortBreak
		if keeper.config.LongBreakInterval > 0 && keeper.rounds%keeper.config.LongBreakInterval == 0 {
			next = model.PhaseLongBreak
		}
	}

	keeper.enterPhaseLocked(next)
	keeper.running = keeper.config.AutoStart

	keeper.emitLocked(Event{
		Type:     EventPhaseChange,
		Previous: previous,
		Skipped:  skipped,
	})
}

func (keeper *TimeKeeper) enterPhaseLocked(phase model.Phase) {
	keeper.phase = phase
	keeper.total = keeper.config.Seconds(phase)
	keeper.remaining = keeper.total
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:             keeper.phase,
		Remaining:         keeper.remaining,
		Total:             keeper.total,
		CompletedRounds:   keeper.rounds,
		Running:           keeper.running,
		LongBreakInterval: keeper.config.LongBreakInterval,
	}
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.emitLocked(event)
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	event.Snapshot = keeper.snapshotLocked()
	if event.At.IsZero() {
		event.At = time.Now()
	}
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
