package engine

import (
	"log/slog"
	"sync"
	"time"

	"pomoflow/internal/core/model"
)

// SessionStore records completed phases. Append is called outside the
// engine's critical section, so a slow store cannot stall ticks or
// commands. Write failures are logged and swallowed; the phase transition
// has already committed.
type SessionStore interface {
	Append(record model.SessionRecord) error
}

// Options contains runtime options for the Engine.
type Options struct {
	TickInterval time.Duration
	Logger       *slog.Logger
}

// Engine owns the single authoritative pomodoro state. Every operation is
// serialized through one mutex; the tick scheduler enters through the same
// lock as external callers, so no reader can observe a partial transition.
type Engine struct {
	mu          sync.Mutex
	config      model.Config
	phase       model.Phase
	duration    int
	remaining   int
	running     bool
	startedAt   *time.Time
	cycleCount  int
	store       SessionStore
	broadcaster *Broadcaster
	options     Options
	logger      *slog.Logger
	now         func() time.Time
	stopCh      chan struct{}
	runOnce     sync.Once
	closeOnce   sync.Once
}

// New creates an Engine in the stopped, fully-wound work phase. The
// config is assumed valid; callers obtain one from the settings provider
// or model.DefaultConfig.
func New(config model.Config, store SessionStore, options Options) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	eng := &Engine{
		config:      config,
		phase:       model.PhaseWork,
		duration:    config.WorkSeconds,
		remaining:   config.WorkSeconds,
		store:       store,
		broadcaster: NewBroadcaster(),
		options:     options,
		logger:      logger,
		now:         time.Now,
		stopCh:      make(chan struct{}),
	}
	return eng
}

// Run launches the tick scheduler. The loop is started once and keeps
// scheduling for the life of the engine; whether a tick advances anything
// is the engine's decision, not the loop's.
func (e *Engine) Run() {
	e.runOnce.Do(func() {
		go e.run()
	})
}

// Close stops the tick scheduler and closes all observer channels.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.stopCh)
		e.broadcaster.Close()
	})
}

// Subscribe registers a new observer channel. A subscriber that attaches
// late misses prior events and should call State to resynchronize.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	return e.broadcaster.Subscribe(buffer)
}

// Unsubscribe removes and closes an observer channel.
func (e *Engine) Unsubscribe(ch <-chan Event) {
	e.broadcaster.Unsubscribe(ch)
}

// State returns a read-only snapshot of the current state.
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Config returns the cached configuration.
func (e *Engine) Config() model.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Start begins the countdown. Starting an already running timer is a
// no-op returning the current state.
func (e *Engine) Start() Snapshot {
	e.mu.Lock()
	if e.running {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}
	now := e.now()
	e.running = true
	e.startedAt = &now
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcaster.Publish(Event{Type: EventTick, Snapshot: snap, At: now})
	return snap
}

// Pause freezes the countdown, preserving the remaining time exactly as
// last observed. Pausing a stopped timer is a no-op.
func (e *Engine) Pause() Snapshot {
	e.mu.Lock()
	if !e.running {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}
	e.running = false
	e.startedAt = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcaster.Publish(Event{Type: EventTick, Snapshot: snap, At: e.now()})
	return snap
}

// Reset rewinds the current phase to its full configured length and stops
// the timer. Phase and cycle count are unchanged.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	e.duration = e.config.DurationFor(e.phase)
	e.remaining = e.duration
	e.running = false
	e.startedAt = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcaster.Publish(Event{Type: EventTick, Snapshot: snap, At: e.now()})
	return snap
}

// Skip forces an immediate phase completion regardless of remaining time
// or running state, following the same algorithm as a natural
// zero-crossing.
func (e *Engine) Skip() Snapshot {
	e.mu.Lock()
	record, snap := e.completePhaseLocked()
	e.mu.Unlock()

	e.finishCompletion(record, snap)
	return snap
}

// UpdateConfig validates and replaces the cached configuration. If the
// current phase is stopped and untouched, its duration and remaining time
// are recomputed immediately; a running, paused or partially consumed
// phase keeps its in-flight timing and only future phases use the new
// values.
func (e *Engine) UpdateConfig(config model.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.config = config
	untouched := !e.running && e.remaining == e.duration
	var snap Snapshot
	if untouched {
		e.duration = config.DurationFor(e.phase)
		e.remaining = e.duration
		snap = e.snapshotLocked()
	}
	e.mu.Unlock()

	if untouched {
		e.broadcaster.Publish(Event{Type: EventTick, Snapshot: snap, At: e.now()})
	}
	return nil
}

func (e *Engine) run() {
	ticker := time.NewTicker(e.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case tickTime := <-ticker.C:
			e.tick(tickTime)
		}
	}
}

// tick advances the countdown by one second. Invoked only by the
// scheduler loop; a stopped timer makes it a no-op.
func (e *Engine) tick(tickTime time.Time) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}

	e.remaining--
	if e.remaining <= 0 {
		record, snap := e.completePhaseLocked()
		e.mu.Unlock()
		e.finishCompletion(record, snap)
		return
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.broadcaster.Publish(Event{Type: EventTick, Snapshot: snap, At: tickTime})
}

// completePhaseLocked runs the shared completion algorithm: record the
// finished phase, bump the work cycle count, advance to the next phase and
// land stopped and fully wound. Persistence and event publishing happen
// after the lock is released.
func (e *Engine) completePhaseLocked() (model.SessionRecord, Snapshot) {
	completed := e.phase
	if completed == model.PhaseWork {
		e.cycleCount++
	}

	record := model.SessionRecord{
		Phase:           completed,
		DurationSeconds: e.duration,
		CompletedAt:     e.now(),
		CycleCount:      e.cycleCount,
	}

	next := completed.Next(e.cycleCount, e.config.CyclesUntilLongBreak)
	e.phase = next
	e.duration = e.config.DurationFor(next)
	e.remaining = e.duration
	e.running = false
	e.startedAt = nil

	return record, e.snapshotLocked()
}

func (e *Engine) finishCompletion(record model.SessionRecord, snap Snapshot) {
	if e.store != nil {
		if err := e.store.Append(record); err != nil {
			e.logger.Warn("session record not persisted",
				"phase", string(record.Phase),
				"cycle_count", record.CycleCount,
				"error", err)
		}
	}
	e.broadcaster.Publish(Event{
		Type:      EventPhaseCompleted,
		Snapshot:  snap,
		Completed: record.Phase,
		At:        record.CompletedAt,
	})
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:            e.phase,
		DurationSeconds:  e.duration,
		RemainingSeconds: e.remaining,
		IsRunning:        e.running,
		CycleCount:       e.cycleCount,
		StartedAt:        e.startedAt,
	}
}
