package engine

import (
	"fmt"
	"time"

	"pomoflow/internal/core/model"
)

// EventType defines the kind of engine event.
type EventType string

const (
	// EventTick is emitted after every successful mutation except a phase
	// completion: countdown decrements, start/pause/reset and config
	// re-baselines all produce tick events.
	EventTick EventType = "tick"
	// EventPhaseCompleted is emitted exactly once per completed phase and
	// carries the new phase's stopped state.
	EventPhaseCompleted EventType = "phase_completed"
)

// Snapshot is an immutable read of the full engine state at a point in
// time, used for both synchronous reads and event payloads.
type Snapshot struct {
	Phase            model.Phase `json:"phase"`
	DurationSeconds  int         `json:"duration_seconds"`
	RemainingSeconds int         `json:"remaining_seconds"`
	IsRunning        bool        `json:"is_running"`
	CycleCount       int         `json:"cycle_count"`
	StartedAt        *time.Time  `json:"started_at,omitempty"`
}

// FormatRemaining renders the remaining time as MM:SS.
func (s Snapshot) FormatRemaining() string {
	minutes := s.RemainingSeconds / 60
	seconds := s.RemainingSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	progress := float64(s.DurationSeconds-s.RemainingSeconds) / float64(s.DurationSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Event represents an engine update for observers. Completed is set only
// on phase_completed events and names the phase that just finished.
type Event struct {
	Type      EventType   `json:"type"`
	Snapshot  Snapshot    `json:"snapshot"`
	Completed model.Phase `json:"completed,omitempty"`
	At        time.Time   `json:"at"`
}
