package model

import "time"

// SessionRecord is an immutable fact describing one completed phase.
// Records are append-only; the engine writes them and the statistics
// features read them.
type SessionRecord struct {
	ID              string    `json:"id"`
	Phase           Phase     `json:"phase"`
	DurationSeconds int       `json:"duration_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
	CycleCount      int       `json:"cycle_count"`
}

// Stats aggregates recorded sessions for the statistics views.
type Stats struct {
	TotalSessions      int `json:"total_sessions"`
	WorkSessions       int `json:"work_sessions"`
	ShortBreakSessions int `json:"short_break_sessions"`
	LongBreakSessions  int `json:"long_break_sessions"`
	TotalFocusSeconds  int `json:"total_focus_seconds"`
}
