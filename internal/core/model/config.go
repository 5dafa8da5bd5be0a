package model

import (
	"errors"
	"fmt"
)

// ErrValidation indicates a rejected pomodoro configuration.
var ErrValidation = errors.New("invalid pomodoro config")

// Config contains the four pomodoro timing parameters. Durations are in
// seconds; CyclesUntilLongBreak counts completed work phases between long
// breaks.
type Config struct {
	WorkSeconds          int `yaml:"work_seconds" json:"work_seconds"`
	ShortBreakSeconds    int `yaml:"short_break_seconds" json:"short_break_seconds"`
	LongBreakSeconds     int `yaml:"long_break_seconds" json:"long_break_seconds"`
	CyclesUntilLongBreak int `yaml:"cycles_until_long_break" json:"cycles_until_long_break"`
}

// DefaultConfig returns the classic 25/5/15 schedule with a long break
// every fourth work phase.
func DefaultConfig() Config {
	return Config{
		WorkSeconds:          1500,
		ShortBreakSeconds:    300,
		LongBreakSeconds:     900,
		CyclesUntilLongBreak: 4,
	}
}

// Validate checks that every field is positive.
func (c Config) Validate() error {
	if c.WorkSeconds <= 0 {
		return fmt.Errorf("%w: work_seconds must be positive, got %d", ErrValidation, c.WorkSeconds)
	}
	if c.ShortBreakSeconds <= 0 {
		return fmt.Errorf("%w: short_break_seconds must be positive, got %d", ErrValidation, c.ShortBreakSeconds)
	}
	if c.LongBreakSeconds <= 0 {
		return fmt.Errorf("%w: long_break_seconds must be positive, got %d", ErrValidation, c.LongBreakSeconds)
	}
	if c.CyclesUntilLongBreak < 1 {
		return fmt.Errorf("%w: cycles_until_long_break must be at least 1, got %d", ErrValidation, c.CyclesUntilLongBreak)
	}
	return nil
}

// DurationFor returns the configured length of the given phase in seconds.
func (c Config) DurationFor(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return c.ShortBreakSeconds
	case PhaseLongBreak:
		return c.LongBreakSeconds
	default:
		return c.WorkSeconds
	}
}
