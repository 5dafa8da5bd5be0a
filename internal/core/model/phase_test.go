package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseNext(t *testing.T) {
	tests := []struct {
		name       string
		phase      Phase
		cycleCount int
		cycles     int
		want       Phase
	}{
		{"work to short break", PhaseWork, 1, 4, PhaseShortBreak},
		{"work to short break mid cycle", PhaseWork, 3, 4, PhaseShortBreak},
		{"fourth work earns long break", PhaseWork, 4, 4, PhaseLongBreak},
		{"eighth work earns long break", PhaseWork, 8, 4, PhaseLongBreak},
		{"every work is long with one cycle", PhaseWork, 1, 1, PhaseLongBreak},
		{"short break to work", PhaseShortBreak, 2, 4, PhaseWork},
		{"long break to work", PhaseLongBreak, 4, 4, PhaseWork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.phase.Next(tt.cycleCount, tt.cycles))
		})
	}
}

func TestPhaseValid(t *testing.T) {
	assert.True(t, PhaseWork.Valid())
	assert.True(t, PhaseShortBreak.Valid())
	assert.True(t, PhaseLongBreak.Valid())
	assert.False(t, Phase("lunch").Valid())
}

func TestPhaseDisplayName(t *testing.T) {
	assert.Equal(t, "Work", PhaseWork.DisplayName())
	assert.Equal(t, "Short Break", PhaseShortBreak.DisplayName())
	assert.Equal(t, "Long Break", PhaseLongBreak.DisplayName())
}
