package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/model"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionStoreAppendAssignsID(t *testing.T) {
	store := newTestStore(t)

	err := store.Append(model.SessionRecord{
		Phase:           model.PhaseWork,
		DurationSeconds: 1500,
		CompletedAt:     time.Now(),
		CycleCount:      1,
	})
	require.NoError(t, err)

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, model.PhaseWork, records[0].Phase)
	assert.Equal(t, 1500, records[0].DurationSeconds)
	assert.Equal(t, 1, records[0].CycleCount)
}

func TestSessionStoreRejectsUnknownPhase(t *testing.T) {
	store := newTestStore(t)

	err := store.Append(model.SessionRecord{
		Phase:           model.Phase("nap"),
		DurationSeconds: 60,
		CompletedAt:     time.Now(),
	})
	assert.Error(t, err)
}

func TestSessionStoreRecentOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	phases := []model.Phase{model.PhaseWork, model.PhaseShortBreak, model.PhaseWork}
	for i, phase := range phases {
		require.NoError(t, store.Append(model.SessionRecord{
			Phase:           phase,
			DurationSeconds: 300,
			CompletedAt:     base.Add(time.Duration(i) * time.Hour),
			CycleCount:      i,
		}))
	}

	records, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.PhaseWork, records[0].Phase)
	assert.Equal(t, 2, records[0].CycleCount)
	assert.Equal(t, model.PhaseShortBreak, records[1].Phase)
}

func TestSessionStoreStats(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	seed := []struct {
		phase    model.Phase
		duration int
	}{
		{model.PhaseWork, 1500},
		{model.PhaseShortBreak, 300},
		{model.PhaseWork, 1500},
		{model.PhaseLongBreak, 900},
	}
	for i, s := range seed {
		require.NoError(t, store.Append(model.SessionRecord{
			Phase:           s.phase,
			DurationSeconds: s.duration,
			CompletedAt:     now.Add(time.Duration(i) * time.Minute),
		}))
	}

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, model.Stats{
		TotalSessions:      4,
		WorkSessions:       2,
		ShortBreakSessions: 1,
		LongBreakSessions:  1,
		TotalFocusSeconds:  3000,
	}, stats)
}

func TestSessionStoreStatsEmpty(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, stats)
}
