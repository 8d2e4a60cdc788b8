package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morningquest/internal/engine"
	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service, *mission.FakeClock) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := mission.NewFakeClock(time.Date(2025, 3, 10, 7, 0, 0, 0, time.Local))
	svc := engine.NewService(db, engine.WithClock(clock))
	return newBoardModel(ctx, svc, "child1"), svc, clock
}

// drive feeds msg to the model and runs the resulting command once.
func drive(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(boardModel)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, isBatch := out.(tea.BatchMsg); !isBatch {
			next, follow := m.Update(out)
			m = next.(boardModel)
			if follow != nil {
				if loaded := follow(); loaded != nil {
					next, _ = m.Update(loaded)
					m = next.(boardModel)
				}
			}
		}
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardStartAndComplete(t *testing.T) {
	m, _, clock := newTestBoard(t)

	m = drive(t, m, loadedMsg{})
	m = drive(t, m, key("r"))
	require.NotNil(t, m.status)
	assert.Nil(t, m.status.Run)
	assert.Contains(t, m.View(), "Press s to start")

	m = drive(t, m, key("s"))
	require.NotNil(t, m.status.Run)
	assert.Equal(t, mission.PhaseWakeUp, m.status.Run.Phase)

	clock.Advance(2 * time.Minute)
	m = drive(t, m, key("c"))
	assert.Contains(t, m.lastLog, "Done!")
	assert.Equal(t, mission.PhaseInProgress, m.status.Run.Phase)
	assert.Equal(t, 1, m.selected)

	m = drive(t, m, key("d"))
	assert.Contains(t, m.lastLog, "Not yet")
}

func TestBoardAbandonNeedsConfirmation(t *testing.T) {
	m, svc, _ := newTestBoard(t)
	ctx := context.Background()

	_, err := svc.StartRun(ctx, "child1")
	require.NoError(t, err)
	m = drive(t, m, key("r"))
	require.NotNil(t, m.status.Run)

	m = drive(t, m, key("x"))
	assert.True(t, m.confirmAbandon)
	m = drive(t, m, key("n"))
	assert.False(t, m.confirmAbandon)

	status, err := svc.Status(ctx, "child1")
	require.NoError(t, err)
	assert.NotNil(t, status.Run)

	m = drive(t, m, key("x"))
	m = drive(t, m, key("y"))
	assert.Contains(t, m.lastLog, "abandoned")
	assert.Nil(t, m.status.Run)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
}

func TestBoardTickRederivesElapsed(t *testing.T) {
	m, svc, clock := newTestBoard(t)

	_, err := svc.StartRun(context.Background(), "child1")
	require.NoError(t, err)

	steps := []struct {
		advance time.Duration
		want    int
	}{
		{90 * time.Second, 90},
		{30 * time.Second, 120},
	}
	for _, step := range steps {
		clock.Advance(step.advance)
		next, cmd := m.Update(tickMsg(time.Now()))
		require.NotNil(t, cmd)
		m = next.(boardModel)

		next, _ = m.Update(m.loadCmd()())
		m = next.(boardModel)
		require.NotNil(t, m.status.Run)
		assert.Equal(t, step.want, m.status.Run.Tasks[0].ElapsedSeconds)
	}
}
