package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morningquest/internal/generator"
	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

const kid = "child1"

type fakeGen struct {
	tasks      []mission.Task
	comment    string
	err        error
	commentFor string
}

func (f *fakeGen) GenerateSchedule(ctx context.Context, prompt string) ([]mission.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeGen) GenerateComment(ctx context.Context, name string, recent []mission.MissionLog) (string, error) {
	f.commentFor = name
	if f.err != nil {
		return "", f.err
	}
	return f.comment, nil
}

func newTestService(t *testing.T, now time.Time, opts ...Option) (*Service, *mission.FakeClock) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := mission.NewFakeClock(now)
	settings := DefaultSettings()
	settings.DefaultNames = map[string]string{kid: "Mia"}
	opts = append([]Option{WithClock(clock), WithSettings(settings)}, opts...)
	return NewService(db, opts...), clock
}

func day(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.Local)
}

// runMorning plays the default routine and departs at departAt.
func runMorning(t *testing.T, svc *Service, clock *mission.FakeClock, wakeAt, departAt time.Time) *DepartResult {
	t.Helper()
	ctx := context.Background()

	clock.Set(wakeAt)
	_, err := svc.StartRun(ctx, kid)
	require.NoError(t, err)

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	for _, task := range st.Tasks {
		if task.Type == mission.TaskTypeEnd {
			continue
		}
		clock.Advance(time.Minute)
		_, err := svc.CompleteTask(ctx, kid, task.ID)
		require.NoError(t, err)
	}

	clock.Set(departAt)
	res, err := svc.Depart(ctx, kid)
	require.NoError(t, err)
	return res
}

func TestLoadDefaultsForNewProfile(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0))

	st, err := svc.State(context.Background(), kid)
	require.NoError(t, err)
	assert.Equal(t, "Mia", st.Name)
	assert.Equal(t, mission.DefaultTasks(), st.Tasks)
	assert.Equal(t, "08:00", st.DepartureTime)
	assert.Empty(t, st.Logs)

	other, err := svc.State(context.Background(), "child2")
	require.NoError(t, err)
	assert.Equal(t, "child2", other.Name)
}

func TestLegacyStateIsMigratedOnLoad(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0))
	ctx := context.Background()

	legacy := `{"name":"Leo","tasks":[{"id":"a","title":"A","durationMinutes":5,"icon":"sun","color":"#fff"},
		{"id":"b","title":"B","durationMinutes":5,"icon":"???","color":"#fff"},
		{"id":"c","title":"C","durationMinutes":0,"icon":"door-open","color":"#fff"}]}`
	require.NoError(t, svc.repos.Profiles.Put(ctx, kid, []byte(legacy), day(7, 0)))

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, "Leo", st.Name)
	assert.Equal(t, mission.TaskTypeStart, st.Tasks[0].Type)
	assert.Equal(t, mission.TaskTypeFlexible, st.Tasks[1].Type)
	assert.Equal(t, mission.TaskTypeEnd, st.Tasks[2].Type)
	assert.Equal(t, mission.IconDefault, st.Tasks[1].Icon)
	assert.Equal(t, "08:00", st.DepartureTime)
}

func TestCorruptStateFallsBackToDefaults(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0))
	ctx := context.Background()
	require.NoError(t, svc.repos.Profiles.Put(ctx, kid, []byte(`{not json`), day(7, 0)))

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, mission.DefaultTasks(), st.Tasks)
}

func TestOnTimeMorningAddsStamp(t *testing.T) {
	svc, clock := newTestService(t, day(7, 0))
	ctx := context.Background()

	// Default routine plans 50 minutes; waking at 07:05 is too late for the bonus.
	res := runMorning(t, svc, clock, day(7, 5), day(8, 0))
	assert.True(t, res.Outcome.IsSuccess)
	assert.False(t, res.Outcome.IsBonus)
	assert.Equal(t, 1, res.Stamps.StampsAdded)

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	require.Len(t, st.Logs, 1)
	assert.Equal(t, 50*60, st.Logs[0].TotalDurationSeconds)
	require.NotNil(t, st.Logs[0].ActualDurationSeconds)
	assert.Equal(t, 55*60, *st.Logs[0].ActualDurationSeconds)
	assert.Equal(t, 1, st.StampCard.CurrentStamps)

	status, err := svc.Status(ctx, kid)
	require.NoError(t, err)
	assert.Nil(t, status.Run)
}

func TestLateMorningChangesNoStamps(t *testing.T) {
	svc, clock := newTestService(t, day(7, 0))

	res := runMorning(t, svc, clock, day(7, 30), day(8, 1))
	assert.False(t, res.Outcome.IsSuccess)
	assert.Equal(t, 0, res.Stamps.StampsAdded)

	st, err := svc.State(context.Background(), kid)
	require.NoError(t, err)
	require.Len(t, st.Logs, 1)
	assert.False(t, st.Logs[0].IsSuccess)
	assert.Equal(t, 0, st.StampCard.CurrentStamps)
}

func TestEarlyWakeEarnsBonus(t *testing.T) {
	svc, clock := newTestService(t, day(6, 0))

	// Wake-up done at 06:51, deadline is 08:00 - 50m - 10m = 07:00.
	res := runMorning(t, svc, clock, day(6, 50), day(7, 50))
	assert.True(t, res.Outcome.IsBonus)
	assert.Equal(t, 2, res.Stamps.StampsAdded)
}

func TestDepartGuardKeepsRun(t *testing.T) {
	svc, clock := newTestService(t, day(7, 0))
	ctx := context.Background()

	_, err := svc.StartRun(ctx, kid)
	require.NoError(t, err)

	_, err = svc.Depart(ctx, kid)
	var rej mission.DepartRejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, mission.PhaseWakeUp, rej.Phase)

	clock.Advance(time.Minute)
	_, err = svc.CompleteTask(ctx, kid, "2")
	require.ErrorIs(t, err, mission.ErrWakeUpPending)

	res, err := svc.CompleteTask(ctx, kid, "1")
	require.NoError(t, err)
	assert.Equal(t, mission.PhaseInProgress, res.PhaseAfter)

	_, err = svc.Depart(ctx, kid)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, 4, rej.PendingFlexible)

	status, err := svc.Status(ctx, kid)
	require.NoError(t, err)
	require.NotNil(t, status.Run)
	assert.Equal(t, mission.PhaseInProgress, status.Run.Phase)
	assert.Equal(t, "2", status.Run.ActiveTask.ID)

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Empty(t, st.Logs)
}

func TestAbandonKeepsProgression(t *testing.T) {
	svc, clock := newTestService(t, day(7, 0))
	ctx := context.Background()

	runMorning(t, svc, clock, day(7, 0), day(7, 55))
	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	st.StampCard.CurrentStamps = 9
	require.NoError(t, svc.saveState(ctx, svc.repos, kid, st))

	before, err := svc.State(ctx, kid)
	require.NoError(t, err)
	require.Len(t, before.Logs, 1)

	clock.Set(day(7, 30))
	_, err = svc.StartRun(ctx, kid)
	require.NoError(t, err)
	for _, id := range []string{"1", "2", "3"} {
		clock.Advance(time.Minute)
		_, err = svc.CompleteTask(ctx, kid, id)
		require.NoError(t, err)
	}

	require.NoError(t, svc.AbandonRun(ctx, kid))

	after, err := svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, before.StampCard, after.StampCard)
	assert.Equal(t, before.Logs, after.Logs)

	status, err := svc.Status(ctx, kid)
	require.NoError(t, err)
	assert.Nil(t, status.Run)
}

func TestRunSurvivesServiceRestart(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := mission.NewFakeClock(day(7, 0))
	first := NewService(db, WithClock(clock))
	_, err = first.StartRun(ctx, kid)
	require.NoError(t, err)
	clock.Advance(90 * time.Second)
	_, err = first.CompleteTask(ctx, kid, "1")
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	second := NewService(db, WithClock(clock))
	status, err := second.Status(ctx, kid)
	require.NoError(t, err)
	require.NotNil(t, status.Run)

	for _, tv := range status.Run.Tasks {
		switch tv.Task.ID {
		case "1":
			assert.True(t, tv.Completed)
			assert.Equal(t, 90, tv.ElapsedSeconds)
		case "2":
			assert.True(t, tv.Active)
			assert.Equal(t, 120, tv.ElapsedSeconds)
		}
	}
}

func TestStartGates(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0))
	ctx := context.Background()

	_, err := svc.StartRun(ctx, kid)
	require.NoError(t, err)
	_, err = svc.StartRun(ctx, kid)
	require.ErrorIs(t, err, ErrRunInProgress)

	_, err = svc.AddTask(ctx, kid, AddTaskInput{Title: "Feed the cat"})
	require.ErrorIs(t, err, ErrRunInProgress)

	// The second profile is independent.
	_, err = svc.StartRun(ctx, "child2")
	require.NoError(t, err)

	require.NoError(t, svc.AbandonRun(ctx, kid))
	require.ErrorIs(t, svc.AbandonRun(ctx, kid), ErrNoActiveRun)
	_, err = svc.CompleteTask(ctx, kid, "1")
	require.ErrorIs(t, err, ErrNoActiveRun)
}

func TestRewardCycle(t *testing.T) {
	gen := &fakeGen{comment: "Ten mornings, wow!"}
	svc, clock := newTestService(t, day(7, 0), WithGenerator(gen))
	ctx := context.Background()

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	st.StampCard.CurrentStamps = 9
	st.StampCard.Rank = 4
	require.NoError(t, svc.saveState(ctx, svc.repos, kid, st))

	res := runMorning(t, svc, clock, day(7, 5), day(7, 59))
	assert.True(t, res.RewardPending)

	_, err = svc.StartRun(ctx, kid)
	require.ErrorIs(t, err, ErrRewardPending)
	_, err = svc.AddTask(ctx, kid, AddTaskInput{Title: "Feed the cat"})
	require.ErrorIs(t, err, ErrRewardPending)

	reward, err := svc.AcknowledgeReward(ctx, kid)
	require.NoError(t, err)
	assert.False(t, reward.CommentFallback)
	assert.Equal(t, 5, reward.RankAfter)
	assert.True(t, reward.GradeUp)
	assert.Equal(t, "Mia", gen.commentFor)

	st, err = svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, 0, st.StampCard.CurrentStamps)
	assert.Equal(t, 1, st.StampCard.TotalRewards)
	assert.Equal(t, 5, st.StampCard.Rank)
	require.Len(t, st.StampCard.Medals, 1)
	assert.Equal(t, 5, st.StampCard.Medals[0].RankAtTime)
	assert.Equal(t, "Ten mornings, wow!", st.StampCard.Medals[0].Comment)

	_, err = svc.AcknowledgeReward(ctx, kid)
	require.ErrorIs(t, err, mission.ErrNoRewardPending)

	_, err = svc.StartRun(ctx, kid)
	require.NoError(t, err)
}

func TestRewardCommentFallback(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0), WithGenerator(&fakeGen{err: errors.New("timeout")}))
	ctx := context.Background()

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	st.StampCard.CurrentStamps = 10
	require.NoError(t, svc.saveState(ctx, svc.repos, kid, st))

	reward, err := svc.AcknowledgeReward(ctx, kid)
	require.NoError(t, err)
	assert.True(t, reward.CommentFallback)
	assert.Equal(t, generator.FallbackComment, reward.Medal.Comment)

	gens, err := svc.Generations(ctx, kid, 5)
	require.NoError(t, err)
	require.Len(t, gens, 1)
	assert.False(t, gens[0].OK)
}

func TestGenerateScheduleFailureLeavesRoutine(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0), WithGenerator(&fakeGen{err: errors.New("503")}))
	ctx := context.Background()

	_, err := svc.GenerateSchedule(ctx, kid, "busy morning", true)
	var genErr GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "generate schedule", genErr.Op)

	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, mission.DefaultTasks(), st.Tasks)
}

func TestGenerateScheduleDisabledIsNotAudited(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0))
	ctx := context.Background()

	_, err := svc.GenerateSchedule(ctx, kid, "busy morning", false)
	require.ErrorIs(t, err, generator.ErrDisabled)

	gens, err := svc.Generations(ctx, kid, 5)
	require.NoError(t, err)
	assert.Empty(t, gens)
}

func TestGenerateScheduleApplies(t *testing.T) {
	tasks := []mission.Task{
		{ID: "gen-a", Title: "Up", DurationMinutes: 5, Icon: mission.IconSun, Color: "#fbbf24", Type: mission.TaskTypeStart},
		{ID: "gen-b", Title: "Go", DurationMinutes: 0, Icon: mission.IconDoorOpen, Color: "#fb7185", Type: mission.TaskTypeEnd},
	}
	svc, _ := newTestService(t, day(7, 0), WithGenerator(&fakeGen{tasks: tasks}))
	ctx := context.Background()

	res, err := svc.GenerateSchedule(ctx, kid, "short morning", false)
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalMinutes)
	st, err := svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Len(t, st.Tasks, 6)

	_, err = svc.GenerateSchedule(ctx, kid, "short morning", true)
	require.NoError(t, err)
	st, err = svc.State(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, tasks, st.Tasks)
}

func TestRoutineEditing(t *testing.T) {
	svc, _ := newTestService(t, day(7, 0))
	ctx := context.Background()

	st, err := svc.AddTask(ctx, kid, AddTaskInput{Title: "Feed the cat", Minutes: 3, Icon: "gamepad"})
	require.NoError(t, err)
	require.Len(t, st.Tasks, 7)
	added := st.Tasks[5]
	assert.Equal(t, "Feed the cat", added.Title)
	assert.Equal(t, mission.TaskTypeEnd, st.Tasks[6].Type)

	st, err = svc.EditTask(ctx, kid, added.ID, "Feed the cat", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Tasks[5].DurationMinutes)

	st, err = svc.MoveTask(ctx, kid, added.ID, mission.Up)
	require.NoError(t, err)
	assert.Equal(t, added.ID, st.Tasks[4].ID)

	st, err = svc.RemoveTask(ctx, kid, added.ID)
	require.NoError(t, err)
	assert.Len(t, st.Tasks, 6)

	_, err = svc.SetDepartureTime(ctx, kid, "7:45")
	require.NoError(t, err)
	_, err = svc.SetDepartureTime(ctx, kid, "later")
	require.Error(t, err)
	st, err = svc.SetName(ctx, kid, "  Mia  ")
	require.NoError(t, err)
	assert.Equal(t, "Mia", st.Name)
	assert.Equal(t, "07:45", st.DepartureTime)

	_, err = svc.RemoveTask(ctx, kid, "1")
	require.NoError(t, err)
	st, err = svc.ResetTasks(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, mission.DefaultTasks(), st.Tasks)
}

func TestLogsSummary(t *testing.T) {
	svc, clock := newTestService(t, day(7, 0))
	ctx := context.Background()

	runMorning(t, svc, clock, day(7, 5), day(7, 58))
	clock.Set(day(7, 0).AddDate(0, 0, 1))
	runMorning(t, svc, clock, day(7, 30).AddDate(0, 0, 1), day(8, 5).AddDate(0, 0, 1))

	logs, err := svc.Logs(ctx, kid)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.Summary.Runs)
	assert.Equal(t, 1, logs.Summary.Successes)
	assert.InDelta(t, 50, logs.Summary.AvgPlannedMinutes, 1e-9)
	assert.Len(t, logs.Series, 2)
}
