package mission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func departedRun(t *testing.T, departAt time.Time, bonus bool) RunSnapshot {
	t.Helper()
	r := NewRun([]Task{
		{ID: "wake", DurationMinutes: 10, Type: TaskTypeStart},
		{ID: "eat", DurationMinutes: 20, Type: TaskTypeFlexible},
		{ID: "go", DurationMinutes: 0, Type: TaskTypeEnd},
	}, departAt.Add(-30*time.Minute))
	_, err := r.Complete("wake", departAt.Add(-20*time.Minute))
	require.NoError(t, err)
	_, err = r.Complete("eat", departAt.Add(-time.Minute))
	require.NoError(t, err)
	if bonus {
		r.MarkBonus()
	}
	snap, err := r.Depart(departAt)
	require.NoError(t, err)
	return snap
}

func TestEvaluateBoundaryIsInclusive(t *testing.T) {
	o := Evaluate(departedRun(t, at(8, 0), false), "08:00")
	assert.True(t, o.IsSuccess)
	assert.Equal(t, "2025-03-10", o.Log.Date)
	assert.Equal(t, 30*60, o.Log.TotalDurationSeconds)
	require.NotNil(t, o.Log.ActualDurationSeconds)
	assert.Equal(t, 30*60, *o.Log.ActualDurationSeconds)

	late := Evaluate(departedRun(t, at(8, 0).Add(time.Second), false), "08:00")
	assert.False(t, late.IsSuccess)
}

func TestEvaluateHasNoRollover(t *testing.T) {
	// 00:05 departure evaluated at 23:59 compares against the same day.
	o := Evaluate(departedRun(t, at(23, 59), false), "00:05")
	assert.False(t, o.IsSuccess)
}

func TestEvaluateThreadsBonus(t *testing.T) {
	o := Evaluate(departedRun(t, at(7, 45), true), "08:00")
	assert.True(t, o.IsBonus)
	assert.True(t, o.Log.IsBonus)
}

func TestLedgerRewardCycle(t *testing.T) {
	l := NewLedger(DefaultStampsPerReward, OverflowDiscard)
	card := StampCard{CurrentStamps: 9, Rank: 3, Medals: []Medal{}}

	res := l.ApplyOutcome(&card, Outcome{IsSuccess: true})
	assert.Equal(t, 1, res.StampsAdded)
	assert.Equal(t, 10, card.CurrentStamps)
	assert.True(t, res.RewardPending)

	now := at(8, 1)
	reward, err := l.AcknowledgeReward(&card, "Great job!", now)
	require.NoError(t, err)
	assert.Equal(t, 0, card.CurrentStamps)
	assert.Equal(t, 1, card.TotalRewards)
	assert.Equal(t, 4, card.Rank)
	require.Len(t, card.Medals, 1)

	m := card.Medals[0]
	assert.Equal(t, 4, m.RankAtTime)
	assert.Equal(t, RankTitle(4), m.Title)
	assert.Equal(t, "Great job!", m.Comment)
	assert.Equal(t, "2025-03-10", m.Date)
	assert.Contains(t, m.ID, "medal-")
	assert.Equal(t, 3, reward.RankBefore)
	assert.Equal(t, 4, reward.RankAfter)

	_, err = l.AcknowledgeReward(&card, "again", now)
	require.ErrorIs(t, err, ErrNoRewardPending)
	assert.Len(t, card.Medals, 1)
}

func TestLedgerBonusTriggersSingleReward(t *testing.T) {
	l := NewLedger(DefaultStampsPerReward, OverflowDiscard)
	card := StampCard{CurrentStamps: 8}

	res := l.ApplyOutcome(&card, Outcome{IsSuccess: true, IsBonus: true})
	assert.Equal(t, 2, res.StampsAdded)
	assert.Equal(t, 10, card.CurrentStamps)

	_, err := l.AcknowledgeReward(&card, "", at(8, 0))
	require.NoError(t, err)
	assert.False(t, l.RewardPending(card))
	assert.Equal(t, 1, card.TotalRewards)
	assert.Len(t, card.Medals, 1)
}

func TestLedgerFailureChangesNothing(t *testing.T) {
	l := NewLedger(DefaultStampsPerReward, OverflowDiscard)
	card := StampCard{CurrentStamps: 4, Rank: 2}

	res := l.ApplyOutcome(&card, Outcome{IsSuccess: false, IsBonus: true})
	assert.Equal(t, 0, res.StampsAdded)
	assert.Equal(t, StampCard{CurrentStamps: 4, Rank: 2}, card)
}

func TestLedgerOverflowPolicies(t *testing.T) {
	discard := NewLedger(DefaultStampsPerReward, OverflowDiscard)
	card := StampCard{CurrentStamps: 11}
	res, err := discard.AcknowledgeReward(&card, "", at(8, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, card.CurrentStamps)
	assert.Equal(t, 0, res.CarriedStamps)

	carry := NewLedger(DefaultStampsPerReward, OverflowCarry)
	card = StampCard{CurrentStamps: 11}
	res, err = carry.AcknowledgeReward(&card, "", at(8, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, card.CurrentStamps)
	assert.Equal(t, 1, res.CarriedStamps)
}

func TestLedgerRankCapsAtMax(t *testing.T) {
	l := NewLedger(DefaultStampsPerReward, OverflowDiscard)
	card := StampCard{CurrentStamps: 10, Rank: MaxRank}

	res, err := l.AcknowledgeReward(&card, "", at(8, 0))
	require.NoError(t, err)
	assert.Equal(t, MaxRank, card.Rank)
	assert.True(t, res.MaxRank)
	assert.False(t, res.GradeUp)
	assert.Equal(t, MaxRank, card.Medals[0].RankAtTime)
}

func TestLedgerGradeUp(t *testing.T) {
	l := NewLedger(DefaultStampsPerReward, OverflowDiscard)
	card := StampCard{CurrentStamps: 10, Rank: len(Classes) - 1}

	res, err := l.AcknowledgeReward(&card, "", at(8, 0))
	require.NoError(t, err)
	assert.True(t, res.GradeUp)
	assert.Equal(t, "Bunny", GradeFor(card.Rank).Name)
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := ParseOverflowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OverflowDiscard, p)

	p, err = ParseOverflowPolicy(" Carry ")
	require.NoError(t, err)
	assert.Equal(t, OverflowCarry, p)

	_, err = ParseOverflowPolicy("bank")
	require.Error(t, err)
}

func TestNewLedgerDefaults(t *testing.T) {
	l := NewLedger(0, "bogus")
	assert.Equal(t, DefaultStampsPerReward, l.StampsPerReward)
	assert.Equal(t, OverflowDiscard, l.Overflow)
	assert.Equal(t, 3, l.StampsToReward(StampCard{CurrentStamps: 7}))
	assert.Equal(t, 0, l.StampsToReward(StampCard{CurrentStamps: 12}))
}
