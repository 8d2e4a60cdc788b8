package mission

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OverflowPolicy decides what happens to stamps above the reward threshold
// when a reward is acknowledged.
type OverflowPolicy string

const (
	// OverflowDiscard resets the card to zero and drops any excess stamps.
	OverflowDiscard OverflowPolicy = "discard"
	// OverflowCarry keeps the excess stamps on the next card.
	OverflowCarry OverflowPolicy = "carry"
)

func (p OverflowPolicy) IsValid() bool {
	switch p {
	case OverflowDiscard, OverflowCarry:
		return true
	default:
		return false
	}
}

func ParseOverflowPolicy(input string) (OverflowPolicy, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return OverflowDiscard, nil
	}
	p := OverflowPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid overflow policy: %q", input)
	}
	return p, nil
}

const (
	DefaultStampsPerReward = 10
	stampsPerSuccess       = 1
	stampsPerBonus         = 2
)

// Ledger applies run outcomes to a stamp card and turns full cards into
// rank-ups and medals.
type Ledger struct {
	StampsPerReward int
	Overflow        OverflowPolicy
}

func NewLedger(stampsPerReward int, overflow OverflowPolicy) Ledger {
	if stampsPerReward <= 0 {
		stampsPerReward = DefaultStampsPerReward
	}
	if !overflow.IsValid() {
		overflow = OverflowDiscard
	}
	return Ledger{StampsPerReward: stampsPerReward, Overflow: overflow}
}

type StampResult struct {
	StampsAdded   int
	StampsBefore  int
	StampsAfter   int
	RewardPending bool
}

// ApplyOutcome adds stamps for a successful run (two for a bonus run). A
// failed run leaves the card untouched.
func (l Ledger) ApplyOutcome(card *StampCard, o Outcome) StampResult {
	res := StampResult{StampsBefore: card.CurrentStamps}
	if o.IsSuccess {
		res.StampsAdded = stampsPerSuccess
		if o.IsBonus {
			res.StampsAdded = stampsPerBonus
		}
		card.CurrentStamps += res.StampsAdded
	}
	res.StampsAfter = card.CurrentStamps
	res.RewardPending = l.RewardPending(*card)
	return res
}

// RewardPending reports whether the card is full and waiting for the reward
// to be acknowledged.
func (l Ledger) RewardPending(card StampCard) bool {
	return card.CurrentStamps >= l.StampsPerReward
}

// StampsToReward is the number of stamps still missing on the current card.
func (l Ledger) StampsToReward(card StampCard) int {
	n := l.StampsPerReward - card.CurrentStamps
	if n < 0 {
		return 0
	}
	return n
}

type RewardResult struct {
	Medal         Medal
	RankBefore    int
	RankAfter     int
	GradeUp       bool
	MaxRank       bool
	CarriedStamps int
}

// AcknowledgeReward settles one pending reward: the card is reset according
// to the overflow policy, the rank goes up by one (capped at MaxRank) and a
// medal for the newly reached rank is appended.
func (l Ledger) AcknowledgeReward(card *StampCard, comment string, now time.Time) (RewardResult, error) {
	if !l.RewardPending(*card) {
		return RewardResult{}, ErrNoRewardPending
	}

	carried := 0
	if l.Overflow == OverflowCarry {
		carried = card.CurrentStamps - l.StampsPerReward
	}
	card.CurrentStamps = carried
	card.TotalRewards++

	before := ClampRank(card.Rank)
	after := ClampRank(before + 1)
	card.Rank = after

	medal := Medal{
		ID:         "medal-" + uuid.NewString(),
		Title:      RankTitle(after),
		Date:       now.Format("2006-01-02"),
		Comment:    comment,
		RankAtTime: after,
	}
	card.Medals = append(card.Medals, medal)

	return RewardResult{
		Medal:         medal,
		RankBefore:    before,
		RankAfter:     after,
		GradeUp:       after != before && IsGradeUp(after),
		MaxRank:       IsMaxRank(after),
		CarriedStamps: carried,
	}, nil
}
