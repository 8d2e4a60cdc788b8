package mission

import "time"

// ElapsedTracker accumulates the actual seconds spent on each task. Time is
// only charged at action boundaries (completion, departure); live values are
// derived from the last action timestamp without touching stored state.
type ElapsedTracker struct {
	lastActionAt time.Time
	elapsed      map[string]int
}

func NewElapsedTracker(start time.Time) *ElapsedTracker {
	return &ElapsedTracker{lastActionAt: start, elapsed: map[string]int{}}
}

// RestoreElapsedTracker rebuilds a tracker from persisted accumulators.
func RestoreElapsedTracker(lastActionAt time.Time, elapsed map[string]int) *ElapsedTracker {
	t := NewElapsedTracker(lastActionAt)
	for id, secs := range elapsed {
		if secs > 0 {
			t.elapsed[id] = secs
		}
	}
	return t
}

// wholeSecondsSince floors now-since to seconds; clock regressions count as zero.
func wholeSecondsSince(since, now time.Time) int {
	d := now.Sub(since)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Record closes the interval since the previous action, charges it to
// activeID (if any) and moves the action timestamp to now. It returns the
// number of seconds charged.
func (t *ElapsedTracker) Record(activeID string, now time.Time) int {
	delta := wholeSecondsSince(t.lastActionAt, now)
	if activeID != "" {
		t.elapsed[activeID] += delta
	} else {
		delta = 0
	}
	t.lastActionAt = now
	return delta
}

// Elapsed returns the stored accumulator for a task.
func (t *ElapsedTracker) Elapsed(taskID string) int {
	return t.elapsed[taskID]
}

// CurrentElapsed returns the live elapsed seconds for taskID: the stored
// value plus, when taskID is the active task, the open interval up to now.
func (t *ElapsedTracker) CurrentElapsed(taskID, activeID string, now time.Time) int {
	secs := t.elapsed[taskID]
	if taskID != "" && taskID == activeID {
		secs += wholeSecondsSince(t.lastActionAt, now)
	}
	return secs
}

func (t *ElapsedTracker) TotalSeconds() int {
	total := 0
	for _, secs := range t.elapsed {
		total += secs
	}
	return total
}

func (t *ElapsedTracker) LastActionAt() time.Time {
	return t.lastActionAt
}

// Snapshot returns a copy of the accumulators.
func (t *ElapsedTracker) Snapshot() map[string]int {
	out := make(map[string]int, len(t.elapsed))
	for id, secs := range t.elapsed {
		out[id] = secs
	}
	return out
}
