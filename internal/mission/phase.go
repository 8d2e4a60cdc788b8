package mission

import "time"

type Phase string

const (
	PhaseWakeUp        Phase = "wake_up"
	PhaseInProgress    Phase = "in_progress"
	PhaseReadyToDepart Phase = "ready_to_depart"
	PhaseDeparted      Phase = "departed"
)

// RunState is the persistable form of an active run.
type RunState struct {
	Tasks                []Task         `json:"tasks"`
	StartedAt            time.Time      `json:"startedAt"`
	LastActionAt         time.Time      `json:"lastActionAt"`
	CompletedTaskIDs     []string       `json:"completedTaskIds"`
	ElapsedSecondsByTask map[string]int `json:"elapsedSecondsByTask"`
	Bonus                bool           `json:"bonus"`
	DepartedAt           *time.Time     `json:"departedAt,omitempty"`
}

// Run sequences one morning routine from wake-up to departure. The active
// task is never stored; it is always the first task in list order that has
// not been completed.
type Run struct {
	tasks      []Task
	completed  map[string]bool
	order      []string
	tracker    *ElapsedTracker
	startedAt  time.Time
	departedAt *time.Time
	bonus      bool
}

// NewRun starts a run over a copy of tasks.
func NewRun(tasks []Task, now time.Time) *Run {
	cp := make([]Task, len(tasks))
	copy(cp, tasks)
	return &Run{
		tasks:     EnforceTypeInvariant(cp),
		completed: map[string]bool{},
		tracker:   NewElapsedTracker(now),
		startedAt: now,
	}
}

// RestoreRun rebuilds a run from its persisted state. Completed ids that no
// longer match a task are dropped.
func RestoreRun(st RunState) *Run {
	r := NewRun(st.Tasks, st.StartedAt)
	r.tracker = RestoreElapsedTracker(st.LastActionAt, st.ElapsedSecondsByTask)
	r.bonus = st.Bonus
	for _, id := range st.CompletedTaskIDs {
		if _, ok := findTask(r.tasks, id); !ok || r.completed[id] {
			continue
		}
		r.completed[id] = true
		r.order = append(r.order, id)
	}
	if st.DepartedAt != nil {
		at := *st.DepartedAt
		r.departedAt = &at
	}
	return r
}

func (r *Run) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *Run) StartedAt() time.Time { return r.startedAt }

func (r *Run) taskOfType(tt TaskType) *Task {
	for i := range r.tasks {
		if r.tasks[i].Type == tt {
			t := r.tasks[i]
			return &t
		}
	}
	return nil
}

// StartTask returns the wake-up task, or nil when the routine has none.
func (r *Run) StartTask() *Task { return r.taskOfType(TaskTypeStart) }

// EndTask returns the departure task, or nil when the routine has none.
func (r *Run) EndTask() *Task { return r.taskOfType(TaskTypeEnd) }

func (r *Run) FlexibleTasks() []Task {
	var out []Task
	for _, t := range r.tasks {
		if t.Type == TaskTypeFlexible {
			out = append(out, t)
		}
	}
	return out
}

func (r *Run) IsCompleted(id string) bool {
	return r.completed[id]
}

// CompletedIDs returns completed task ids in completion order.
func (r *Run) CompletedIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Run) IsWakeUpPhase() bool {
	start := r.StartTask()
	return start != nil && !r.completed[start.ID]
}

func (r *Run) pendingFlexible() int {
	n := 0
	for _, t := range r.tasks {
		if t.Type == TaskTypeFlexible && !r.completed[t.ID] {
			n++
		}
	}
	return n
}

func (r *Run) AllFlexibleCompleted() bool {
	return r.pendingFlexible() == 0
}

// CanDepart is the departure guard.
func (r *Run) CanDepart() bool {
	return r.departedAt == nil && !r.IsWakeUpPhase() && r.AllFlexibleCompleted()
}

func (r *Run) Phase() Phase {
	switch {
	case r.departedAt != nil:
		return PhaseDeparted
	case r.IsWakeUpPhase():
		return PhaseWakeUp
	case r.AllFlexibleCompleted():
		return PhaseReadyToDepart
	default:
		return PhaseInProgress
	}
}

// ActiveTask returns the first uncompleted task in list order, or nil.
func (r *Run) ActiveTask() *Task {
	for i := range r.tasks {
		if !r.completed[r.tasks[i].ID] {
			t := r.tasks[i]
			return &t
		}
	}
	return nil
}

func (r *Run) activeID() string {
	if t := r.ActiveTask(); t != nil {
		return t.ID
	}
	return ""
}

// CompleteResult describes one accepted completion event.
type CompleteResult struct {
	TaskID           string
	AlreadyCompleted bool
	SecondsCharged   int
	ChargedTaskID    string
	PhaseBefore      Phase
	PhaseAfter       Phase
}

// Complete marks a task done. Completing an already completed task is a
// no-op. Flexible tasks are refused while the wake-up task is pending, and
// the end task can only be completed through Depart.
func (r *Run) Complete(id string, now time.Time) (CompleteResult, error) {
	idx, ok := findTask(r.tasks, id)
	if !ok {
		return CompleteResult{}, ErrUnknownTask
	}
	before := r.Phase()
	if before == PhaseDeparted {
		return CompleteResult{}, ErrRunFinished
	}
	if r.completed[id] {
		return CompleteResult{TaskID: id, AlreadyCompleted: true, PhaseBefore: before, PhaseAfter: before}, nil
	}

	task := r.tasks[idx]
	if task.Type == TaskTypeEnd {
		return CompleteResult{}, ErrEndTaskDepart
	}
	if task.Type != TaskTypeStart && r.IsWakeUpPhase() {
		return CompleteResult{}, ErrWakeUpPending
	}

	// Charge the interval to the task that was active before this event.
	charged := r.activeID()
	secs := r.tracker.Record(charged, now)

	r.completed[id] = true
	r.order = append(r.order, id)

	return CompleteResult{
		TaskID:         id,
		SecondsCharged: secs,
		ChargedTaskID:  charged,
		PhaseBefore:    before,
		PhaseAfter:     r.Phase(),
	}, nil
}

// Depart finishes the run. It is only accepted in PhaseReadyToDepart; any
// other phase returns an error and leaves the run untouched.
func (r *Run) Depart(now time.Time) (RunSnapshot, error) {
	if r.departedAt != nil {
		return RunSnapshot{}, ErrRunFinished
	}
	if !r.CanDepart() {
		return RunSnapshot{}, DepartRejectedError{Phase: r.Phase(), PendingFlexible: r.pendingFlexible()}
	}

	r.tracker.Record(r.activeID(), now)
	if end := r.EndTask(); end != nil && !r.completed[end.ID] {
		r.completed[end.ID] = true
		r.order = append(r.order, end.ID)
	}
	at := now
	r.departedAt = &at
	return r.Snapshot(), nil
}

// MarkBonus flags the run for the early wake-up bonus.
func (r *Run) MarkBonus() { r.bonus = true }

func (r *Run) Bonus() bool { return r.bonus }

// CurrentElapsed is the live elapsed time of a task, including the open
// interval when it is the active task.
func (r *Run) CurrentElapsed(taskID string, now time.Time) int {
	if r.departedAt != nil {
		return r.tracker.Elapsed(taskID)
	}
	return r.tracker.CurrentElapsed(taskID, r.activeID(), now)
}

// RemainingPlannedMinutes sums planned minutes of uncompleted tasks.
func (r *Run) RemainingPlannedMinutes() float64 {
	return RemainingMinutes(r.tasks, r.completed)
}

// Budget evaluates the time budget of this run at now.
func (r *Run) Budget(calc BudgetCalculator, now time.Time, departureTime string) Budget {
	return calc.Calculate(now, departureTime, r.RemainingPlannedMinutes())
}

// State returns the persistable form of the run.
func (r *Run) State() RunState {
	st := RunState{
		Tasks:                r.Tasks(),
		StartedAt:            r.startedAt,
		LastActionAt:         r.tracker.LastActionAt(),
		CompletedTaskIDs:     r.CompletedIDs(),
		ElapsedSecondsByTask: r.tracker.Snapshot(),
		Bonus:                r.bonus,
	}
	if r.departedAt != nil {
		at := *r.departedAt
		st.DepartedAt = &at
	}
	return st
}

// RunSnapshot is the frozen view of a departed run handed to Evaluate.
type RunSnapshot struct {
	Tasks                []Task
	CompletedTaskIDs     []string
	ElapsedSecondsByTask map[string]int
	TotalElapsedSeconds  int
	StartedAt            time.Time
	DepartedAt           time.Time
	Bonus                bool
}

func (r *Run) Snapshot() RunSnapshot {
	snap := RunSnapshot{
		Tasks:                r.Tasks(),
		CompletedTaskIDs:     r.CompletedIDs(),
		ElapsedSecondsByTask: r.tracker.Snapshot(),
		TotalElapsedSeconds:  r.tracker.TotalSeconds(),
		StartedAt:            r.startedAt,
		Bonus:                r.bonus,
	}
	if r.departedAt != nil {
		snap.DepartedAt = *r.departedAt
	}
	return snap
}
