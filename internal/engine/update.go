package engine

import (
	"context"
	"fmt"
	"strings"

	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// editState loads a profile, applies fn and saves the result. Edits are
// refused while a run is active or a full stamp card waits to be collected.
func (s *Service) editState(ctx context.Context, key, op string, fn func(st *mission.ChildState) error) (*mission.ChildState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *mission.ChildState
	err := storage.WithTx(ctx, s.db, func(r storage.Repos) error {
		if err := s.requireIdle(ctx, r, key); err != nil {
			return err
		}
		st, err := s.loadState(ctx, r, key)
		if err != nil {
			return err
		}
		if s.ledger.RewardPending(st.StampCard) {
			return ErrRewardPending
		}
		if err := fn(st); err != nil {
			return err
		}
		if err := s.saveState(ctx, r, key, st); err != nil {
			return err
		}
		out = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("profile", key).Str("op", op).Msg("state updated")
	return out, nil
}

type AddTaskInput struct {
	Title   string
	Minutes int
	Icon    string
	Color   string
}

func (s *Service) AddTask(ctx context.Context, key string, in AddTaskInput) (*mission.ChildState, error) {
	return s.editState(ctx, key, "add_task", func(st *mission.ChildState) error {
		title := in.Title
		if strings.TrimSpace(title) == "" {
			title = mission.NewTaskTitle
		}
		tasks, err := mission.AddTask(st.Tasks, mission.Task{
			ID:              mission.NewTaskID(s.clock.Now()),
			Title:           title,
			DurationMinutes: in.Minutes,
			Icon:            mission.ParseTaskIcon(in.Icon),
			Color:           in.Color,
		})
		if err != nil {
			return err
		}
		st.Tasks = tasks
		return nil
	})
}

func (s *Service) RemoveTask(ctx context.Context, key, taskID string) (*mission.ChildState, error) {
	return s.editState(ctx, key, "remove_task", func(st *mission.ChildState) error {
		tasks, err := mission.RemoveTask(st.Tasks, taskID)
		if err != nil {
			return err
		}
		st.Tasks = tasks
		return nil
	})
}

func (s *Service) MoveTask(ctx context.Context, key, taskID string, dir mission.Direction) (*mission.ChildState, error) {
	return s.editState(ctx, key, "move_task", func(st *mission.ChildState) error {
		tasks, err := mission.MoveTask(st.Tasks, taskID, dir)
		if err != nil {
			return err
		}
		st.Tasks = tasks
		return nil
	})
}

func (s *Service) EditTask(ctx context.Context, key, taskID, title string, minutes int) (*mission.ChildState, error) {
	return s.editState(ctx, key, "edit_task", func(st *mission.ChildState) error {
		tasks, err := mission.EditTask(st.Tasks, taskID, title, minutes)
		if err != nil {
			return err
		}
		st.Tasks = tasks
		return nil
	})
}

// ResetTasks restores the built-in routine.
func (s *Service) ResetTasks(ctx context.Context, key string) (*mission.ChildState, error) {
	return s.editState(ctx, key, "reset_tasks", func(st *mission.ChildState) error {
		st.Tasks = mission.DefaultTasks()
		return nil
	})
}

func (s *Service) SetName(ctx context.Context, key, name string) (*mission.ChildState, error) {
	return s.editState(ctx, key, "set_name", func(st *mission.ChildState) error {
		n := strings.TrimSpace(name)
		if n == "" {
			return fmt.Errorf("name is required")
		}
		st.Name = n
		return nil
	})
}

// SetDepartureTime stores a new departure time. Malformed input is an error
// here; only persisted values are silently defaulted.
func (s *Service) SetDepartureTime(ctx context.Context, key, hhmm string) (*mission.ChildState, error) {
	c, err := mission.ParseClockTime(hhmm)
	if err != nil {
		return nil, err
	}
	return s.editState(ctx, key, "set_departure", func(st *mission.ChildState) error {
		st.DepartureTime = c.String()
		return nil
	})
}

// ReplaceTasks swaps the whole routine, e.g. for a generated one.
func (s *Service) ReplaceTasks(ctx context.Context, key string, tasks []mission.Task) (*mission.ChildState, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyRoutine
	}
	return s.editState(ctx, key, "replace_tasks", func(st *mission.ChildState) error {
		cp := make([]mission.Task, len(tasks))
		copy(cp, tasks)
		st.Tasks = mission.EnforceTypeInvariant(cp)
		return nil
	})
}
