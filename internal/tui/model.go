package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"morningquest/internal/engine"
	"morningquest/internal/mission"
	"morningquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	key string

	width  int
	height int

	status   *engine.StatusResult
	selected int

	confirmAbandon bool

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status *engine.StatusResult
	err    error
}

// tickMsg only triggers a re-derivation; the time it carries is not used
// for any timing math.
type tickMsg time.Time

type actionMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, key string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		key:     key,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx, m.key)
		return loadedMsg{status: st, err: err}
	}
}

func (m boardModel) actionCmd(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		log, err := fn()
		return actionMsg{log: log, err: err}
	}
}

func (m boardModel) startCmd() tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.svc.StartRun(m.ctx, m.key)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Good morning! Finish by %s.", res.EstimatedDone.Format("15:04")), nil
	})
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.svc.CompleteTask(m.ctx, m.key, id)
		if err != nil {
			return "", err
		}
		if res.AlreadyCompleted {
			return "Already done.", nil
		}
		msg := fmt.Sprintf("Done! (%s)", ui.Clock(res.SecondsCharged))
		if res.BonusEarned {
			msg += " " + ui.BadgeBonus
		}
		return msg, nil
	})
}

func (m boardModel) departCmd() tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.svc.Depart(m.ctx, m.key)
		if err != nil {
			return "", err
		}
		if !res.Outcome.IsSuccess {
			return "Departed late. Try again tomorrow!", nil
		}
		msg := fmt.Sprintf("On time! +%d stamp(s).", res.Stamps.StampsAdded)
		if res.RewardPending {
			msg += " Card full, press g to collect your reward!"
		}
		return msg, nil
	})
}

func (m boardModel) rewardCmd() tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.svc.AcknowledgeReward(m.ctx, m.key)
		if err != nil {
			return "", err
		}
		msg := fmt.Sprintf("%s %s: %s", ui.IconMedal, res.Medal.Title, res.Medal.Comment)
		if res.GradeUp {
			msg += " " + ui.BadgeGradeUp
		}
		return msg, nil
	})
}

func (m boardModel) abandonCmd() tea.Cmd {
	return m.actionCmd(func() (string, error) {
		if err := m.svc.AbandonRun(m.ctx, m.key); err != nil {
			return "", err
		}
		return "Run abandoned. Nothing was recorded.", nil
	})
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), tick())
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.clampSelection()
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = describeErr(msg.err)
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmAbandon {
		m.confirmAbandon = false
		switch msg.String() {
		case "y", "Y":
			m.lastLog = "Abandoning…"
			return m, m.abandonCmd()
		default:
			m.lastLog = "Keep going!"
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.taskViews())-1 {
			m.selected++
		}
		return m, nil
	case "s":
		return m, m.startCmd()
	case "c", " ", "enter":
		views := m.taskViews()
		if m.selected < 0 || m.selected >= len(views) {
			return m, nil
		}
		tv := views[m.selected]
		if tv.Task.Type == mission.TaskTypeEnd {
			return m, m.departCmd()
		}
		return m, m.completeCmd(tv.Task.ID)
	case "d":
		return m, m.departCmd()
	case "g":
		return m, m.rewardCmd()
	case "x":
		if m.status == nil || m.status.Run == nil {
			m.lastLog = "No run to abandon."
			return m, nil
		}
		m.confirmAbandon = true
		m.lastLog = ui.Warn.Render("Abandon this morning? Nothing will be recorded. (y/N)")
		return m, nil
	}
	return m, nil
}

func describeErr(err error) string {
	var rej mission.DepartRejectedError
	switch {
	case errors.As(err, &rej):
		return "Not yet: " + rej.Error()
	case errors.Is(err, mission.ErrWakeUpPending):
		return "Wake up first!"
	case errors.Is(err, engine.ErrRewardPending):
		return "Collect your reward first (g)."
	default:
		return "Error: " + err.Error()
	}
}

func (m boardModel) taskViews() []engine.TaskView {
	if m.status == nil || m.status.Run == nil {
		return nil
	}
	return m.status.Run.Tasks
}

func (m *boardModel) clampSelection() {
	views := m.taskViews()
	if m.selected >= len(views) {
		m.selected = len(views) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	// Jump to the active task once the selected one is done.
	if len(views) == 0 || !views[m.selected].Completed {
		return
	}
	for i, tv := range views {
		if tv.Active {
			m.selected = i
			return
		}
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.status == nil {
		return "Morning Quest | loading…\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.status.Run == nil {
		b.WriteString(m.renderIdle())
	} else {
		b.WriteString(m.renderRun())
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	st := m.status.State
	return fmt.Sprintf("%s | %s | %s %s | %s",
		ui.Heading(ui.IconSunrise, "Morning Quest"),
		st.Name,
		ui.IconClock, st.DepartureTime,
		ui.RankBadge(st.StampCard.Rank),
	)
}

func (m boardModel) renderIdle() string {
	st := m.status.State
	lines := []string{
		ui.LabelValue("Stamps", ui.StampCard(st.StampCard.CurrentStamps, m.svc.Ledger().StampsPerReward)),
	}
	if m.status.RewardPending {
		lines = append(lines, ui.Gold.Render(ui.IconGift+" Card full! Press g to collect your reward."))
	} else {
		lines = append(lines, ui.Muted.Render(fmt.Sprintf("%d more to the next reward", m.status.StampsToGo)))
	}
	lines = append(lines, "")
	lines = append(lines, ui.LabelValue("Routine", fmt.Sprintf("%d tasks, %d min", len(st.Tasks), m.status.PlannedTotal)))
	lines = append(lines, ui.LabelValue("If you start now", "done by "+m.status.EstimatedDone.Format("15:04")))
	lines = append(lines, "", "Press s to start.")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderRun() string {
	run := m.status.Run
	var out []string
	out = append(out, fmt.Sprintf("%s  %s  %s",
		ui.PhaseText(run.Phase),
		ui.LabelValue("Slack", ui.BudgetText(run.Budget)),
		ui.Bar(run.Budget.Progress(), 20, ui.UrgencyStyle(run.Budget.Level)),
	))
	if run.Bonus {
		out = append(out, ui.BadgeBonus)
	}
	out = append(out, "")

	for i, tv := range run.Tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := ui.IconTodo
		switch {
		case tv.Completed:
			mark = ui.IconDone
		case tv.Active:
			mark = ui.IconActive
		}
		planned := tv.Task.DurationMinutes * 60
		timer := ui.Muted.Render(fmt.Sprintf("%s / %s", ui.Clock(tv.ElapsedSeconds), ui.Clock(planned)))
		if tv.Active && tv.ElapsedSeconds > planned {
			timer = ui.Bad.Render(fmt.Sprintf("%s / %s", ui.Clock(tv.ElapsedSeconds), ui.Clock(planned)))
		}
		out = append(out, fmt.Sprintf("%s%s %s %s  %s", cursor, mark, ui.TaskEmoji(tv.Task.Icon), padRight(ui.TaskTitle(tv.Task), 28), timer))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	keys := ui.Muted.Render("↑/↓ move · c complete · d depart · g reward · x abandon · r refresh · q quit")
	return "\n\n" + m.lastLog + "\n" + keys
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
