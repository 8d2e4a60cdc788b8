package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"morningquest/internal/mission"
)

// Morning Quest theme (CLI + TUI).

const (
	IconSunrise = "🌅"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconActive  = "▶"
	IconStamp   = "🌟"
	IconSlot    = "○"
	IconMedal   = "🏅"
	IconTrophy  = "🏆"
	IconGift    = "🎁"
	IconClock   = "⏰"
	IconBonus   = "🐦"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeGradeUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("GRADE UP")
	BadgeBonus   = lipgloss.NewStyle().Bold(true).Foreground(cGood).Render("EARLY BIRD x2")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// UrgencyStyle maps a budget level to its color.
func UrgencyStyle(level mission.UrgencyLevel) lipgloss.Style {
	switch level {
	case mission.UrgencyDanger:
		return Bad
	case mission.UrgencyWarning:
		return Warn
	default:
		return Good
	}
}

// BudgetText renders the slack before departure, e.g. "+7 min" or "-3 min".
func BudgetText(b mission.Budget) string {
	sign := "+"
	if b.DiffMinutes < 0 {
		sign = ""
	}
	return UrgencyStyle(b.Level).Render(fmt.Sprintf("%s%d min (%s)", sign, b.DiffMinutes, b.Level))
}

func PhaseText(p mission.Phase) string {
	switch p {
	case mission.PhaseWakeUp:
		return Warn.Render("wake up!")
	case mission.PhaseInProgress:
		return H2.Render("in progress")
	case mission.PhaseReadyToDepart:
		return Good.Render("ready to go")
	case mission.PhaseDeparted:
		return Muted.Render("departed")
	default:
		return Muted.Render(string(p))
	}
}

// TaskEmoji maps a task icon to a terminal-friendly glyph.
func TaskEmoji(icon mission.TaskIcon) string {
	switch icon {
	case mission.IconSun:
		return "☀️"
	case mission.IconToothbrush:
		return "🪥"
	case mission.IconShirt:
		return "👕"
	case mission.IconUtensils:
		return "🍴"
	case mission.IconBackpack:
		return "🎒"
	case mission.IconDoorOpen:
		return "🚪"
	case mission.IconBook:
		return "📖"
	case mission.IconGamepad:
		return "🎮"
	default:
		return "●"
	}
}

// TaskTitle renders a task title in the task's own color.
func TaskTitle(t mission.Task) string {
	color := t.Color
	if color == "" {
		color = mission.DefaultTaskColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(t.Title)
}

// Clock formats seconds as m:ss.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Stars renders the class stars of a rank, e.g. "★★☆☆☆".
func Stars(rank int) string {
	n := mission.ClassFor(rank).Stars
	return Gold.Render(strings.Repeat("★", n)) + Muted.Render(strings.Repeat("☆", len(mission.Classes)-n))
}

// RankBadge renders the rank title in its grade color with stars.
func RankBadge(rank int) string {
	g := mission.GradeFor(rank)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.CardColor)).Render(mission.RankTitle(rank))
	return title + " " + Stars(rank)
}

// StampCard renders the card slots, e.g. "🌟🌟🌟○○○○○○○".
func StampCard(current, slots int) string {
	if slots <= 0 {
		slots = mission.DefaultStampsPerReward
	}
	filled := min(current, slots)
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat(IconStamp, filled) + Muted.Render(strings.Repeat(IconSlot, slots-filled))
}

// Bar renders a text progress bar of the given width.
func Bar(ratio float64, width int, style lipgloss.Style) string {
	if width <= 3 {
		width = 3
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return "[" + style.Render(strings.Repeat("#", filled)) + strings.Repeat("-", width-filled) + "]"
}
