package generator

import (
	"fmt"
	"strings"

	"morningquest/internal/mission"
)

func scheduleSystemPrompt() string {
	icons := make([]string, len(mission.TaskIcons))
	for i, ic := range mission.TaskIcons {
		icons[i] = string(ic)
	}
	return fmt.Sprintf(`You plan morning routines for children.
Break the request into short, actionable steps and answer with JSON only:
{"tasks":[{"title":"...","durationMinutes":5,"icon":"sun","color":"#fbbf24","type":"flexible"}]}
- icon is one of: %s
- color is a friendly pastel or bright hex code
- type is "start" for the first wake-up step, "end" for leaving the house, otherwise "flexible"
- the last step should usually be leaving the house, with 0 minutes
- keep the total duration realistic for a school morning`, strings.Join(icons, ", "))
}

const commentSystemPrompt = `You write one or two short, warm sentences congratulating a child who just filled a stamp card for getting ready on time in the morning. No emojis, no lists.`

func commentUserPrompt(name string, recent []mission.MissionLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Child: %s\nRecent mornings (newest first):\n", name)
	for _, l := range recent {
		result := "late"
		if l.IsSuccess {
			result = "on time"
		}
		if l.IsBonus {
			result += ", early bonus"
		}
		fmt.Fprintf(&b, "- %s: %s, planned %d min\n", l.Date, result, l.TotalDurationSeconds/60)
	}
	return b.String()
}
