package mission

import "fmt"

// Grade is the animal-themed tier of the rank ladder.
type Grade struct {
	Name       string
	Emoji      string
	Icon       string
	CardColor  string
	StampColor string
}

// RankClass is the skill-title tier inside a grade.
type RankClass struct {
	Name  string
	Stars int
}

var Grades = []Grade{
	{Name: "Chick", Emoji: "🐣", Icon: "feather", CardColor: "#facc15", StampColor: "#eab308"},
	{Name: "Bunny", Emoji: "🐰", Icon: "star", CardColor: "#38bdf8", StampColor: "#0ea5e9"},
	{Name: "Kitty", Emoji: "🐱", Icon: "cat", CardColor: "#f472b6", StampColor: "#ec4899"},
	{Name: "Lion", Emoji: "🦁", Icon: "trophy", CardColor: "#fb923c", StampColor: "#f97316"},
	{Name: "Dragon", Emoji: "🐉", Icon: "flame", CardColor: "#ef4444", StampColor: "#ef4444"},
	{Name: "Unicorn", Emoji: "🦄", Icon: "sparkles", CardColor: "#8b5cf6", StampColor: "#8b5cf6"},
	{Name: "King", Emoji: "👑", Icon: "crown", CardColor: "#4f46e5", StampColor: "#4f46e5"},
}

var Classes = []RankClass{
	{Name: "Rookie", Stars: 1},
	{Name: "Fighter", Stars: 2},
	{Name: "Ace", Stars: 3},
	{Name: "Champion", Stars: 4},
	{Name: "Master", Stars: 5},
}

const (
	// TotalRanks is len(Grades) * len(Classes).
	TotalRanks = 35
	MaxRank    = TotalRanks - 1
)

// ClampRank keeps a (possibly corrupted) persisted rank inside [0, MaxRank].
func ClampRank(rank int) int {
	if rank < 0 {
		return 0
	}
	if rank > MaxRank {
		return MaxRank
	}
	return rank
}

func GradeIndex(rank int) int {
	return ClampRank(rank) / len(Classes)
}

func ClassIndex(rank int) int {
	return ClampRank(rank) % len(Classes)
}

func GradeFor(rank int) Grade {
	return Grades[GradeIndex(rank)]
}

func ClassFor(rank int) RankClass {
	return Classes[ClassIndex(rank)]
}

// RankTitle returns the display title for a rank, e.g. "🐣 Chick Rookie".
func RankTitle(rank int) string {
	return fmt.Sprintf("%s %s", GradeFor(rank).Emoji, RankTitleShort(rank))
}

// RankTitleShort returns the title without the emoji.
func RankTitleShort(rank int) string {
	return fmt.Sprintf("%s %s", GradeFor(rank).Name, ClassFor(rank).Name)
}

// IsGradeUp reports whether reaching rank completed a class cycle and moved
// the child into a new grade.
func IsGradeUp(rank int) bool {
	return rank > 0 && ClassIndex(rank) == 0
}

func IsMaxRank(rank int) bool {
	return rank >= MaxRank
}
