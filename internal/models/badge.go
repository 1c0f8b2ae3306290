package models

// RequirementType classifies what a badge's threshold is measured against.
type RequirementType string

const (
	RequireTotalTimers   RequirementType = "total_timers"
	RequireTotalMinutes  RequirementType = "total_minutes"
	RequireStreak        RequirementType = "streak"
	RequireActivityCount RequirementType = "activity_count"
)

// Badge is an achievement unlocked when cumulative progress crosses a
// fixed threshold. The catalog is static and never persisted per-instance;
// only earned badge ids are stored in Progress.
type Badge struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Requirement RequirementType `json:"requirement"`
	Threshold   int             `json:"threshold"`
	Activity    ActivityKind    `json:"activity,omitempty"` // only for activity_count badges
}

// Earned evaluates the badge's requirement predicate against progress.
func (b *Badge) Earned(p Progress) bool {
	switch b.Requirement {
	case RequireTotalTimers:
		return p.TotalTimersCompleted >= b.Threshold
	case RequireTotalMinutes:
		return p.TotalMinutesCompleted >= b.Threshold
	case RequireStreak:
		return p.CurrentStreak >= b.Threshold
	case RequireActivityCount:
		return p.ActivityCounts[b.Activity] >= b.Threshold
	default:
		return false
	}
}

// Badges is the static badge catalog. Order matters: the badge scan walks
// this slice front to back and only the first newly-earned badge per
// completion is surfaced to the UI.
var Badges = []Badge{
	{ID: "first_timer", Name: "First Timer", Description: "Complete your very first timer", Icon: "award", Requirement: RequireTotalTimers, Threshold: 1},
	{ID: "five_timers", Name: "High Five", Description: "Complete 5 timers", Icon: "hand", Requirement: RequireTotalTimers, Threshold: 5},
	{ID: "ten_timers", Name: "Perfect Ten", Description: "Complete 10 timers", Icon: "star", Requirement: RequireTotalTimers, Threshold: 10},
	{ID: "twenty_five_timers", Name: "Quarter Century", Description: "Complete 25 timers", Icon: "trophy", Requirement: RequireTotalTimers, Threshold: 25},
	{ID: "fifty_timers", Name: "Half Hundred", Description: "Complete 50 timers", Icon: "crown", Requirement: RequireTotalTimers, Threshold: 50},
	{ID: "hour_hero", Name: "Hour Hero", Description: "Rack up 60 focused minutes", Icon: "clock", Requirement: RequireTotalMinutes, Threshold: 60},
	{ID: "time_master", Name: "Time Master", Description: "Rack up 300 focused minutes", Icon: "watch", Requirement: RequireTotalMinutes, Threshold: 300},
	{ID: "streak_3", Name: "On a Roll", Description: "Complete timers 3 days in a row", Icon: "flame", Requirement: RequireStreak, Threshold: 3},
	{ID: "streak_7", Name: "Week Warrior", Description: "Complete timers 7 days in a row", Icon: "zap", Requirement: RequireStreak, Threshold: 7},
	{ID: "streak_14", Name: "Fortnight Force", Description: "Complete timers 14 days in a row", Icon: "sun", Requirement: RequireStreak, Threshold: 14},
	{ID: "bookworm", Name: "Bookworm", Description: "Finish 10 reading timers", Icon: "book-open", Requirement: RequireActivityCount, Threshold: 10, Activity: ActivityReading},
	{ID: "squeaky_clean", Name: "Squeaky Clean", Description: "Finish 10 brush-teeth timers", Icon: "droplet", Requirement: RequireActivityCount, Threshold: 10, Activity: ActivityBrushTeeth},
	{ID: "homework_hero", Name: "Homework Hero", Description: "Finish 10 homework timers", Icon: "book", Requirement: RequireActivityCount, Threshold: 10, Activity: ActivityHomework},
}

// BadgeByID looks up a badge in the catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
