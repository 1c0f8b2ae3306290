package models

// ActivityKind identifies a built-in activity template or a custom activity.
type ActivityKind string

const (
	ActivityHomework   ActivityKind = "homework"
	ActivityScreenTime ActivityKind = "screen_time"
	ActivityBrushTeeth ActivityKind = "brush_teeth"
	ActivityBedtime    ActivityKind = "bedtime"
	ActivityPlaytime   ActivityKind = "playtime"
	ActivityCleanup    ActivityKind = "cleanup"
	ActivitySnackTime  ActivityKind = "snack_time"
	ActivityReading    ActivityKind = "reading"
	ActivityCustom     ActivityKind = "custom"
)

// Activity is a built-in activity template used to pre-fill a timer's
// label and default duration.
type Activity struct {
	Kind           ActivityKind `json:"kind"`
	Name           string       `json:"name"`
	DefaultMinutes int          `json:"default_minutes"`
	Icon           string       `json:"icon"`
}

// Activities is the built-in activity catalog, in display order.
var Activities = []Activity{
	{Kind: ActivityHomework, Name: "Homework", DefaultMinutes: 30, Icon: "book"},
	{Kind: ActivityScreenTime, Name: "Screen Time", DefaultMinutes: 30, Icon: "monitor"},
	{Kind: ActivityBrushTeeth, Name: "Brush Teeth", DefaultMinutes: 2, Icon: "droplet"},
	{Kind: ActivityBedtime, Name: "Bedtime", DefaultMinutes: 15, Icon: "moon"},
	{Kind: ActivityPlaytime, Name: "Playtime", DefaultMinutes: 30, Icon: "star"},
	{Kind: ActivityCleanup, Name: "Cleanup", DefaultMinutes: 10, Icon: "trash"},
	{Kind: ActivitySnackTime, Name: "Snack Time", DefaultMinutes: 15, Icon: "coffee"},
	{Kind: ActivityReading, Name: "Reading", DefaultMinutes: 20, Icon: "book-open"},
}

// ActivityByKind looks up a built-in activity template.
func ActivityByKind(kind ActivityKind) (Activity, bool) {
	for _, a := range Activities {
		if a.Kind == kind {
			return a, true
		}
	}
	return Activity{}, false
}

// CustomActivity is a user-defined activity template managed from the
// parent controls.
type CustomActivity struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DefaultMinutes int    `json:"default_minutes"`
	Icon           string `json:"icon"`
}
