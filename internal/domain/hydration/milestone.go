package hydration

import "github.com/yanqian/moodsip/internal/domain/notification"

// milestonesFor returns the notifications earned by reaching count glasses.
// First glass, halfway and almost-there are exclusive (first match wins); reaching
// the goal is reported alongside them.
func milestonesFor(count, goal int) []notification.Notification {
	var out []notification.Notification
	switch {
	case count == 1:
		out = append(out, notification.FirstGlass())
	case goal > 1 && count == goal/2:
		out = append(out, notification.Halfway())
	case count == goal-1:
		out = append(out, notification.AlmostThere())
	}
	if count == goal {
		out = append(out, notification.GoalReached())
	}
	return out
}
