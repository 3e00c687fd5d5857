// Package notification defines the push messages the domains emit and the
// contract of the presentation side that delivers them.
package notification

import (
	"context"
	"strings"
)

// Kind tags a notification so clients can group or silence them.
type Kind string

const (
	KindHotWeather   Kind = "hot_weather"
	KindFirstGlass   Kind = "first_glass"
	KindHalfway      Kind = "halfway"
	KindAlmostThere  Kind = "almost_there"
	KindGoalReached  Kind = "goal_reached"
	KindRiskReminder Kind = "risk_reminder"
)

// Notification is a fire-and-forget message for one user.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier delivers notifications. Implementations must not block on retries.
type Notifier interface {
	Notify(ctx context.Context, userID int64, n Notification) error
}

// HotWeather is sent when the temperature raised the day's goal past the alert threshold.
func HotWeather() Notification {
	return Notification{
		Kind:    KindHotWeather,
		Title:   "Heat Alert!",
		Message: "It's hot today! Your hydration goal increased to stay safe.",
	}
}

// FirstGlass greets the first glass of the day.
func FirstGlass() Notification {
	return Notification{Kind: KindFirstGlass, Title: "Good morning!", Message: "Great start to your hydration journey today!"}
}

// Halfway fires when half of the goal has been logged.
func Halfway() Notification {
	return Notification{Kind: KindHalfway, Title: "Halfway there!", Message: "You're doing great, keep sipping!"}
}

// AlmostThere fires one glass before the goal.
func AlmostThere() Notification {
	return Notification{Kind: KindAlmostThere, Title: "Almost there!", Message: "Just one more glass to reach your goal!"}
}

// GoalReached fires when the logged count equals the goal.
func GoalReached() Notification {
	return Notification{Kind: KindGoalReached, Title: "Goal Reached!", Message: "You hit today's hydration goal. Nice work!"}
}

// RiskReminder maps a predicted risk level (low, medium, high) to the reminder copy.
func RiskReminder(level string) Notification {
	var message string
	switch strings.ToLower(level) {
	case "high":
		message = "High dehydration risk! Drink water now!"
	case "medium":
		message = "Don't slow down now! Hydration is key to energy!"
	default:
		message = "Doing great! Keep up the streak!"
	}
	return Notification{Kind: KindRiskReminder, Title: "Hydration Reminder", Message: message}
}
