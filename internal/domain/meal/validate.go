package meal

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

func parseType(value string) (Type, error) {
	trimmed := strings.TrimSpace(value)
	for _, t := range AllTypes {
		if strings.EqualFold(trimmed, string(t)) {
			return t, nil
		}
	}
	return "", errors.New("mealType must be one of Breakfast, Lunch, Dinner, Snack")
}

func parseCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	for _, c := range AllCategories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", errors.New("foodCategory must be one of Home-Cooked, Junk Snacks, Salads, Desserts, Fast Food")
}

func normalizeName(value string) (string, error) {
	name := strings.Join(strings.Fields(value), " ")
	if name == "" {
		return "", errors.New("mealName is required")
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		return "", fmt.Errorf("mealName must be at most %d characters", maxNameRunes)
	}
	return name, nil
}

func normalizeTime(value string) (string, error) {
	ts, err := time.Parse(TimeLayout, strings.TrimSpace(value))
	if err != nil {
		return "", errors.New("time must be formatted as HH:MM")
	}
	return ts.Format(TimeLayout), nil
}

func validateRatings(req LogRequest) error {
	ratings := []struct {
		name  string
		value int
	}{
		{"moodBefore", req.MoodBefore},
		{"moodAfter", req.MoodAfter},
		{"energyBefore", req.EnergyBefore},
		{"energyAfter", req.EnergyAfter},
	}
	for _, r := range ratings {
		if r.value < minRating || r.value > maxRating {
			return fmt.Errorf("%s must be between %d and %d", r.name, minRating, maxRating)
		}
	}
	return nil
}

var errFutureDate = errors.New("date cannot be in the future")
