package meal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/moodsip/internal/domain/auth"
)

// Type is the slot of the day a meal was eaten in.
type Type string

const (
	TypeBreakfast Type = "Breakfast"
	TypeLunch     Type = "Lunch"
	TypeDinner    Type = "Dinner"
	TypeSnack     Type = "Snack"
)

// AllTypes lists the meal types in display order.
var AllTypes = []Type{TypeBreakfast, TypeLunch, TypeDinner, TypeSnack}

// Category is the coarse food category of a meal.
type Category string

const (
	CategoryHomeCooked Category = "Home-Cooked"
	CategoryJunkSnacks Category = "Junk Snacks"
	CategorySalads     Category = "Salads"
	CategoryDesserts   Category = "Desserts"
	CategoryFastFood   Category = "Fast Food"
)

// AllCategories lists the accepted food categories.
var AllCategories = []Category{CategoryHomeCooked, CategoryJunkSnacks, CategorySalads, CategoryDesserts, CategoryFastFood}

const (
	// TimeLayout is the HH:MM wall-clock layout of a meal.
	TimeLayout = "15:04"

	minRating    = 1
	maxRating    = 5
	maxNameRunes = 80
)

// Entry is one logged meal with the mood and energy around it.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	MealType     Type      `json:"mealType"`
	MealName     string    `json:"mealName"`
	FoodCategory Category  `json:"foodCategory"`
	MoodBefore   int       `json:"moodBefore"`
	MoodAfter    int       `json:"moodAfter"`
	EnergyBefore int       `json:"energyBefore"`
	EnergyAfter  int       `json:"energyAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MoodAverage is the mean of the before and after mood ratings.
func (e Entry) MoodAverage() float64 {
	return float64(e.MoodBefore+e.MoodAfter) / 2
}

// EnergyAverage is the mean of the before and after energy ratings.
func (e Entry) EnergyAverage() float64 {
	return float64(e.EnergyBefore+e.EnergyAfter) / 2
}

// LogRequest is the payload for logging a meal. Date and Time default to the user's local now.
type LogRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	MealType     string `json:"mealType"`
	MealName     string `json:"mealName"`
	FoodCategory string `json:"foodCategory"`
	MoodBefore   int    `json:"moodBefore"`
	MoodAfter    int    `json:"moodAfter"`
	EnergyBefore int    `json:"energyBefore"`
	EnergyAfter  int    `json:"energyAfter"`
}

// Day groups the meals of one calendar day.
type Day struct {
	Date  string
	Meals []Entry
}

// DateKey implements streak.Dated.
func (d Day) DateKey() string { return d.Date }

// Config holds runtime knobs for the meal service.
type Config struct {
	DefaultTimezone string
}

// Store persists meal entries.
type Store interface {
	Save(ctx context.Context, userID int64, entry Entry) error
	// Delete reports whether an entry with id existed.
	Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
	// ListByDate returns the day's meals ordered by time.
	ListByDate(ctx context.Context, userID int64, date string) ([]Entry, error)
	// ListRange returns meals in [from, to] ordered by date then time.
	ListRange(ctx context.Context, userID int64, from, to string) ([]Entry, error)
}

// SettingsProvider resolves the user's timezone.
type SettingsProvider interface {
	Settings(ctx context.Context, userID int64) (auth.Settings, error)
}
