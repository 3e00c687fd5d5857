package predictor

import (
	"context"
	"net/http"

	"github.com/yanqian/moodsip/internal/domain/insight"
	"github.com/yanqian/moodsip/internal/domain/meal"
)

// TrendClient classifies single meals with the meal trend model.
type TrendClient struct {
	url    string
	client *http.Client
}

var _ insight.TrendPredictor = (*TrendClient)(nil)

// NewTrendClient builds the meal trend client.
func NewTrendClient(url string, client *http.Client) *TrendClient {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &TrendClient{url: normalizeURL(url), client: client}
}

type trendRequest struct {
	MealType     string `json:"mealType"`
	MealName     string `json:"mealName"`
	FoodCategory string `json:"foodCategory"`
	Time         string `json:"time"`
	MoodBefore   int    `json:"moodBefore"`
	MoodAfter    int    `json:"moodAfter"`
	EnergyBefore int    `json:"energyBefore"`
	EnergyAfter  int    `json:"energyAfter"`
}

// Trend posts one meal and returns the mood and energy directions.
func (c *TrendClient) Trend(ctx context.Context, entry meal.Entry) (insight.MealTrend, error) {
	endpoint := c.url
	if endpoint != "" {
		endpoint += "/"
	}
	body := trendRequest{
		MealType:     string(entry.MealType),
		MealName:     entry.MealName,
		FoodCategory: string(entry.FoodCategory),
		Time:         entry.Time,
		MoodBefore:   entry.MoodBefore,
		MoodAfter:    entry.MoodAfter,
		EnergyBefore: entry.EnergyBefore,
		EnergyAfter:  entry.EnergyAfter,
	}
	var resp insight.MealTrend
	if err := postJSON(ctx, c.client, "meal trend", endpoint, body, &resp); err != nil {
		return insight.MealTrend{}, err
	}
	return resp, nil
}
