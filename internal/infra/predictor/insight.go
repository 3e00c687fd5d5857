package predictor

import (
	"context"
	"net/http"

	"github.com/yanqian/moodsip/internal/domain/insight"
)

// InsightClient calls the daily behavioral model.
type InsightClient struct {
	url    string
	client *http.Client
}

var _ insight.Predictor = (*InsightClient)(nil)

// NewInsightClient builds the daily insight predictor client.
func NewInsightClient(url string, client *http.Client) *InsightClient {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &InsightClient{url: normalizeURL(url), client: client}
}

type insightResponse struct {
	RegressionOutputs     []float64 `json:"regression_outputs"`
	ClassificationOutputs []int     `json:"classification_outputs"`
	DayQuality            string    `json:"day_quality"`
}

// Predict posts the day summary to /predict.
func (c *InsightClient) Predict(ctx context.Context, in insight.Input) (insight.Output, error) {
	endpoint := c.url
	if endpoint != "" {
		endpoint += "/predict"
	}
	if in.Timestamps == nil {
		in.Timestamps = []string{}
	}
	if in.Meals == nil {
		in.Meals = []insight.MealInput{}
	}
	var resp insightResponse
	if err := postJSON(ctx, c.client, "insight", endpoint, in, &resp); err != nil {
		return insight.Output{}, err
	}
	return resp.toOutput(), nil
}

// toOutput maps the positional model output onto named fields. Missing
// positions read as zero or false.
func (r insightResponse) toOutput() insight.Output {
	reg := func(i int) float64 {
		if i < len(r.RegressionOutputs) {
			return r.RegressionOutputs[i]
		}
		return 0
	}
	class := func(i int) bool {
		return i < len(r.ClassificationOutputs) && r.ClassificationOutputs[i] == 1
	}
	return insight.Output{
		HydrationStatus:    reg(0),
		MoodChange:         reg(1),
		EnergyChange:       reg(2),
		EnergyVariability:  reg(3),
		MealTimingLateness: reg(4),
		JunkFoodRatio:      reg(5),
		MealVarietyScore:   reg(6),
		SkippedBreakfast:   class(0),
		SkippedLunch:       class(1),
		SkippedDinner:      class(2),
		HadSaladForLunch:   class(3),
		DayQuality:         r.DayQuality,
	}
}
