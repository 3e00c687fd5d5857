package predictor

import (
	"context"
	"net/http"

	"github.com/yanqian/moodsip/internal/domain/risk"
)

// RiskClient scores hydration risk from the job features.
type RiskClient struct {
	url    string
	client *http.Client
}

var _ risk.Predictor = (*RiskClient)(nil)

// NewRiskClient builds the risk predictor client.
func NewRiskClient(url string, client *http.Client) *RiskClient {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &RiskClient{url: normalizeURL(url), client: client}
}

type riskResponse struct {
	HydrationRisk int `json:"hydration_risk"`
}

// Predict returns the raw risk score (0 low, 1 medium, 2 high).
func (c *RiskClient) Predict(ctx context.Context, features risk.Features) (int, error) {
	endpoint := c.url
	if endpoint != "" {
		endpoint += "/"
	}
	var resp riskResponse
	if err := postJSON(ctx, c.client, "risk", endpoint, features, &resp); err != nil {
		return 0, err
	}
	return resp.HydrationRisk, nil
}
