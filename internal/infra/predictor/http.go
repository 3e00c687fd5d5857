// Package predictor talks to the hosted hydration risk, daily insight and meal
// trend models.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// OAuthConfig enables client-credentials tokens on outgoing calls.
type OAuthConfig struct {
	Enabled      bool
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// NewHTTPClient returns the client shared by the predictor adapters. When OAuth is
// enabled every request carries a bearer token from the token endpoint.
func NewHTTPClient(ctx context.Context, oauth OAuthConfig, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := &http.Client{Timeout: timeout}
	if !oauth.Enabled {
		return base
	}
	cc := clientcredentials.Config{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		TokenURL:     oauth.TokenURL,
		Scopes:       oauth.Scopes,
	}
	client := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	client.Timeout = timeout
	return client
}

func normalizeURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// postJSON sends body to endpoint and decodes the reply into out. Transport
// failures, 5xx and 429 are reported as CodePredictorUnavailable so callers can
// retry; everything else is CodePredictor.
func postJSON(ctx context.Context, client *http.Client, name, endpoint string, body, out any) error {
	if endpoint == "" {
		return apperrors.Wrap(apperrors.CodePredictor, name+" predictor url is not configured", nil)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return apperrors.Wrap(apperrors.CodePredictor, "encode "+name+" request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(apperrors.CodePredictor, "build "+name+" request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodePredictorUnavailable, name+" predictor unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		statusErr := fmt.Errorf("status=%d body=%s", resp.StatusCode, string(snippet))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return apperrors.Wrap(apperrors.CodePredictorUnavailable, name+" predictor unavailable", statusErr)
		}
		return apperrors.Wrap(apperrors.CodePredictor, name+" predictor rejected request", statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodePredictor, "decode "+name+" response", err)
	}
	return nil
}
