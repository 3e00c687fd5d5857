package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/moodsip/internal/domain/risk"
)

// AnalyticsSeries returns one chart series over ?days= for ?metric=, smoothed by ?rolling= when set.
func (h *Handler) AnalyticsSeries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", 7)
	if !ok {
		return
	}
	rolling, ok := queryInt(c, "rolling", 0)
	if !ok {
		return
	}
	metric := c.DefaultQuery("metric", "hydration")
	series, err := h.analyticsSvc.Series(c.Request.Context(), userID, days, metric, rolling)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// AnalyticsSummary returns streaks and the windowed averages.
func (h *Handler) AnalyticsSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	summary, err := h.analyticsSvc.Summary(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DailyInsights runs the rule engine for ?date= (default today).
func (h *Handler) DailyInsights(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.insightSvc.Daily(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// MealInsights builds the recent-meal report.
func (h *Handler) MealInsights(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.insightSvc.Meals(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type riskCheckRequest struct {
	Temperature *float64 `json:"temperature"`
}

// RiskCheck runs the risk job for the caller.
func (h *Handler) RiskCheck(c *gin.Context) {
	if h.risk == nil {
		abortWithError(c, NewHTTPError(http.StatusServiceUnavailable, "risk_disabled", "risk check unavailable", nil))
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req riskCheckRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	result := h.risk.RunUser(c.Request.Context(), userID, risk.JobInput{Temperature: req.Temperature})
	status := http.StatusOK
	switch result.Outcome {
	case risk.OutcomeRetry:
		status = http.StatusServiceUnavailable
	case risk.OutcomeFailure:
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}
