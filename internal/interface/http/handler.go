package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/moodsip/internal/domain/analytics"
	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/insight"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/internal/domain/risk"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

// RiskChecker runs the hydration risk job for one user.
type RiskChecker interface {
	RunUser(ctx context.Context, userID int64, input risk.JobInput) risk.Result
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc      auth.Service
	hydrationSvc hydration.Service
	mealSvc      meal.Service
	analyticsSvc analytics.Service
	insightSvc   insight.Service
	risk         RiskChecker
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	hydrationSvc hydration.Service,
	mealSvc meal.Service,
	analyticsSvc analytics.Service,
	insightSvc insight.Service,
	riskChecker RiskChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:      authSvc,
		hydrationSvc: hydrationSvc,
		mealSvc:      mealSvc,
		analyticsSvc: analyticsSvc,
		insightSvc:   insightSvc,
		risk:         riskChecker,
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for tokens.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh rotates the token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile returns the caller's account.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateSettings patches base goal, city or timezone.
func (h *Handler) UpdateSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req auth.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authSvc.UpdateSettings(c.Request.Context(), userID, req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return false
	}
	return true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		abortWithDomainError(c, apperrors.Wrap(apperrors.CodeInvalidInput, name+" must be an integer", err))
		return 0, false
	}
	return v, true
}
