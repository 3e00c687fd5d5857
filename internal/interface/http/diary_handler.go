package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/moodsip/internal/domain/meal"
)

// HydrationToday returns today's goal, progress and streak.
func (h *Handler) HydrationToday(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	summary, err := h.hydrationSvc.Today(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// LogGlass records one glass of water now.
func (h *Handler) LogGlass(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	day, err := h.hydrationSvc.LogGlass(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

// UndoGlass removes today's most recent glass.
func (h *Handler) UndoGlass(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	day, err := h.hydrationSvc.UndoGlass(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// HydrationDay returns the record of a past day.
func (h *Handler) HydrationDay(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	day, err := h.hydrationSvc.Day(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// LogMeal stores a meal entry.
func (h *Handler) LogMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req meal.LogRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.mealSvc.Log(c.Request.Context(), userID, req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListMeals returns the meals of ?date= (default today).
func (h *Handler) ListMeals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	meals, err := h.mealSvc.List(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// DeleteMeal removes one meal by id.
func (h *Handler) DeleteMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.mealSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
