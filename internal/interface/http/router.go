package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/moodsip/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
	)
	router.GET("/healthz", handler.Health)

	limit := rateLimitMiddleware(cfg.HTTP.RateLimit, logger)

	api := router.Group("/api/v1")
	public := api.Group("/auth", limit)
	{
		public.POST("/register", handler.Register)
		public.POST("/login", handler.Login)
		public.POST("/refresh", handler.Refresh)
	}

	protected := api.Group("", authMiddleware(handler.authSvc), limit)
	{
		protected.GET("/auth/profile", handler.Profile)
		protected.PATCH("/auth/settings", handler.UpdateSettings)

		protected.GET("/hydration/today", handler.HydrationToday)
		protected.POST("/hydration/glasses", handler.LogGlass)
		protected.DELETE("/hydration/glasses/last", handler.UndoGlass)
		protected.GET("/hydration/days/:date", handler.HydrationDay)

		protected.POST("/meals", handler.LogMeal)
		protected.GET("/meals", handler.ListMeals)
		protected.DELETE("/meals/:id", handler.DeleteMeal)

		protected.GET("/analytics/series", handler.AnalyticsSeries)
		protected.GET("/analytics/summary", handler.AnalyticsSummary)

		protected.GET("/insights/daily", handler.DailyInsights)
		protected.POST("/insights/meals", handler.MealInsights)

		protected.POST("/risk/check", handler.RiskCheck)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
