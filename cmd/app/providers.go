package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/moodsip/internal/domain/analytics"
	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/insight"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/internal/domain/notification"
	"github.com/yanqian/moodsip/internal/domain/risk"
	"github.com/yanqian/moodsip/internal/infra/archive"
	"github.com/yanqian/moodsip/internal/infra/config"
	"github.com/yanqian/moodsip/internal/infra/diary"
	"github.com/yanqian/moodsip/internal/infra/guard"
	"github.com/yanqian/moodsip/internal/infra/llm"
	"github.com/yanqian/moodsip/internal/infra/llm/chatgpt"
	"github.com/yanqian/moodsip/internal/infra/notify"
	"github.com/yanqian/moodsip/internal/infra/predictor"
	"github.com/yanqian/moodsip/internal/infra/userrepo"
	"github.com/yanqian/moodsip/internal/infra/weather/openweather"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		Defaults: auth.Settings{
			BaseGoal: cfg.User.BaseGoal,
			City:     cfg.User.City,
			Timezone: cfg.User.Timezone,
		},
	}
}

func provideHydrationConfig(cfg *config.Config) hydration.Config {
	return hydration.Config{
		HotWeatherGoal:     cfg.Hydration.HotWeatherGoal,
		StreakLookbackDays: cfg.Hydration.StreakLookbackDays,
		MaxGlassesPerDay:   cfg.Hydration.MaxGlassesPerDay,
		DefaultTimezone:    cfg.User.Timezone,
		HotWeatherAlertTTL: cfg.Hydration.HotWeatherAlertTTL,
	}
}

func provideMealConfig(cfg *config.Config) meal.Config {
	return meal.Config{DefaultTimezone: cfg.User.Timezone}
}

func provideAnalyticsConfig(cfg *config.Config) analytics.Config {
	return analytics.Config{
		Windows:            cfg.Analytics.Windows,
		StreakLookbackDays: cfg.Hydration.StreakLookbackDays,
		DefaultTimezone:    cfg.User.Timezone,
	}
}

func provideInsightConfig(cfg *config.Config) insight.Config {
	return insight.Config{
		DefaultTimezone:  cfg.User.Timezone,
		MealLookbackDays: cfg.Insight.MealLookbackDays,
		MealSampleSize:   cfg.Insight.MealSampleSize,
		ArchivePrefix:    cfg.Insight.ArchivePrefix,
	}
}

func provideRiskConfig(cfg *config.Config) risk.Config {
	return risk.Config{
		Interval:        cfg.Risk.Interval,
		FeatureDays:     cfg.Risk.FeatureDays,
		MaxAttempts:     cfg.Risk.MaxAttempts,
		RetryBackoff:    cfg.Risk.RetryBackoff,
		DefaultTimezone: cfg.User.Timezone,
	}
}

// providePostgresPool returns nil when no DSN is configured or the database is
// unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Storage.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory stores")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory stores", "error", err)
		return nil, noop
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory stores", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory stores", "error", err)
		pool.Close()
		return nil, noop
	}
	logger.Info("postgres stores enabled")
	return pool, pool.Close
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideHydrationStore(pool *pgxpool.Pool) hydration.Store {
	if pool == nil {
		return diary.NewMemoryHydrationStore()
	}
	return diary.NewPostgresHydrationStore(pool)
}

func provideMealStore(pool *pgxpool.Pool) meal.Store {
	if pool == nil {
		return diary.NewMemoryMealStore()
	}
	return diary.NewPostgresMealStore(pool)
}

// provideValkeyClient returns nil when Valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if !cfg.Storage.Valkey.Enabled {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory guard", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory guard", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory guard", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey guard enabled", "addr", cfg.Storage.Valkey.Addr)
	return client, client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Storage.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Storage.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Storage.Valkey.Addr}}, nil
}

func provideRiskGuard(client valkey.Client) risk.Guard {
	if client == nil {
		return guard.NewMemoryGuard()
	}
	return guard.NewValkeyGuard(client, "moodsip")
}

func provideHydrationGuard(g risk.Guard) hydration.Guard {
	return g
}

func provideWeatherClient(cfg *config.Config, logger *slog.Logger) *openweather.Client {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Info("weather api key not set, goals use the base goal and risk uses the default temperature")
		return nil
	}
	return openweather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.ForecastHour, cfg.Weather.Timeout)
}

func provideHydrationWeather(c *openweather.Client) hydration.WeatherClient {
	if c == nil {
		return nil
	}
	return c
}

func provideRiskWeather(c *openweather.Client) risk.WeatherClient {
	if c == nil {
		return nil
	}
	return c
}

func provideNotifier(cfg *config.Config, logger *slog.Logger) notification.Notifier {
	if cfg.Notify.SNS.Enabled {
		n, err := notify.NewSNSNotifier(context.Background(), cfg.Notify.SNS.Region, cfg.Notify.SNS.TopicARN)
		if err == nil {
			logger.Info("sns notifier enabled", "topic", cfg.Notify.SNS.TopicARN)
			return n
		}
		logger.Error("failed to initialize sns notifier, logging notifications instead", "error", err)
	}
	return notify.NewLogNotifier(logger)
}

func providePredictorHTTPClient(cfg *config.Config) *http.Client {
	oauth := cfg.Predictors.OAuth
	return predictor.NewHTTPClient(context.Background(), predictor.OAuthConfig{
		Enabled:      oauth.Enabled,
		TokenURL:     oauth.TokenURL,
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		Scopes:       oauth.Scopes,
	}, cfg.Predictors.Timeout)
}

func provideRiskPredictor(cfg *config.Config, client *http.Client) risk.Predictor {
	return predictor.NewRiskClient(cfg.Predictors.RiskURL, client)
}

func provideInsightPredictor(cfg *config.Config, client *http.Client) insight.Predictor {
	if strings.TrimSpace(cfg.Predictors.InsightURL) == "" {
		return nil
	}
	return predictor.NewInsightClient(cfg.Predictors.InsightURL, client)
}

func provideTrendPredictor(cfg *config.Config, client *http.Client) insight.TrendPredictor {
	if strings.TrimSpace(cfg.Predictors.MealTrendURL) == "" {
		return nil
	}
	return predictor.NewTrendClient(cfg.Predictors.MealTrendURL, client)
}

func provideMealInsightsLLM(cfg *config.Config, logger *slog.Logger) insight.LLM {
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		logger.Info("llm disabled, meal reports use trend insights only", "reason", err)
		return nil
	}
	return llm.NewChatGPTMealInsights(client, cfg.LLM.Model, cfg.LLM.Temperature, cfg.Insight.Prompt)
}

func provideArchive(cfg *config.Config, logger *slog.Logger) insight.Archive {
	if cfg.Archive.Enabled {
		a, err := archive.NewR2Archive(cfg.Archive.Endpoint, cfg.Archive.AccessKey, cfg.Archive.SecretKey, cfg.Archive.Bucket, cfg.Archive.Region, logger)
		if err == nil {
			return a
		}
		logger.Error("failed to initialize report archive, keeping reports in memory", "error", err)
	}
	return archive.NewMemoryArchive()
}
