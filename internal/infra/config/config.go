package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	User       UserConfig       `yaml:"user"`
	Hydration  HydrationConfig  `yaml:"hydration"`
	Analytics  AnalyticsConfig  `yaml:"analytics"`
	Insight    InsightConfig    `yaml:"insight"`
	Risk       RiskConfig       `yaml:"risk"`
	Weather    WeatherConfig    `yaml:"weather"`
	Predictors PredictorsConfig `yaml:"predictors"`
	LLM        LLMConfig        `yaml:"llm"`
	Storage    StorageConfig    `yaml:"storage"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Notify     NotifyConfig     `yaml:"notify"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AuthConfig controls token issuance.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
}

// UserConfig holds the settings new accounts start with.
type UserConfig struct {
	BaseGoal int    `yaml:"baseGoal"`
	City     string `yaml:"city"`
	Timezone string `yaml:"timezone"`
}

// HydrationConfig controls goal adjustment and glass logging.
type HydrationConfig struct {
	HotWeatherGoal     int           `yaml:"hotWeatherGoal"`
	StreakLookbackDays int           `yaml:"streakLookbackDays"`
	MaxGlassesPerDay   int           `yaml:"maxGlassesPerDay"`
	HotWeatherAlertTTL time.Duration `yaml:"hotWeatherAlertTtl"`
}

// AnalyticsConfig controls the chart windows.
type AnalyticsConfig struct {
	Windows []int `yaml:"windows"`
}

// InsightConfig controls the meal insight report.
type InsightConfig struct {
	MealLookbackDays int    `yaml:"mealLookbackDays"`
	MealSampleSize   int    `yaml:"mealSampleSize"`
	ArchivePrefix    string `yaml:"archivePrefix"`
	Prompt           string `yaml:"prompt"`
}

// RiskConfig controls the hydration risk job.
type RiskConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Interval     time.Duration `yaml:"interval"`
	FeatureDays  int           `yaml:"featureDays"`
	MaxAttempts  int           `yaml:"maxAttempts"`
	RetryBackoff time.Duration `yaml:"retryBackoff"`
}

// WeatherConfig points at the OpenWeatherMap forecast API.
type WeatherConfig struct {
	BaseURL      string        `yaml:"baseUrl"`
	APIKey       string        `yaml:"apiKey"`
	ForecastHour string        `yaml:"forecastHour"`
	Timeout      time.Duration `yaml:"timeout"`
}

// PredictorsConfig lists the hosted model endpoints.
type PredictorsConfig struct {
	RiskURL      string        `yaml:"riskUrl"`
	InsightURL   string        `yaml:"insightUrl"`
	MealTrendURL string        `yaml:"mealTrendUrl"`
	Timeout      time.Duration `yaml:"timeout"`
	OAuth        OAuthConfig   `yaml:"oauth"`
}

// OAuthConfig enables client-credentials tokens on predictor calls.
type OAuthConfig struct {
	Enabled      bool     `yaml:"enabled"`
	TokenURL     string   `yaml:"tokenUrl"`
	ClientID     string   `yaml:"clientId"`
	ClientSecret string   `yaml:"clientSecret"`
	Scopes       []string `yaml:"scopes"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// StorageConfig selects the persistence backends.
type StorageConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the guard store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ArchiveConfig points at the S3 compatible bucket for reports.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// NotifyConfig selects the push channel.
type NotifyConfig struct {
	SNS SNSConfig `yaml:"sns"`
}

// SNSConfig publishes notifications to an SNS topic.
type SNSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Region   string `yaml:"region"`
	TopicARN string `yaml:"topicArn"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")

	setString(&cfg.Auth.Secret, "AUTH_SECRET")
	setDuration(&cfg.Auth.TokenTTL, "AUTH_TOKEN_TTL")
	setDuration(&cfg.Auth.RefreshTokenTTL, "AUTH_REFRESH_TOKEN_TTL")

	setInt(&cfg.User.BaseGoal, "USER_BASE_GOAL")
	setString(&cfg.User.City, "USER_CITY")
	setString(&cfg.User.Timezone, "USER_TIMEZONE")

	setInt(&cfg.Hydration.HotWeatherGoal, "HYDRATION_HOT_WEATHER_GOAL")
	setInt(&cfg.Hydration.StreakLookbackDays, "HYDRATION_STREAK_LOOKBACK_DAYS")
	setInt(&cfg.Hydration.MaxGlassesPerDay, "HYDRATION_MAX_GLASSES_PER_DAY")

	setBool(&cfg.Risk.Enabled, "RISK_ENABLED")
	setDuration(&cfg.Risk.Interval, "RISK_INTERVAL")
	setInt(&cfg.Risk.MaxAttempts, "RISK_MAX_ATTEMPTS")

	setString(&cfg.Weather.BaseURL, "WEATHER_BASE_URL")
	setString(&cfg.Weather.APIKey, "WEATHER_API_KEY")

	setString(&cfg.Predictors.RiskURL, "PREDICTOR_RISK_URL")
	setString(&cfg.Predictors.InsightURL, "PREDICTOR_INSIGHT_URL")
	setString(&cfg.Predictors.MealTrendURL, "PREDICTOR_MEAL_TREND_URL")
	setBool(&cfg.Predictors.OAuth.Enabled, "PREDICTOR_OAUTH_ENABLED")
	setString(&cfg.Predictors.OAuth.TokenURL, "PREDICTOR_OAUTH_TOKEN_URL")
	setString(&cfg.Predictors.OAuth.ClientID, "PREDICTOR_OAUTH_CLIENT_ID")
	setString(&cfg.Predictors.OAuth.ClientSecret, "PREDICTOR_OAUTH_CLIENT_SECRET")

	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}

	setString(&cfg.Storage.Postgres.DSN, "POSTGRES_DSN")
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	setBool(&cfg.Storage.Valkey.Enabled, "VALKEY_ENABLED")
	setString(&cfg.Storage.Valkey.Addr, "VALKEY_ADDR")

	setBool(&cfg.Archive.Enabled, "ARCHIVE_ENABLED")
	setString(&cfg.Archive.Endpoint, "ARCHIVE_ENDPOINT")
	setString(&cfg.Archive.AccessKey, "ARCHIVE_ACCESS_KEY")
	setString(&cfg.Archive.SecretKey, "ARCHIVE_SECRET_KEY")
	setString(&cfg.Archive.Bucket, "ARCHIVE_BUCKET")
	setString(&cfg.Archive.Region, "ARCHIVE_REGION")

	setBool(&cfg.Notify.SNS.Enabled, "SNS_ENABLED")
	setString(&cfg.Notify.SNS.Region, "SNS_REGION")
	setString(&cfg.Notify.SNS.TopicARN, "SNS_TOPIC_ARN")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   30 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Auth: AuthConfig{
			Secret:          "moodsip-dev-secret",
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
		User: UserConfig{
			BaseGoal: 8,
			City:     "London",
			Timezone: "UTC",
		},
		Hydration: HydrationConfig{
			HotWeatherGoal:     10,
			StreakLookbackDays: 30,
			MaxGlassesPerDay:   30,
			HotWeatherAlertTTL: 36 * time.Hour,
		},
		Analytics: AnalyticsConfig{
			Windows: []int{5, 7, 14, 28},
		},
		Insight: InsightConfig{
			MealLookbackDays: 7,
			MealSampleSize:   5,
			ArchivePrefix:    "meal-insights",
			Prompt:           "You are a nutrition coach. Given a user's recent meals with mood and energy ratings (1-5) before and after eating, reply strictly as JSON {\"insights\": [...]} with at most three short, specific, encouraging observations.",
		},
		Risk: RiskConfig{
			Enabled:      false,
			Interval:     6 * time.Hour,
			FeatureDays:  7,
			MaxAttempts:  3,
			RetryBackoff: 30 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL:      "https://api.openweathermap.org/data/2.5",
			ForecastHour: "15:00:00",
			Timeout:      10 * time.Second,
		},
		Predictors: PredictorsConfig{
			Timeout: 15 * time.Second,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.4,
		},
		Storage: StorageConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Archive: ArchiveConfig{
			Bucket: "moodsip-reports",
			Region: "auto",
		},
		Notify: NotifyConfig{
			SNS: SNSConfig{Region: "us-east-1"},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttls must be positive")
	}
	if c.User.BaseGoal <= 0 {
		return errors.New("user.baseGoal must be positive")
	}
	if _, err := time.LoadLocation(c.User.Timezone); err != nil {
		return fmt.Errorf("user.timezone: %w", err)
	}
	if c.Hydration.HotWeatherGoal <= 0 {
		return errors.New("hydration.hotWeatherGoal must be positive")
	}
	if c.Hydration.StreakLookbackDays <= 0 {
		return errors.New("hydration.streakLookbackDays must be positive")
	}
	if c.Hydration.MaxGlassesPerDay < 0 {
		return errors.New("hydration.maxGlassesPerDay cannot be negative")
	}
	if len(c.Analytics.Windows) == 0 {
		return errors.New("analytics.windows cannot be empty")
	}
	for _, w := range c.Analytics.Windows {
		if w <= 0 {
			return errors.New("analytics.windows must be positive")
		}
	}
	if c.Risk.Interval <= 0 {
		return errors.New("risk.interval must be positive")
	}
	if c.Risk.MaxAttempts <= 0 {
		return errors.New("risk.maxAttempts must be positive")
	}
	if c.Risk.Enabled && strings.TrimSpace(c.Predictors.RiskURL) == "" {
		return errors.New("predictors.riskUrl is required when the risk job is enabled")
	}
	if c.Predictors.OAuth.Enabled {
		if c.Predictors.OAuth.TokenURL == "" || c.Predictors.OAuth.ClientID == "" {
			return errors.New("predictors.oauth requires tokenUrl and clientId")
		}
	}
	if c.Storage.Valkey.Enabled && strings.TrimSpace(c.Storage.Valkey.Addr) == "" {
		return errors.New("storage.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Archive.Enabled {
		if c.Archive.Endpoint == "" || c.Archive.Bucket == "" {
			return errors.New("archive.endpoint and archive.bucket are required when archiving is enabled")
		}
	}
	if c.Notify.SNS.Enabled && strings.TrimSpace(c.Notify.SNS.TopicARN) == "" {
		return errors.New("notify.sns.topicArn cannot be empty when sns is enabled")
	}
	return nil
}
