//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/moodsip/internal/bootstrap"
	"github.com/yanqian/moodsip/internal/domain/analytics"
	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/insight"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/internal/domain/risk"
	"github.com/yanqian/moodsip/internal/infra/config"
	httpiface "github.com/yanqian/moodsip/internal/interface/http"
	"github.com/yanqian/moodsip/pkg/logger"
)

var infraSet = wire.NewSet(
	config.Load,
	logger.New,
	providePostgresPool,
	provideValkeyClient,
	provideUserRepository,
	provideHydrationStore,
	provideMealStore,
	provideRiskGuard,
	provideHydrationGuard,
	provideWeatherClient,
	provideHydrationWeather,
	provideRiskWeather,
	provideNotifier,
	providePredictorHTTPClient,
	provideRiskPredictor,
)

var riskSet = wire.NewSet(
	provideAuthConfig,
	provideRiskConfig,
	auth.NewService,
	risk.NewRunner,
	risk.NewScheduler,
	wire.Bind(new(risk.SettingsProvider), new(auth.Service)),
	wire.Bind(new(risk.UserLister), new(auth.Repository)),
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		infraSet,
		riskSet,
		provideHydrationConfig,
		provideMealConfig,
		provideAnalyticsConfig,
		provideInsightConfig,
		provideInsightPredictor,
		provideTrendPredictor,
		provideMealInsightsLLM,
		provideArchive,
		hydration.NewService,
		meal.NewService,
		analytics.NewService,
		insight.NewService,
		wire.Bind(new(hydration.SettingsProvider), new(auth.Service)),
		wire.Bind(new(meal.SettingsProvider), new(auth.Service)),
		wire.Bind(new(analytics.SettingsProvider), new(auth.Service)),
		wire.Bind(new(insight.SettingsProvider), new(auth.Service)),
		wire.Bind(new(httpiface.RiskChecker), new(*risk.Scheduler)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}

func initializeScheduler() (*risk.Scheduler, func(), error) {
	wire.Build(infraSet, riskSet)
	return nil, nil, nil
}
