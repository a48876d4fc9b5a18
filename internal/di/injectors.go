//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"mindful/internal"
	"mindful/internal/blocking"
	"mindful/internal/controllers"
	"mindful/internal/messaging"
	"mindful/internal/providers"
	"mindful/internal/scheduler"
	"mindful/internal/services"
	"mindful/internal/storage"
	"mindful/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewClockProvider,

		storage.NewStoreProvider,
		blocking.NewRuleSetManager,
		services.NewStreakService,
		services.NewDailyCounterService,
		services.NewSettingsService,
		services.NewIntentionService,
		services.NewQuoteService,
		messaging.NewRouter,
		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
