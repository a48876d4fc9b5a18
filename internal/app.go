package internal

import (
	"context"
	"fmt"
	"mindful/internal/controllers"
	"mindful/internal/providers"
	"mindful/internal/scheduler/interfaces"
	"mindful/internal/services"
	"mindful/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const bootstrapTimeout = 10 * time.Second

type App struct {
	WebServer *http.Server
}

func newHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return providers.RequestLogMiddleware(logger, mux)
}

// bootstrap writes install defaults on first run, counting the install day
// towards the streak, then applies the stored switch to the rule sets.
func bootstrap(ctx context.Context, settings services.SettingsServiceInterface, streak services.StreakServiceInterface, logger providers.Logger) error {
	fresh, err := settings.EnsureInstalled(ctx)
	if err != nil {
		return err
	}
	if fresh {
		if _, err := streak.UpdateStreak(ctx); err != nil {
			return err
		}
	}
	if err := settings.SyncRuleSets(ctx); err != nil {
		return err
	}

	record, err := streak.GetStreak(ctx)
	if err != nil {
		return err
	}
	logger.Infof(providers.TypeApp, "Current streak: %d days", record.Count)
	return nil
}

func NewApp(
	healthController *controllers.HealthController,
	scheduler interfaces.SchedulerInterface,
	settings services.SettingsServiceInterface,
	streak services.StreakServiceInterface,
	conf *structures.Config,
	logger providers.Logger,
	router providers.RouterProviderInterface,
	metrics providers.MetricsProviderInterface,
) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	// Starting on an empty store after a failed restore would write fresh
	// install defaults over the user's history.
	err := scheduler.Restore()
	if err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
		return nil, fmt.Errorf("restore: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	err = bootstrap(ctx, settings, streak, logger)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      newHandler(healthController, conf, logger, router, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		scheduler.Stop()
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err = app.WebServer.Shutdown(shutdownCtx); err != nil {
		return nil, err
	}
	err = scheduler.Persist()
	if err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
