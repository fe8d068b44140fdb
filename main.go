package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/Amund211/gameshelf/internal/adapters/gameprovider"
	"github.com/Amund211/gameshelf/internal/app"
	"github.com/Amund211/gameshelf/internal/config"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/Amund211/gameshelf/internal/ports"
	"github.com/Amund211/gameshelf/internal/reporting"
	"github.com/Amund211/gameshelf/internal/telemetry"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "golang.org/x/crypto/x509roots/fallback"
)

// Number of games shown in each browse row
const listRowLimit = 20

func main() {
	ctx := context.Background()

	instanceID := uuid.New().String()

	baseHandler := slog.NewJSONHandler(os.Stdout, nil)
	logger := slog.New(baseHandler).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if project := config.GoogleCloudProject(); project != "" {
		// Correlate log lines with traces in Cloud Logging
		logger = slog.New(logging.NewGoogleCloudTracingLogHandler(baseHandler, project)).With("instanceID", instanceID)
	}

	if config.OTelEnabled() {
		shutdown, err := telemetry.SetupOTelSDK(ctx, "gameshelf")
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	gameProvider, err := gameprovider.NewGameProviderOrMock(config, httpClient)
	if err != nil {
		fail("Failed to initialize game provider", "error", err.Error())
	}
	logger.Info("Initialized game provider")

	session, err := cache.NewSession[domain.Game](
		config.EntryCacheCapacity(),
		config.ListCacheCapacity(),
		logger.With("component", "session"),
		// NOTE: Request hubs are cloned from the current hub, so only evictions before a request show up on it
		reporting.NewEvictionBreadcrumbListener(sentry.CurrentHub()),
	)
	if err != nil {
		fail("Failed to initialize session cache", "error", err.Error())
	}

	rowCache := cache.NewTTLCache[[]string](config.ListRowTTL())
	defer rowCache.Stop()

	getGame := app.BuildGetGame(session, gameProvider)
	getListRow := app.BuildGetListRow(session, rowCache, gameProvider, listRowLimit)
	resetSession := app.BuildResetSession(session)
	getSessionStats := app.BuildGetSessionStats(session)

	http.HandleFunc(
		"GET /v1/games/{id}",
		ports.MakeGetGameHandler(
			getGame,
			logger.With("port", "games"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/lists/{row}",
		ports.MakeGetListRowHandler(
			getListRow,
			logger.With("port", "lists"),
			sentryMiddleware,
		),
	)
	http.HandleFunc(
		"GET /v1/lists/{row}/{genre}",
		ports.MakeGetListRowHandler(
			getListRow,
			logger.With("port", "lists"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"POST /v1/session/reset",
		ports.MakeResetSessionHandler(
			resetSession,
			logger.With("port", "sessionreset"),
			sentryMiddleware,
		),
	)
	http.HandleFunc(
		"GET /v1/session/stats",
		ports.MakeGetSessionStatsHandler(
			getSessionStats,
			logger.With("port", "sessionstats"),
			sentryMiddleware,
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
