package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/Amund211/gameshelf/internal/config"
	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

var authRx = regexp.MustCompile(`([?&]auth=)[^&"\s]+`)
var hostRx = regexp.MustCompile(`\[:{0,2}([0-9a-f]{0,4}:?){1,8}\]:\d+`)
var gameRx = regexp.MustCompile(`/games/[^/."\s?]+`)

// sanitizeError removes credentials and high cardinality values so that similar errors are grouped together
func sanitizeError(err string) string {
	err = authRx.ReplaceAllString(err, "${1}<redacted>")
	err = hostRx.ReplaceAllString(err, "<host>")
	err = gameRx.ReplaceAllString(err, "/games/<id>")
	return err
}

func Report(ctx context.Context, err error, extras ...map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	logger := logging.FromContext(ctx)

	if err == nil {
		err = errors.New("No error provided")
	}

	if hub == nil {
		logger.WarnContext(ctx, "Failed to get Sentry hub from context", "error", err.Error(), "extras", extras)
		return
	}

	logger.ErrorContext(
		ctx,
		"Reporting error to Sentry",
		slog.String("error", err.Error()),
		slog.Any("extras", extras),
	)

	hub.WithScope(func(scope *sentry.Scope) {
		meta := MetaFromContext(ctx)
		scope.SetTags(meta.tags)
		for key, value := range meta.extras {
			scope.SetExtra(key, value)
		}
		if meta.userID != "" {
			scope.SetUser(sentry.User{
				ID: meta.userID,
			})
		}
		if !meta.startedAt.IsZero() {
			scope.SetExtra("secondsSinceStart", time.Since(meta.startedAt).Seconds())
		}

		for _, extra := range extras {
			for key, value := range extra {
				scope.SetExtra(key, value)
			}
		}

		scope.SetFingerprint([]string{"{{ default }}", sanitizeError(err.Error())})
		hub.CaptureException(err)
	})
}

// NewAddMetaMiddleware tags reported events with the operation and request info
func NewAddMetaMiddleware(operation string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userAgent := r.UserAgent()
			if userAgent == "" {
				userAgent = "<missing>"
			}

			ctx = AddTagsToContext(ctx,
				map[string]string{
					"operation":  operation,
					"userAgent":  userAgent,
					"methodPath": fmt.Sprintf("%s %s", r.Method, r.URL.Path),
				},
			)
			ctx = setStartedAtInContext(ctx, time.Now())
			if userID := r.Header.Get("X-User-Id"); userID != "" {
				ctx = SetUserIDInContext(ctx, userID)
			}

			next(w, r.WithContext(ctx))
		}
	}
}

func InitSentryMiddleware(sentryDSN string, environment string) (func(http.HandlerFunc) http.HandlerFunc, func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              sentryDSN,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 1.0 / 100.0,
	})
	if err != nil {
		return nil, nil, err
	}

	sentryHandler := sentryhttp.New(sentryhttp.Options{})

	middleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sentryHandler.HandleFunc(next).ServeHTTP(w, r)
		}
	}

	flush := func() {
		sentry.Flush(5 * time.Second)
	}

	return middleware, flush, nil
}

func NewSentryMiddlewareOrMock(config config.Config) (func(http.HandlerFunc) http.HandlerFunc, func(), error) {
	if config.SentryDSN() != "" {
		environment := "production"
		if config.IsStaging() {
			environment = "staging"
		} else if config.IsDevelopment() {
			environment = "development"
		}
		return InitSentryMiddleware(config.SentryDSN(), environment)
	}

	if config.IsDevelopment() {
		middleware := func(next http.HandlerFunc) http.HandlerFunc {
			return next
		}
		flush := func() {}
		return middleware, flush, nil
	}

	return nil, nil, fmt.Errorf("Missing Sentry DSN in non-development environment")
}
