package sentry

import (
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/kaulkaran/huti/config"
)

// Init configures the global hub. An empty DSN leaves reporting disabled.
func Init(session string) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.Config.Sentry.DSN,
		Release:          config.Config.Sentry.Release,
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	SetTag("session", session)
	if !config.Config.Sentry.IsEnabled() {
		log.Debug("sentry disabled, no SENTRY_DSN set")
	}
}

func GetSentryGin() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true})
}

func SetTag(key, value string) {
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag(key, value)
	})
}

func ReportError(err error) {
	sentry.CaptureException(err)
}

// Flush waits for buffered events before the process exits.
func Flush() {
	sentry.Flush(2 * time.Second)
}
