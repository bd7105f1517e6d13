// Package sentryhelper keeps Sentry breadcrumbs and tags isolated per card
// and per HTTP request.
package sentryhelper

import (
	"context"
	"strconv"

	sentry "github.com/getsentry/sentry-go"
)

// CardHub clones the current hub so one card's breadcrumbs never show up on
// another card's events.
func CardHub(songID int) *sentry.Hub {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("song_id", strconv.Itoa(songID))
	})
	return hub
}

// HubFromContext retrieves the request hub placed by the gin middleware.
// Falls back to CurrentHub when there is none.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// AddBreadcrumb records a user action on hub.
func AddBreadcrumb(hub *sentry.Hub, category, message string) {
	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
	}, nil)
}

// CaptureException captures an exception on the hub in context.
func CaptureException(ctx context.Context, err error) *sentry.EventID {
	return HubFromContext(ctx).CaptureException(err)
}
