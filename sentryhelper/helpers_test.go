package sentryhelper

import (
	"context"
	"testing"

	sentry "github.com/getsentry/sentry-go"
)

func TestCardHubIsIsolated(t *testing.T) {
	a := CardHub(1)
	b := CardHub(2)
	if a == b || a == sentry.CurrentHub() {
		t.Fatal("CardHub() should return a fresh clone")
	}
	AddBreadcrumb(a, "player", "toggle")
	// no client is bound, so nothing is sent; this only checks nothing panics
	AddBreadcrumb(b, "player", "seek")
}

func TestHubFromContext(t *testing.T) {
	if got := HubFromContext(context.Background()); got != sentry.CurrentHub() {
		t.Error("HubFromContext() without a hub should fall back to CurrentHub")
	}

	hub := CardHub(3)
	ctx := sentry.SetHubOnContext(context.Background(), hub)
	if got := HubFromContext(ctx); got != hub {
		t.Error("HubFromContext() should return the hub stored on the context")
	}
}
