package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaulkaran/huti/audio"
)

type splashDoneMsg struct{}

type notificationMsg audio.PlaybackNotification

// splashCmd fires once after delay unless ctx is canceled first.
func splashCmd(ctx context.Context, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			return splashDoneMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// waitForNotification blocks for the next playback event from the deck.
func waitForNotification(ctx context.Context, ch <-chan audio.PlaybackNotification) tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-ch:
			return notificationMsg(n)
		case <-ctx.Done():
			return nil
		}
	}
}
