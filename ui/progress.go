package ui

import (
	"fmt"
	"strings"
	"time"
)

// MiniBarWidth is the number of cells in a card's progress bar.
const MiniBarWidth = 20

// RenderProgressBar creates a Unicode progress bar followed by the elapsed and total time.
func RenderProgressBar(current, total time.Duration, width int) string {
	if total <= 0 {
		return fmt.Sprintf("%s 0:00 / 0:00", strings.Repeat("░", width))
	}

	percentage := float64(current) / float64(total)
	return fmt.Sprintf("%s %s / %s", progressCells(percentage*100, width), FormatDuration(current), FormatDuration(total))
}

// progressCells fills width cells for a percentage in [0, 100].
func progressCells(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", width-filled)
}

// FormatDuration formats duration as M:SS or H:MM:SS
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
