package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mastyx/audio-player/internal/service"
)

// formatDuration renders d as MM:SS; minutes keep counting past an hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// progressPercent is elapsed over total in whole percent, capped at 100.
func progressPercent(elapsed, total time.Duration) int {
	if total <= 0 || elapsed <= 0 {
		return 0
	}
	p := int(elapsed * 100 / total)
	if p > 100 {
		return 100
	}
	return p
}

func progressLabel(elapsed, total time.Duration) string {
	return formatDuration(elapsed) + " / " + formatDuration(total)
}

func renderProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	filled := (percent * width) / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (ui *UI) renderProgress(snap service.Snapshot) string {
	label := progressLabel(snap.Elapsed, snap.Total)

	_, _, width, _ := ui.progressView.GetInnerRect()
	barWidth := width - len(label) - 1
	if barWidth < 0 {
		barWidth = 0
	}

	bar := renderProgressBar(progressPercent(snap.Elapsed, snap.Total), barWidth)
	return fmt.Sprintf("[%s]%s[-] %s", ui.colors.highlight.String(), bar, label)
}
