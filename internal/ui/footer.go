package ui

import (
	"fmt"

	"github.com/Mastyx/audio-player/internal/service"
	"github.com/Mastyx/audio-player/internal/transport"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type StatusRenderer struct {
	animFrame     int
	maxAnimFrame  int
	tickCount     int
	ticksPerFrame int
	ticks         int
	spinner       *PlayingSpinner

	primaryColor string
}

func NewStatusRenderer() *StatusRenderer {
	return &StatusRenderer{
		maxAnimFrame:  4,
		ticksPerFrame: 8, // 8 ticks of 50ms per dot frame
		spinner:       NewPlayingSpinner(),
	}
}

func (s *StatusRenderer) SetPrimaryColor(color string) {
	s.primaryColor = color
}

func (s *StatusRenderer) AdvanceAnimation() {
	s.ticks++
	s.tickCount++
	if s.tickCount >= s.ticksPerFrame {
		s.tickCount = 0
		s.animFrame = (s.animFrame + 1) % s.maxAnimFrame
	}
}

// Spinner returns the current frame of the playing-row spinner.
func (s *StatusRenderer) Spinner() string {
	return s.spinner.Frame(s.ticks)
}

func (s *StatusRenderer) Render(snap service.Snapshot) string {
	var parts []string

	switch snap.State {
	case transport.Playing:
		parts = append(parts, s.renderPlaying())
		if snap.SampleRate > 0 {
			parts = append(parts, fmt.Sprintf("%.1fkHz", float64(snap.SampleRate)/1000.0))
		}
	case transport.Paused:
		parts = append(parts, PauseIcon+" Paused")
	default:
		parts = append(parts, "○ Stopped")
	}

	parts = append(parts, continuousLabel(snap.Continuous))
	return joinParts(parts)
}

func (s *StatusRenderer) renderPlaying() string {
	dots := []string{"●", "◉", "○", "◉"}
	dot := dots[s.animFrame]

	if s.primaryColor != "" {
		dot = fmt.Sprintf("[%s]%s[-]", s.primaryColor, dot)
	}
	return dot + " Playing"
}

func continuousLabel(on bool) string {
	if on {
		return "Continuous: ON"
	}
	return "Continuous: OFF"
}

func joinParts(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += " │ " + parts[i]
	}
	return result
}

func (ui *UI) getPlaybackHint(keyColor string) string {
	switch ui.snap.State {
	case transport.Playing:
		return fmt.Sprintf("[%s]Enter[-] play  [%s]Space[-] pause", keyColor, keyColor)
	case transport.Paused:
		return fmt.Sprintf("[%s]Enter[-] play  [%s]Space[-] restart", keyColor, keyColor)
	default:
		return fmt.Sprintf("[%s]Enter[-] play", keyColor)
	}
}

func (ui *UI) getHelpText() string {
	keyColor := ui.colors.helpHotkey.String()
	playbackHint := ui.getPlaybackHint(keyColor)

	return fmt.Sprintf(" %s  [%s]n/p[-] next/prev  [%s]+/-[-] vol  [%s]c[-] continuous  [%s]?[-] help  [%s]q[-] quit ",
		playbackHint, keyColor, keyColor, keyColor, keyColor, keyColor)
}

func (ui *UI) createFooter() *tview.Box {
	box := tview.NewBox().SetBackgroundColor(ui.colors.helpBackground)

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		for row := y; row < y+height; row++ {
			for col := x; col < x+width; col++ {
				screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(ui.colors.helpBackground))
			}
		}

		tview.Print(screen, ui.getHelpText(), x, y+height/2, width, tview.AlignCenter, ui.colors.helpForeground)
		return x, y, width, height
	})

	return box
}
