package ui

import (
	"github.com/Mastyx/audio-player/internal/transport"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	playingGlyph = '█'
	idleGlyph    = '▓'
)

type barTier int

const (
	tierLow barTier = iota
	tierMid
	tierHigh
)

// barHeight converts a level in [0,1] to a row count within rows.
func barHeight(level float64, rows int) int {
	h := int(level * float64(rows))
	if h < 0 {
		return 0
	}
	if h > rows {
		return rows
	}
	return h
}

// tierForRow colors the lower third low, the middle third mid and the rest
// high. row counts up from the bottom.
func tierForRow(row, rows int) barTier {
	if rows <= 0 {
		return tierLow
	}
	frac := float64(row) / float64(rows)
	switch {
	case frac < 1.0/3.0:
		return tierLow
	case frac < 2.0/3.0:
		return tierMid
	default:
		return tierHigh
	}
}

func barGlyph(state transport.State) rune {
	if state == transport.Playing {
		return playingGlyph
	}
	return idleGlyph
}

// barLayout splits width into n columns with a one-cell gap when it fits.
func barLayout(width, n int) (barWidth, gap int) {
	if n <= 0 || width <= 0 {
		return 0, 0
	}
	if width >= 2*n-1 {
		gap = 1
	}
	barWidth = (width - (n-1)*gap) / n
	if barWidth < 1 {
		barWidth = 1
	}
	return barWidth, gap
}

func (ui *UI) tierColor(t barTier) tcell.Color {
	switch t {
	case tierMid:
		return ui.colors.spectrumMid
	case tierHigh:
		return ui.colors.spectrumHigh
	default:
		return ui.colors.spectrumLow
	}
}

func (ui *UI) createSpectrum() *tview.Box {
	box := tview.NewBox().SetBackgroundColor(ui.colors.background)
	box.SetBorder(true).
		SetTitle(" Spectrum ").
		SetBorderColor(ui.colors.borders).
		SetTitleColor(ui.colors.foreground)

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		ix, iy, iw, ih := x+1, y+1, width-2, height-2
		if iw <= 0 || ih <= 0 {
			return ix, iy, iw, ih
		}

		bars := ui.snap.Bars
		glyph := barGlyph(ui.snap.State)
		barWidth, gap := barLayout(iw, len(bars))

		for i, level := range bars {
			col := ix + i*(barWidth+gap)
			if col >= ix+iw {
				break
			}
			h := barHeight(level, ih)
			for r := 0; r < h; r++ {
				style := tcell.StyleDefault.
					Foreground(ui.tierColor(tierForRow(r, ih))).
					Background(ui.colors.background)
				for c := 0; c < barWidth && col+c < ix+iw; c++ {
					screen.SetContent(col+c, iy+ih-1-r, glyph, nil, style)
				}
			}
		}
		return ix, iy, iw, ih
	})

	return box
}
