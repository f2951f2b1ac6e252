package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const volumeBarHeight = 10

// volumeIcon picks the speaker glyph for a volume percentage.
func volumeIcon(percent int) string {
	switch {
	case percent <= 0:
		return "🔇"
	case percent < 33:
		return "🔈"
	case percent < 66:
		return "🔉"
	default:
		return "🔊"
	}
}

// volumeFill returns how many of rows are lit for percent.
func volumeFill(percent, rows int) int {
	filled := (percent * rows) / 100
	if filled < 0 {
		return 0
	}
	if filled > rows {
		return rows
	}
	return filled
}

func (ui *UI) buildVolumeBar(container *tview.Flex) {
	percent := ui.snap.VolumePercent
	muted := percent == 0

	filledLines := volumeFill(percent, volumeBarHeight)
	emptyLines := volumeBarHeight - filledLines

	createText := func(text string, color tcell.Color) *tview.TextView {
		tv := tview.NewTextView()
		tv.SetText(text)
		tv.SetTextAlign(tview.AlignRight)
		tv.SetTextColor(color)
		tv.SetBackgroundColor(ui.colors.background)
		return tv
	}

	barColor := ui.colors.highlight
	if muted {
		barColor = ui.colors.mutedVolume
	}

	container.AddItem(createText(volumeIcon(percent)+"  ", ui.colors.foreground), 1, 0, false)
	container.AddItem(createText("   max", ui.colors.foreground), 1, 0, false)

	for i := 0; i < emptyLines; i++ {
		container.AddItem(createText(" ░░", ui.colors.foreground), 1, 0, false)
	}
	for i := 0; i < filledLines; i++ {
		container.AddItem(createText(" ██", barColor), 1, 0, false)
	}

	container.AddItem(createText("   min", ui.colors.foreground), 1, 0, false)

	percentView := createText(fmt.Sprintf("%d%%", percent), barColor)
	if muted {
		percentView.SetTextStyle(tcell.StyleDefault.
			Foreground(barColor).
			Background(ui.colors.background).
			Attributes(tcell.AttrStrikeThrough))
	}
	container.AddItem(percentView, 1, 0, false)

	container.AddItem(nil, 0, 1, false)
}

func (ui *UI) createGraphicalVolumeBar() *tview.Flex {
	volumeContainer := tview.NewFlex().SetDirection(tview.FlexRow)
	volumeContainer.SetBackgroundColor(ui.colors.background)
	volumeContainer.SetBorderPadding(1, 0, 0, 1)
	return volumeContainer
}

func (ui *UI) updateVolumeDisplay() {
	if ui.volumeView != nil {
		ui.volumeView.Clear()
		ui.buildVolumeBar(ui.volumeView)
	}
}
