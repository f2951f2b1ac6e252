package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mastyx/audio-player/internal/library"
	"github.com/Mastyx/audio-player/internal/service"
	"github.com/Mastyx/audio-player/internal/transport"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const maxNameWidth = 48

type PlayingSpinner struct {
	Frames []string
	FPS    time.Duration
}

func NewPlayingSpinner() *PlayingSpinner {
	return &PlayingSpinner{
		Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
		FPS:    time.Second / 10,
	}
}

// Frame returns the spinner frame shown after the given number of UI ticks.
func (s *PlayingSpinner) Frame(ticks int) string {
	perFrame := int(s.FPS / TickInterval)
	if perFrame < 1 {
		perFrame = 1
	}
	return s.Frames[(ticks/perFrame)%len(s.Frames)]
}

func (ui *UI) createBrowserTable() *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetSeparator(' ').
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetBorder(true).
		SetBorderColor(ui.colors.borders).
		SetTitleColor(ui.colors.foreground).
		SetBackgroundColor(ui.colors.background).
		SetBorderPadding(1, 0, 1, 1)

	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(ui.colors.background).
		Background(ui.colors.highlight))

	table.SetCell(0, 0, tview.NewTableCell(" ").
		SetTextColor(ui.colors.foreground).
		SetMaxWidth(2).
		SetSelectable(false))

	table.SetCell(0, 1, tview.NewTableCell("Name").
		SetTextColor(ui.colors.foreground).
		SetAttributes(tcell.AttrBold).
		SetExpansion(1).
		SetSelectable(false))

	table.SetCell(0, 2, tview.NewTableCell("Type").
		SetTextColor(ui.colors.foreground).
		SetAttributes(tcell.AttrBold).
		SetAlign(tview.AlignRight).
		SetSelectable(false))

	return table
}

// refreshBrowser rebuilds the rows when the directory changed and updates the
// playing indicator on every call.
func (ui *UI) refreshBrowser(snap service.Snapshot) {
	if snap.Dir != ui.listedDir {
		ui.listedDir = snap.Dir
		ui.rebuildBrowserRows(snap.Entries)
		ui.browserTable.SetTitle(fmt.Sprintf(" %s (%d) ", filepath.Base(snap.Dir)+"/", len(snap.Entries)))
		if len(snap.Entries) > 0 {
			ui.browserTable.Select(1, 0)
		}
		ui.browserTable.ScrollToBeginning()
		log.Debug().Str("dir", snap.Dir).Int("count", len(snap.Entries)).Msg("Browser refreshed")
	}

	for i, entry := range snap.Entries {
		icon := " "
		name := entryLabel(entry)
		if entry.Path == snap.TrackPath && entry.Playable() {
			switch snap.State {
			case transport.Playing:
				icon = "➤"
				name = truncateName(name, maxNameWidth-2) + " " + ui.statusRenderer.Spinner()
			case transport.Paused:
				icon = PauseIcon
			}
		}
		if cell := ui.browserTable.GetCell(i+1, 0); cell != nil {
			cell.SetText(icon)
		}
		if cell := ui.browserTable.GetCell(i+1, 1); cell != nil {
			cell.SetText(name)
		}
	}
}

func (ui *UI) rebuildBrowserRows(entries []library.Entry) {
	for row := ui.browserTable.GetRowCount() - 1; row > 0; row-- {
		ui.browserTable.RemoveRow(row)
	}

	for i, entry := range entries {
		color := ui.colors.foreground
		if !entry.Playable() {
			color = ui.colors.directory
		}

		ui.browserTable.SetCell(i+1, 0, tview.NewTableCell(" ").
			SetTextColor(ui.colors.highlight).
			SetMaxWidth(2))

		ui.browserTable.SetCell(i+1, 1, tview.NewTableCell(entryLabel(entry)).
			SetTextColor(color).
			SetMaxWidth(maxNameWidth).
			SetExpansion(1))

		ui.browserTable.SetCell(i+1, 2, tview.NewTableCell(entryType(entry)).
			SetTextColor(color).
			SetAlign(tview.AlignRight))
	}
}

func entryLabel(entry library.Entry) string {
	switch entry.Kind {
	case library.KindParent:
		return "⬑ " + library.ParentName
	case library.KindDir:
		return "▸ " + entry.Name + "/"
	default:
		return "♪ " + entry.Name
	}
}

func entryType(entry library.Entry) string {
	switch entry.Kind {
	case library.KindParent, library.KindDir:
		return "DIR"
	default:
		ext := filepath.Ext(entry.Name)
		if len(ext) > 1 {
			return strings.ToUpper(ext[1:])
		}
		return ""
	}
}

func truncateName(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit || limit < 4 {
		return name
	}
	return string(runes[:limit-3]) + "..."
}

// wrapIndex moves current by delta within n entries, wrapping at both ends.
func wrapIndex(current, delta, n int) int {
	if n <= 0 {
		return 0
	}
	next := (current + delta) % n
	if next < 0 {
		next += n
	}
	return next
}

func (ui *UI) cursorIndex() int {
	row, _ := ui.browserTable.GetSelection()
	return row - 1
}

func (ui *UI) moveCursor(delta int) {
	n := len(ui.snap.Entries)
	if n == 0 {
		return
	}
	ui.browserTable.Select(wrapIndex(ui.cursorIndex(), delta, n)+1, 0)
}

func (ui *UI) selectCurrent() {
	index := ui.cursorIndex()
	if index < 0 || index >= len(ui.snap.Entries) {
		return
	}
	if err := ui.svc.Select(index); err != nil {
		log.Debug().Err(err).Int("index", index).Msg("Select failed")
	}
	ui.refresh()
}

// rescan re-reads the listed directory and forces the rows to be rebuilt.
func (ui *UI) rescan() {
	if err := ui.svc.Rescan(); err != nil {
		log.Debug().Err(err).Msg("Rescan failed")
	}
	ui.listedDir = ""
	ui.refresh()
}

func (ui *UI) enterParent() {
	if err := ui.svc.Up(); err != nil {
		log.Debug().Err(err).Msg("Parent navigation failed")
	}
	ui.refresh()
}
