package ui

import (
	"runtime"
	"sync"
	"time"

	"github.com/Mastyx/audio-player/internal/config"
	"github.com/Mastyx/audio-player/internal/service"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	TickInterval      = 50 * time.Millisecond
	HeaderHeight      = 3
	FooterHeight      = 3
	NowPlayingHeight  = 5
	ProgressHeight    = 3
	VolumeWidth       = 7
	BrowserProportion = 2
	PlayerProportion  = 3
)

// PauseIcon uses platform-specific character (Windows renders ⏸ as emoji)
var PauseIcon = func() string {
	if runtime.GOOS == "windows" {
		return "❚❚"
	}
	return "⏸"
}()

type UI struct {
	app            *tview.Application
	svc            *service.PlayerService
	config         *config.Config
	pages          *tview.Pages
	browserTable   *tview.Table
	trackView      *tview.TextView
	statusView     *tview.TextView
	errorView      *tview.TextView
	progressView   *tview.TextView
	volumeView     *tview.Flex
	spectrumBox    *tview.Box
	footer         *tview.Box
	statusRenderer *StatusRenderer
	stopTicker     chan struct{}
	mu             sync.Mutex

	snap        service.Snapshot
	listedDir   string
	shownVolume int

	colors struct {
		background       tcell.Color
		foreground       tcell.Color
		borders          tcell.Color
		highlight        tcell.Color
		directory        tcell.Color
		mutedVolume      tcell.Color
		headerBackground tcell.Color
		spectrumLow      tcell.Color
		spectrumMid      tcell.Color
		spectrumHigh     tcell.Color
		errorText        tcell.Color
		helpBackground   tcell.Color
		helpForeground   tcell.Color
		helpHotkey       tcell.Color
		modalBackground  tcell.Color
	}
}

func NewUI(svc *service.PlayerService, cfg *config.Config) *UI {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ui := &UI{
		app:         tview.NewApplication(),
		svc:         svc,
		config:      cfg,
		stopTicker:  make(chan struct{}),
		shownVolume: -1,
	}

	ui.colors.background = config.GetColor(cfg.Theme.Background)
	ui.colors.foreground = config.GetColor(cfg.Theme.Foreground)
	ui.colors.borders = config.GetColor(cfg.Theme.Borders)
	ui.colors.highlight = config.GetColor(cfg.Theme.Highlight)
	ui.colors.directory = config.GetColor(cfg.Theme.Directory)
	ui.colors.mutedVolume = config.GetColor(cfg.Theme.MutedVolume)
	ui.colors.headerBackground = config.GetColor(cfg.Theme.HeaderBackground)
	ui.colors.spectrumLow = config.GetColor(cfg.Theme.SpectrumLow)
	ui.colors.spectrumMid = config.GetColor(cfg.Theme.SpectrumMid)
	ui.colors.spectrumHigh = config.GetColor(cfg.Theme.SpectrumHigh)
	ui.colors.errorText = config.GetColor(cfg.Theme.Error)
	ui.colors.helpBackground = config.GetColor(cfg.Theme.HelpBackground)
	ui.colors.helpForeground = config.GetColor(cfg.Theme.HelpForeground)
	ui.colors.helpHotkey = config.GetColor(cfg.Theme.HelpHotkey)
	ui.colors.modalBackground = config.GetColor(cfg.Theme.ModalBackground)

	ui.statusRenderer = NewStatusRenderer()
	ui.statusRenderer.SetPrimaryColor(ui.colors.highlight.String())

	return ui
}

// SaveConfig persists the session's volume and continuous-play setting.
func (ui *UI) SaveConfig() {
	settings := ui.svc.Settings()

	ui.mu.Lock()
	ui.config.Volume = settings.Volume
	ui.config.ContinuousPlay = settings.Continuous
	ui.mu.Unlock()

	if err := ui.config.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save config")
	}
}

func (ui *UI) safeCloseChannel() {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	if ui.stopTicker != nil {
		close(ui.stopTicker)
		ui.stopTicker = nil
	}
}

func (ui *UI) stop() {
	ui.safeCloseChannel()
	ui.svc.Stop()
	ui.SaveConfig()
	ui.app.Stop()
}

// Shutdown stops the UI gracefully from external callers (e.g., signal handlers).
func (ui *UI) Shutdown() {
	ui.app.QueueUpdateDraw(func() {
		ui.stop()
	})
}

func (ui *UI) Run() error {
	ui.setupUI()
	ui.configureScreen()
	ui.refresh()

	go ui.tickLoop(ui.stopTicker)

	return ui.app.SetRoot(ui.pages, true).EnableMouse(true).Run()
}

func (ui *UI) configureScreen() {
	bgStyle := tcell.StyleDefault.Background(ui.colors.background)
	ui.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		screen.SetStyle(bgStyle)
		screen.Clear()
		return false
	})

	var titleSet sync.Once
	ui.app.SetAfterDrawFunc(func(screen tcell.Screen) {
		titleSet.Do(func() { screen.SetTitle(config.AppName) })
	})
}

// tickLoop drives transport, analysis and redraw at a fixed cadence.
func (ui *UI) tickLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ui.app.QueueUpdateDraw(func() {
				ui.svc.Tick()
				ui.statusRenderer.AdvanceAnimation()
				ui.refresh()
			})
		}
	}
}

func (ui *UI) setupUI() {
	header := ui.createHeader()

	ui.browserTable = ui.createBrowserTable()

	playerPanel := ui.createPlayerPanel()

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.browserTable, 0, BrowserProportion, true).
		AddItem(nil, 1, 0, false).
		AddItem(playerPanel, 0, PlayerProportion, false)
	body.SetBackgroundColor(ui.colors.background)

	ui.footer = ui.createFooter()

	contentLayout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, HeaderHeight, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(ui.footer, FooterHeight, 0, false)
	contentLayout.SetBackgroundColor(ui.colors.background)

	wrapper := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 2, 0, false).
		AddItem(contentLayout, 0, 1, true).
		AddItem(nil, 2, 0, false)
	wrapper.SetBackgroundColor(ui.colors.background)

	mainLayout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 1, 0, false).
		AddItem(wrapper, 0, 1, true).
		AddItem(nil, 1, 0, false)
	mainLayout.SetBackgroundColor(ui.colors.background)

	ui.pages = tview.NewPages().
		AddPage("main", mainLayout, true, true)
	ui.pages.SetBackgroundColor(ui.colors.background)

	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if ui.pages.HasPage("modal") {
			return event
		}
		return ui.globalInputHandler(event)
	})
}

func (ui *UI) createHeader() tview.Primitive {
	titleView := tview.NewTextView()
	titleView.SetText(" " + config.AppName)
	titleView.SetTextAlign(tview.AlignLeft)
	titleView.SetTextColor(ui.colors.foreground)
	titleView.SetBackgroundColor(ui.colors.headerBackground)

	versionView := tview.NewTextView()
	versionView.SetText("v" + config.AppVersion + " ")
	versionView.SetTextAlign(tview.AlignRight)
	versionView.SetTextColor(ui.colors.foreground)
	versionView.SetBackgroundColor(ui.colors.headerBackground)

	textFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(titleView, 0, 1, false).
		AddItem(versionView, 10, 0, false)
	textFlex.SetBackgroundColor(ui.colors.headerBackground)

	padded := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(tview.NewBox().SetBackgroundColor(ui.colors.headerBackground), 1, 0, false).
		AddItem(textFlex, 0, 1, false).
		AddItem(tview.NewBox().SetBackgroundColor(ui.colors.headerBackground), 1, 0, false)
	padded.SetBackgroundColor(ui.colors.headerBackground)

	headerFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewBox().SetBackgroundColor(ui.colors.headerBackground), 1, 0, false).
		AddItem(padded, 1, 0, false).
		AddItem(tview.NewBox().SetBackgroundColor(ui.colors.headerBackground), 1, 0, false)
	headerFlex.SetBackgroundColor(ui.colors.headerBackground)

	return headerFlex
}

func (ui *UI) createPlayerPanel() *tview.Flex {
	ui.trackView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	ui.trackView.SetTextColor(ui.colors.highlight)
	ui.trackView.SetBackgroundColor(ui.colors.background)
	ui.trackView.SetTextStyle(tcell.StyleDefault.Background(ui.colors.background).Attributes(tcell.AttrBold))

	ui.statusView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	ui.statusView.SetTextColor(ui.colors.foreground)
	ui.statusView.SetBackgroundColor(ui.colors.background)

	ui.errorView = tview.NewTextView().SetWrap(false)
	ui.errorView.SetTextColor(ui.colors.errorText)
	ui.errorView.SetBackgroundColor(ui.colors.background)

	nowPlaying := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.trackView, 1, 0, false).
		AddItem(ui.statusView, 1, 0, false).
		AddItem(ui.errorView, 1, 0, false)
	nowPlaying.SetBorder(true).
		SetTitle(" Now Playing ").
		SetBorderColor(ui.colors.borders).
		SetTitleColor(ui.colors.foreground).
		SetBackgroundColor(ui.colors.background).
		SetBorderPadding(0, 0, 1, 1)

	ui.progressView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	ui.progressView.SetTextColor(ui.colors.foreground)
	ui.progressView.SetBackgroundColor(ui.colors.background)
	ui.progressView.SetBorder(true).
		SetBorderColor(ui.colors.borders).
		SetBorderPadding(0, 0, 1, 1)

	ui.spectrumBox = ui.createSpectrum()
	ui.volumeView = ui.createGraphicalVolumeBar()

	visual := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.spectrumBox, 0, 1, false).
		AddItem(ui.volumeView, VolumeWidth, 0, false)
	visual.SetBackgroundColor(ui.colors.background)

	panel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nowPlaying, NowPlayingHeight, 0, false).
		AddItem(ui.progressView, ProgressHeight, 0, false).
		AddItem(visual, 0, 1, false)
	panel.SetBackgroundColor(ui.colors.background)

	return panel
}

// refresh pulls a snapshot and updates every widget that depends on it.
func (ui *UI) refresh() {
	ui.snap = ui.svc.Snapshot()
	snap := ui.snap

	ui.refreshBrowser(snap)

	track := snap.Track
	if track == "" {
		track = "No track selected"
	}
	ui.trackView.SetText("♪ " + tview.Escape(track))
	ui.statusView.SetText(ui.statusRenderer.Render(snap))
	ui.errorView.SetText(friendlyErrorMessage(snap.Error))

	ui.progressView.SetText(ui.renderProgress(snap))

	if snap.VolumePercent != ui.shownVolume {
		ui.shownVolume = snap.VolumePercent
		ui.updateVolumeDisplay()
	}
}

func (ui *UI) globalInputHandler(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			ui.stop()
			return nil
		case 'j':
			ui.moveCursor(1)
			return nil
		case 'k':
			ui.moveCursor(-1)
			return nil
		case ' ':
			ui.svc.Toggle()
			ui.refresh()
			return nil
		case 'n', 'N':
			ui.svc.Next()
			ui.refresh()
			return nil
		case 'p', 'P':
			ui.svc.Previous()
			ui.refresh()
			return nil
		case 'c', 'C':
			ui.svc.ToggleContinuous()
			ui.refresh()
			return nil
		case '+', '=':
			ui.svc.VolumeUp()
			ui.refresh()
			return nil
		case '-', '_':
			ui.svc.VolumeDown()
			ui.refresh()
			return nil
		case '?':
			ui.showHelpModal()
			return nil
		case 'a', 'A':
			ui.showAboutModal()
			return nil
		case 'r', 'R':
			ui.rescan()
			return nil
		}
	case tcell.KeyDown:
		ui.moveCursor(1)
		return nil
	case tcell.KeyUp:
		ui.moveCursor(-1)
		return nil
	case tcell.KeyEnter:
		ui.selectCurrent()
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ui.enterParent()
		return nil
	case tcell.KeyEscape:
		ui.stop()
		return nil
	case tcell.KeyRight:
		ui.svc.VolumeUp()
		ui.refresh()
		return nil
	case tcell.KeyLeft:
		ui.svc.VolumeDown()
		ui.refresh()
		return nil
	}
	return event
}
