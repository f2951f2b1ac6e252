package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Mastyx/audio-player/internal/library"
	"github.com/Mastyx/audio-player/internal/service"
	"github.com/Mastyx/audio-player/internal/transport"
)

func TestNewPlayingSpinner(t *testing.T) {
	spinner := NewPlayingSpinner()

	if spinner == nil {
		t.Fatal("NewPlayingSpinner() returned nil")
	}

	if len(spinner.Frames) < 2 {
		t.Errorf("Expected at least 2 frames, got %d", len(spinner.Frames))
	}

	if spinner.FPS <= 0 {
		t.Error("PlayingSpinner.FPS should be positive")
	}
}

func TestPlayingSpinnerFrame(t *testing.T) {
	spinner := NewPlayingSpinner()
	perFrame := int(spinner.FPS / TickInterval)

	if got := spinner.Frame(0); got != spinner.Frames[0] {
		t.Errorf("Frame(0) = %q, want %q", got, spinner.Frames[0])
	}
	if got := spinner.Frame(perFrame); got != spinner.Frames[1] {
		t.Errorf("Frame(%d) = %q, want %q", perFrame, got, spinner.Frames[1])
	}
	cycle := perFrame * len(spinner.Frames)
	if got := spinner.Frame(cycle); got != spinner.Frames[0] {
		t.Errorf("Frame(%d) = %q, want wrap to %q", cycle, got, spinner.Frames[0])
	}
}

func TestJoinParts(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{
			name:     "empty slice",
			parts:    []string{},
			expected: "",
		},
		{
			name:     "single part",
			parts:    []string{"Stopped"},
			expected: "Stopped",
		},
		{
			name:     "two parts",
			parts:    []string{"Paused", "Continuous: ON"},
			expected: "Paused │ Continuous: ON",
		},
		{
			name:     "nil slice",
			parts:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := joinParts(tt.parts)
			if result != tt.expected {
				t.Errorf("joinParts(%v) = %q, want %q", tt.parts, result, tt.expected)
			}
		})
	}
}

func TestStatusRendererRender(t *testing.T) {
	tests := []struct {
		name     string
		snap     service.Snapshot
		contains []string
	}{
		{
			name:     "stopped",
			snap:     service.Snapshot{State: transport.Stopped},
			contains: []string{"Stopped", "Continuous: OFF"},
		},
		{
			name:     "paused with continuous",
			snap:     service.Snapshot{State: transport.Paused, Continuous: true},
			contains: []string{"Paused", "Continuous: ON"},
		},
		{
			name:     "playing shows rate",
			snap:     service.Snapshot{State: transport.Playing, SampleRate: 44100},
			contains: []string{"Playing", "44.1kHz", "Continuous: OFF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewStatusRenderer().Render(tt.snap)
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("Render() = %q, want it to contain %q", result, want)
				}
			}
		})
	}
}

func TestStatusRendererAnimation(t *testing.T) {
	r := NewStatusRenderer()
	first := r.renderPlaying()
	for i := 0; i < r.ticksPerFrame; i++ {
		r.AdvanceAnimation()
	}
	if r.renderPlaying() == first {
		t.Error("playing indicator did not advance after a full frame of ticks")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "00:00"},
		{5 * time.Second, "00:05"},
		{65 * time.Second, "01:05"},
		{180 * time.Second, "03:00"},
		{61*time.Minute + 1500*time.Millisecond, "61:01"},
		{-3 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatDuration(tt.input); got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		total    time.Duration
		expected int
	}{
		{"start", 0, time.Minute, 0},
		{"half", 30 * time.Second, time.Minute, 50},
		{"end", time.Minute, time.Minute, 100},
		{"overrun capped", 2 * time.Minute, time.Minute, 100},
		{"unknown total", 10 * time.Second, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressPercent(tt.elapsed, tt.total); got != tt.expected {
				t.Errorf("progressPercent(%v, %v) = %d, want %d", tt.elapsed, tt.total, got, tt.expected)
			}
		})
	}
}

func TestProgressLabel(t *testing.T) {
	if got := progressLabel(75*time.Second, 180*time.Second); got != "01:15 / 03:00" {
		t.Errorf("progressLabel() = %q, want %q", got, "01:15 / 03:00")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		width   int
		filled  int
	}{
		{0, 10, 0},
		{50, 10, 5},
		{100, 10, 10},
		{150, 10, 10},
		{50, 0, 0},
	}

	for _, tt := range tests {
		bar := renderProgressBar(tt.percent, tt.width)
		if n := utf8.RuneCountInString(bar); n != tt.width {
			t.Errorf("renderProgressBar(%d, %d) has %d cells, want %d", tt.percent, tt.width, n, tt.width)
		}
		if n := strings.Count(bar, "█"); n != tt.filled {
			t.Errorf("renderProgressBar(%d, %d) filled %d, want %d", tt.percent, tt.width, n, tt.filled)
		}
	}
}

func TestVolumeIcon(t *testing.T) {
	tests := []struct {
		percent  int
		expected string
	}{
		{0, "🔇"},
		{1, "🔈"},
		{32, "🔈"},
		{33, "🔉"},
		{65, "🔉"},
		{66, "🔊"},
		{100, "🔊"},
	}

	for _, tt := range tests {
		if got := volumeIcon(tt.percent); got != tt.expected {
			t.Errorf("volumeIcon(%d) = %q, want %q", tt.percent, got, tt.expected)
		}
	}
}

func TestVolumeFill(t *testing.T) {
	tests := []struct {
		percent  int
		expected int
	}{
		{0, 0},
		{5, 0},
		{50, 5},
		{100, 10},
		{120, 10},
		{-5, 0},
	}

	for _, tt := range tests {
		if got := volumeFill(tt.percent, volumeBarHeight); got != tt.expected {
			t.Errorf("volumeFill(%d) = %d, want %d", tt.percent, got, tt.expected)
		}
	}
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		delta    int
		n        int
		expected int
	}{
		{"down", 0, 1, 5, 1},
		{"down past end", 4, 1, 5, 0},
		{"up", 3, -1, 5, 2},
		{"up past top", 0, -1, 5, 4},
		{"empty list", 0, 1, 0, 0},
		{"single entry", 0, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapIndex(tt.current, tt.delta, tt.n); got != tt.expected {
				t.Errorf("wrapIndex(%d, %d, %d) = %d, want %d", tt.current, tt.delta, tt.n, got, tt.expected)
			}
		})
	}
}

func TestBarHeight(t *testing.T) {
	tests := []struct {
		level    float64
		rows     int
		expected int
	}{
		{0, 10, 0},
		{0.05, 20, 1},
		{0.5, 10, 5},
		{0.75, 20, 15},
		{1.5, 10, 10},
		{-1, 10, 0},
	}

	for _, tt := range tests {
		if got := barHeight(tt.level, tt.rows); got != tt.expected {
			t.Errorf("barHeight(%v, %d) = %d, want %d", tt.level, tt.rows, got, tt.expected)
		}
	}
}

func TestTierForRow(t *testing.T) {
	tests := []struct {
		row      int
		rows     int
		expected barTier
	}{
		{0, 9, tierLow},
		{2, 9, tierLow},
		{3, 9, tierMid},
		{5, 9, tierMid},
		{6, 9, tierHigh},
		{8, 9, tierHigh},
		{0, 0, tierLow},
	}

	for _, tt := range tests {
		if got := tierForRow(tt.row, tt.rows); got != tt.expected {
			t.Errorf("tierForRow(%d, %d) = %d, want %d", tt.row, tt.rows, got, tt.expected)
		}
	}
}

func TestBarGlyph(t *testing.T) {
	if barGlyph(transport.Playing) != playingGlyph {
		t.Error("playing state should use the solid glyph")
	}
	for _, s := range []transport.State{transport.Paused, transport.Stopped} {
		if barGlyph(s) != idleGlyph {
			t.Errorf("%v state should use the shaded glyph", s)
		}
	}
}

func TestBarLayout(t *testing.T) {
	tests := []struct {
		width     int
		n         int
		wantWidth int
		wantGap   int
	}{
		{95, 32, 2, 1},
		{63, 32, 1, 1},
		{40, 32, 1, 0},
		{10, 32, 1, 0},
		{0, 32, 0, 0},
	}

	for _, tt := range tests {
		w, g := barLayout(tt.width, tt.n)
		if w != tt.wantWidth || g != tt.wantGap {
			t.Errorf("barLayout(%d, %d) = (%d, %d), want (%d, %d)", tt.width, tt.n, w, g, tt.wantWidth, tt.wantGap)
		}
	}
}

func TestEntryLabelAndType(t *testing.T) {
	tests := []struct {
		entry     library.Entry
		label     string
		entryType string
	}{
		{library.Entry{Name: library.ParentName, Kind: library.KindParent}, "⬑ ..", "DIR"},
		{library.Entry{Name: "Albums", Kind: library.KindDir}, "▸ Albums/", "DIR"},
		{library.Entry{Name: "song.flac", Kind: library.KindTrack}, "♪ song.flac", "FLAC"},
		{library.Entry{Name: "noext", Kind: library.KindTrack}, "♪ noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.entry.Name, func(t *testing.T) {
			if got := entryLabel(tt.entry); got != tt.label {
				t.Errorf("entryLabel() = %q, want %q", got, tt.label)
			}
			if got := entryType(tt.entry); got != tt.entryType {
				t.Errorf("entryType() = %q, want %q", got, tt.entryType)
			}
		})
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("short", 10); got != "short" {
		t.Errorf("truncateName(short) = %q", got)
	}
	if got := truncateName("a very long track name", 10); got != "a very ..." {
		t.Errorf("truncateName(long) = %q, want %q", got, "a very ...")
	}
	if got := truncateName("ñandú ñandú ñandú", 8); utf8.RuneCountInString(got) != 8 {
		t.Errorf("truncateName(runes) = %q, want 8 runes", got)
	}
}

func TestFriendlyErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{
			"missing file",
			"Playback error: failed to play a.mp3: failed to open file: open /x/a.mp3: no such file or directory",
			"Playback error: File or directory not found.",
		},
		{
			"unsupported",
			"Playback error: failed to play a.m4a: unsupported audio format: .m4a",
			"Playback error: Unsupported audio format.",
		},
		{
			"directory permission",
			"Cannot open directory: failed to read directory: open /root: permission denied",
			"Cannot open directory: Permission denied.",
		},
		{"generic", "Playback error: decode failed", "Playback error: decode failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := friendlyErrorMessage(tt.input); got != tt.expected {
				t.Errorf("friendlyErrorMessage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFriendlyErrorMessageLongError(t *testing.T) {
	result := friendlyErrorMessage(strings.Repeat("x", 200))

	if len(result) > 110 {
		t.Errorf("Long error not truncated properly, got length %d", len(result))
	}
}

func TestContinuousLabel(t *testing.T) {
	if continuousLabel(true) != "Continuous: ON" || continuousLabel(false) != "Continuous: OFF" {
		t.Errorf("continuousLabel() = %q / %q", continuousLabel(true), continuousLabel(false))
	}
}
