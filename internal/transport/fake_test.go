package transport

import (
	"errors"
	"time"

	"github.com/Mastyx/audio-player/internal/library"
)

type fakeEngine struct {
	played     []string
	failPaths  map[string]bool
	duration   time.Duration
	sampleRate int
	queueEmpty bool
	pauses     int
	stops      int
	gain       float64
	gainWrites int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		failPaths:  map[string]bool{},
		duration:   3 * time.Minute,
		sampleRate: 44100,
	}
}

func (f *fakeEngine) Play(path string) (TrackInfo, error) {
	if f.failPaths[path] {
		return TrackInfo{}, errors.New("decode failed")
	}
	f.played = append(f.played, path)
	f.queueEmpty = false
	return TrackInfo{SampleRate: f.sampleRate, Duration: f.duration}, nil
}

func (f *fakeEngine) Pause() { f.pauses++ }

func (f *fakeEngine) Stop() {
	f.stops++
	f.queueEmpty = true
}

func (f *fakeEngine) QueueEmpty() bool { return f.queueEmpty }

func (f *fakeEngine) SetVolume(v float64) {
	f.gain = v
	f.gainWrites++
}

func (f *fakeEngine) lastPlayed() string {
	if len(f.played) == 0 {
		return ""
	}
	return f.played[len(f.played)-1]
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// sampleEntries lays out the listing [.., dir, A, B, C] with playable tracks at 2, 3, 4.
func sampleEntries() []library.Entry {
	return []library.Entry{
		{Name: library.ParentName, Path: "/music", Kind: library.KindParent},
		{Name: "live", Path: "/music/album/live", Kind: library.KindDir},
		{Name: "A.mp3", Path: "/music/album/A.mp3", Kind: library.KindTrack},
		{Name: "B.mp3", Path: "/music/album/B.mp3", Kind: library.KindTrack},
		{Name: "C.mp3", Path: "/music/album/C.mp3", Kind: library.KindTrack},
	}
}

func trackEntries() []library.Entry {
	return []library.Entry{
		{Name: "A.mp3", Path: "/A.mp3", Kind: library.KindTrack},
		{Name: "B.mp3", Path: "/B.mp3", Kind: library.KindTrack},
		{Name: "C.mp3", Path: "/C.mp3", Kind: library.KindTrack},
	}
}

func newTestTransport() (*Transport, *fakeEngine, *fakeClock) {
	engine := newFakeEngine()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	tr := New(engine)
	tr.SetClock(clock.Now)
	return tr, engine, clock
}
