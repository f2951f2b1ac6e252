// Package service composes capture, analysis, transport and navigation into
// the command surface and snapshot used by the UI.
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/Mastyx/audio-player/internal/capture"
	"github.com/Mastyx/audio-player/internal/library"
	"github.com/Mastyx/audio-player/internal/spectrum"
	"github.com/Mastyx/audio-player/internal/transport"
	"github.com/rs/zerolog/log"
)

// Engine is the decode/output collaborator, including live gain.
type Engine interface {
	transport.Engine
	transport.GainSetter
}

// EngineFactory builds the engine around the capture tap owned by the service.
type EngineFactory func(tap *capture.Tap) (Engine, error)

// Options are the persisted session settings applied at startup.
type Options struct {
	Volume     float64
	Continuous bool
}

// Snapshot is a read-only view of the player for one render.
type Snapshot struct {
	Bars          spectrum.Frame
	State         transport.State
	Track         string
	TrackPath     string
	Index         int
	SampleRate    int
	Elapsed       time.Duration
	Total         time.Duration
	Volume        float64
	VolumePercent int
	Continuous    bool
	Error         string
	Dir           string
	Entries       []library.Entry
}

// PlayerService is the player facade. Every method is safe to call from the
// UI goroutine and from shutdown hooks.
type PlayerService struct {
	mu        sync.Mutex
	browser   *library.Browser
	engine    Engine
	buffer    *capture.Buffer
	analyzer  *spectrum.Analyzer
	transport *transport.Transport
	volume    *transport.Volume
	errMsg    string

	namePath string
	name     string
}

// NewPlayerService creates the capture buffer and hands its tap to newEngine.
// An engine error is fatal to the caller.
func NewPlayerService(newEngine EngineFactory, browser *library.Browser, opts Options) (*PlayerService, error) {
	buffer := capture.NewBuffer(capture.DefaultCapacity)
	engine, err := newEngine(capture.NewTap(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio engine: %w", err)
	}

	tr := transport.New(engine)
	tr.SetContinuous(opts.Continuous)

	return &PlayerService{
		browser:   browser,
		engine:    engine,
		buffer:    buffer,
		analyzer:  spectrum.NewAnalyzer(),
		transport: tr,
		volume:    transport.NewVolume(engine, opts.Volume),
	}, nil
}

// SetClock replaces the transport's wall clock.
func (s *PlayerService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.SetClock(now)
}

// Select plays the track at index, or navigates when it is a directory or
// the parent marker.
func (s *PlayerService) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.browser.Entry(index)
	if !ok {
		return fmt.Errorf("no entry at index %d", index)
	}

	if !entry.Playable() {
		if err := s.browser.Enter(index); err != nil {
			s.errMsg = "Cannot open directory: " + err.Error()
			return err
		}
		s.errMsg = ""
		return nil
	}

	return s.report(s.transport.Select(s.browser.Entries(), index))
}

// Up navigates to the parent directory.
func (s *PlayerService) Up() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.browser.Up(); err != nil {
		s.errMsg = "Cannot open directory: " + err.Error()
		return err
	}
	s.errMsg = ""
	return nil
}

// Rescan re-reads the current directory so files added or removed on disk
// show up. The playing track and its queue are not affected.
func (s *PlayerService) Rescan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.browser.Reload(); err != nil {
		s.errMsg = "Cannot open directory: " + err.Error()
		return err
	}
	s.errMsg = ""
	return nil
}

func (s *PlayerService) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report(s.transport.Toggle())
}

func (s *PlayerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.Stop()
}

func (s *PlayerService) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report(s.transport.Next())
}

func (s *PlayerService) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report(s.transport.Previous())
}

func (s *PlayerService) VolumeUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume.Increase()
}

func (s *PlayerService) VolumeDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume.Decrease()
}

// ToggleContinuous flips continuous play and returns the new value.
func (s *PlayerService) ToggleContinuous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.ToggleContinuous()
}

// Tick runs one UI cycle: transport bookkeeping, then analysis of the latest
// captured window while playing, or decay otherwise.
func (s *PlayerService) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transport.Tick(); err != nil {
		s.report(err)
	}

	if s.transport.State() == transport.Playing {
		samples := s.buffer.Snapshot(spectrum.FFTSize)
		s.analyzer.Update(samples, s.transport.Status().SampleRate)
		return
	}
	s.analyzer.Decay()
}

// Snapshot returns the state the renderer needs for one frame.
func (s *PlayerService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.transport.Status()
	snap := Snapshot{
		Bars:          s.analyzer.Frame(),
		State:         status.State,
		Index:         status.Index,
		SampleRate:    status.SampleRate,
		Elapsed:       status.Elapsed,
		Total:         status.Total,
		Volume:        s.volume.Level(),
		VolumePercent: s.volume.Percent(),
		Continuous:    status.Continuous,
		Error:         s.errMsg,
		Dir:           s.browser.Dir(),
		Entries:       s.browser.Entries(),
	}
	if status.Track != nil {
		snap.Track = s.trackName(*status.Track)
		snap.TrackPath = status.Track.Path
	}
	return snap
}

// Settings returns the values persisted between sessions.
func (s *PlayerService) Settings() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Options{Volume: s.volume.Level(), Continuous: s.transport.Continuous()}
}

// Close stops playback.
func (s *PlayerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.Stop()
	log.Debug().Msg("Player service closed")
}

// trackName reads tags once per track.
func (s *PlayerService) trackName(entry library.Entry) string {
	if entry.Path != s.namePath {
		s.namePath = entry.Path
		s.name = library.TrackName(entry)
	}
	return s.name
}

func (s *PlayerService) report(err error) error {
	if err != nil {
		s.errMsg = "Playback error: " + err.Error()
		log.Error().Err(err).Msg("Playback command failed")
		return err
	}
	s.errMsg = ""
	return nil
}
