// Package transport owns playback state: play/pause/stop, the elapsed clock,
// the current track and the continuous-play policy.
package transport

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mastyx/audio-player/internal/library"
	"github.com/rs/zerolog/log"
)

// DefaultDuration is assumed when the engine cannot report a track's length.
const DefaultDuration = 180 * time.Second

var (
	ErrNotPlayable = errors.New("entry is not a playable track")
	ErrNoTrack     = errors.New("no track selected")
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "STOPPED"
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// TrackInfo is what the engine reports after opening a track.
type TrackInfo struct {
	SampleRate int
	Duration   time.Duration // zero when unknown
}

// Engine is the decode/output collaborator driven by the transport.
type Engine interface {
	Play(path string) (TrackInfo, error)
	Pause()
	Stop()
	QueueEmpty() bool
}

// Status is an immutable summary of the transport for renderers.
type Status struct {
	State      State
	Track      *library.Entry
	Index      int // -1 when no track has been selected
	Elapsed    time.Duration
	Total      time.Duration
	SampleRate int
	Continuous bool
}

// Transport is driven from a single goroutine (the UI tick) and is not
// safe for concurrent use.
type Transport struct {
	engine Engine
	now    func() time.Time

	state      State
	queue      []library.Entry
	index      int
	track      *library.Entry
	elapsed    time.Duration
	total      time.Duration
	startedAt  time.Time
	sampleRate int
	continuous bool
}

func New(engine Engine) *Transport {
	return &Transport{
		engine: engine,
		now:    time.Now,
		index:  -1,
	}
}

// SetClock replaces the wall clock used for elapsed time.
func (t *Transport) SetClock(now func() time.Time) {
	t.now = now
}

func (t *Transport) State() State {
	return t.state
}

func (t *Transport) Continuous() bool {
	return t.continuous
}

func (t *Transport) SetContinuous(on bool) {
	t.continuous = on
}

// ToggleContinuous flips the continuous-play flag and returns the new value.
func (t *Transport) ToggleContinuous() bool {
	t.continuous = !t.continuous
	log.Debug().Msgf("Continuous play: %v", t.continuous)
	return t.continuous
}

// Status returns a snapshot of the current state.
func (t *Transport) Status() Status {
	s := Status{
		State:      t.state,
		Index:      t.index,
		Elapsed:    t.elapsed,
		Total:      t.total,
		SampleRate: t.sampleRate,
		Continuous: t.continuous,
	}
	if t.track != nil {
		track := *t.track
		s.Track = &track
	}
	return s
}

// Select starts the track at index within entries. The list is remembered as
// the sequence next/previous move through. On failure the prior state is kept.
func (t *Transport) Select(entries []library.Entry, index int) error {
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("index %d out of range", index)
	}
	entry := entries[index]
	if !entry.Playable() {
		return ErrNotPlayable
	}

	info, err := t.engine.Play(entry.Path)
	if err != nil {
		log.Warn().Err(err).Str("track", entry.Path).Msg("Failed to start track")
		return fmt.Errorf("failed to play %s: %w", entry.Name, err)
	}

	queue := make([]library.Entry, len(entries))
	copy(queue, entries)
	t.queue = queue
	t.index = index
	t.track = &queue[index]
	t.start(info)

	log.Debug().Msgf("Now playing [%d] %s (%v, %d Hz)", index, entry.Name, t.total, t.sampleRate)
	return nil
}

func (t *Transport) start(info TrackInfo) {
	t.setState(Playing)
	t.elapsed = 0
	t.total = info.Duration
	if t.total <= 0 {
		t.total = DefaultDuration
	}
	t.sampleRate = info.SampleRate
	t.startedAt = t.now()
}

// Toggle pauses a playing track, or restarts the selected track from the
// beginning when paused or stopped. There is no resume-in-place.
func (t *Transport) Toggle() error {
	if t.track == nil {
		return ErrNoTrack
	}

	if t.state == Playing {
		t.engine.Pause()
		t.setState(Paused)
		return nil
	}

	info, err := t.engine.Play(t.track.Path)
	if err != nil {
		log.Warn().Err(err).Str("track", t.track.Path).Msg("Failed to restart track")
		return fmt.Errorf("failed to play %s: %w", t.track.Name, err)
	}
	t.start(info)
	return nil
}

// Stop halts playback. The selected track is kept so Toggle can restart it.
func (t *Transport) Stop() {
	t.engine.Stop()
	t.setState(Stopped)
	t.elapsed = 0
}

// Tick advances the clock and handles end of track. It is called once per UI cycle.
func (t *Transport) Tick() error {
	if t.state != Playing {
		return nil
	}

	if t.engine.QueueEmpty() {
		log.Debug().Msg("Track ended")
		t.Stop()
		if !t.continuous {
			return nil
		}
		_, err := t.advance()
		return err
	}

	t.elapsed = t.now().Sub(t.startedAt)
	if t.elapsed > t.total {
		t.elapsed = t.total
	}
	return nil
}

// Next plays the nearest playable entry after the current one. It wraps to
// the start of the list only with continuous play; otherwise running off the
// end stops playback.
func (t *Transport) Next() error {
	if t.track == nil {
		return ErrNoTrack
	}

	found, err := t.advance()
	if err != nil {
		return err
	}
	if !found {
		t.Stop()
	}
	return nil
}

func (t *Transport) advance() (bool, error) {
	for i := t.index + 1; i < len(t.queue); i++ {
		if t.queue[i].Playable() {
			return true, t.Select(t.queue, i)
		}
	}
	if t.continuous {
		for i := 0; i < t.index && i < len(t.queue); i++ {
			if t.queue[i].Playable() {
				return true, t.Select(t.queue, i)
			}
		}
	}
	return false, nil
}

// Previous plays the nearest playable entry before the current one. It never wraps.
func (t *Transport) Previous() error {
	if t.track == nil {
		return ErrNoTrack
	}

	for i := t.index - 1; i >= 0; i-- {
		if t.queue[i].Playable() {
			return t.Select(t.queue, i)
		}
	}
	return nil
}

func (t *Transport) setState(state State) {
	if t.state != state {
		log.Debug().Msgf("Transport state: %s -> %s", t.state, state)
		t.state = state
	}
}
