package player

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mastyx/audio-player/internal/transport"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"
)

const (
	OutputSampleRate  = beep.SampleRate(44100)
	SpeakerBufferSize = time.Millisecond * 100
	ResampleQuality   = 4
	MinGainExponent   = -10.0
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Observer is inserted right after the decoder and sees every decoded frame.
type Observer interface {
	Wrap(src beep.Streamer) beep.Streamer
	Reset()
}

type decodeFunc func(f *os.File) (beep.StreamCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3": func(f *os.File) (beep.StreamCloser, beep.Format, error) {
		return seekable(mp3.Decode(f))
	},
	".flac": func(f *os.File) (beep.StreamCloser, beep.Format, error) {
		return seekable(flac.Decode(f))
	},
	".wav": func(f *os.File) (beep.StreamCloser, beep.Format, error) {
		return seekable(wav.Decode(f))
	},
	".ogg": func(f *os.File) (beep.StreamCloser, beep.Format, error) {
		return seekable(vorbis.Decode(f))
	},
	".opus": decodeOpus,
}

func seekable(s beep.StreamSeekCloser, format beep.Format, err error) (beep.StreamCloser, beep.Format, error) {
	if err != nil {
		return nil, beep.Format{}, err
	}
	return s, format, nil
}

func decoderFor(path string) (decodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return decode, nil
}

// openedTrack is a decoded file ready to be attached to the speaker.
type openedTrack struct {
	file     *os.File
	streamer beep.StreamCloser
	format   beep.Format
	duration time.Duration
}

func openTrack(path string) (*openedTrack, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	t := &openedTrack{file: f, streamer: streamer, format: format}
	if s, ok := streamer.(beep.StreamSeeker); ok && s.Len() > 0 {
		t.duration = format.SampleRate.D(s.Len())
	}
	return t, nil
}

func (t *openedTrack) Close() {
	if err := t.streamer.Close(); err != nil {
		log.Debug().Err(err).Msg("Decoder close")
	}
	if err := t.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		log.Debug().Err(err).Msg("File close")
	}
}

// Player decodes local files and plays them on the system audio device.
type Player struct {
	mu      sync.Mutex
	tap     Observer
	current *openedTrack
	volume  *effects.Volume
	ctrl    *beep.Ctrl
	gain    float64

	generation atomic.Uint64
	ended      atomic.Bool
}

// New opens the audio device. A failure here means nothing can be played.
func New(tap Observer) (*Player, error) {
	if err := speaker.Init(OutputSampleRate, OutputSampleRate.N(SpeakerBufferSize)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	log.Debug().Msgf("Speaker initialized with sample rate: %d Hz, buffer: %v", OutputSampleRate, SpeakerBufferSize)

	p := &Player{tap: tap, gain: transport.DefaultVolume}
	p.ended.Store(true)
	return p, nil
}

// Play decodes path and only then replaces the current track, so a file that
// fails to open leaves the previous one playing.
func (p *Player) Play(path string) (transport.TrackInfo, error) {
	t, err := openTrack(path)
	if err != nil {
		return transport.TrackInfo{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	var stream beep.Streamer = t.streamer
	if p.tap != nil {
		stream = p.tap.Wrap(stream)
	}
	if t.format.SampleRate != OutputSampleRate {
		stream = beep.Resample(ResampleQuality, t.format.SampleRate, OutputSampleRate, stream)
	}

	p.volume = &effects.Volume{Streamer: stream, Base: 2}
	applyGain(p.volume, p.gain)
	p.ctrl = &beep.Ctrl{Streamer: p.volume}
	p.current = t

	gen := p.generation.Add(1)
	p.ended.Store(false)
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		if p.generation.Load() == gen {
			p.ended.Store(true)
		}
	})))

	log.Debug().Msgf("Playing %s (%d Hz, %v)", filepath.Base(path), t.format.SampleRate, t.duration)
	return transport.TrackInfo{
		SampleRate: int(t.format.SampleRate),
		Duration:   t.duration,
	}, nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	log.Debug().Msg("Playback paused")
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	speaker.Clear()
	if p.tap != nil {
		p.tap.Reset()
	}
	p.generation.Add(1)
	p.ended.Store(true)

	if p.current != nil {
		p.current.Close()
		p.current = nil
		log.Debug().Msg("Playback stopped")
	}
	p.ctrl = nil
	p.volume = nil
}

// QueueEmpty reports whether the loaded track has finished or nothing is loaded.
func (p *Player) QueueEmpty() bool {
	return p.ended.Load()
}

// SetVolume sets the linear gain. It is kept for the next track when idle.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gain = transport.ClampVolume(v)
	if p.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(p.volume, p.gain)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.Stop()
	speaker.Close()
}

func applyGain(v *effects.Volume, gain float64) {
	v.Volume = gainToExponent(gain)
	v.Silent = gain <= 0
}

// gainToExponent maps a linear gain onto effects.Volume's base-2 exponent.
func gainToExponent(gain float64) float64 {
	if gain <= 0 {
		return MinGainExponent
	}
	if gain >= 1 {
		return 0
	}
	return math.Max(math.Log2(gain), MinGainExponent)
}
