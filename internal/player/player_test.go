package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/gopxl/beep/v2/effects"
)

func TestGainToExponent(t *testing.T) {
	tests := []struct {
		gain     float64
		expected float64
	}{
		{1, 0},
		{0.5, -1},
		{0.25, -2},
		{0, MinGainExponent},
		{-0.3, MinGainExponent},
		{1.5, 0},
		{1e-9, MinGainExponent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("gain_%v", tt.gain), func(t *testing.T) {
			if got := gainToExponent(tt.gain); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("gainToExponent(%v) = %v, want %v", tt.gain, got, tt.expected)
			}
		})
	}
}

func TestGainToExponentMonotonic(t *testing.T) {
	prev := gainToExponent(0.05)
	for g := 0.1; g <= 1.0; g += 0.05 {
		cur := gainToExponent(g)
		if cur < prev {
			t.Errorf("gainToExponent(%v) = %v < previous %v", g, cur, prev)
		}
		prev = cur
	}
}

func TestApplyGain(t *testing.T) {
	v := &effects.Volume{Base: 2}

	applyGain(v, 0)
	if !v.Silent {
		t.Error("gain 0 should silence output")
	}

	applyGain(v, 0.5)
	if v.Silent {
		t.Error("gain 0.5 should not be silent")
	}
	if v.Volume != -1 {
		t.Errorf("Volume = %v, want -1", v.Volume)
	}
}

func TestDecoderFor(t *testing.T) {
	tests := []struct {
		path      string
		supported bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"song.flac", true},
		{"song.wav", true},
		{"song.ogg", true},
		{"song.opus", true},
		{"song.m4a", false},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			decode, err := decoderFor(tt.path)
			if tt.supported {
				if err != nil || decode == nil {
					t.Errorf("decoderFor(%q) error = %v, want decoder", tt.path, err)
				}
				return
			}
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("decoderFor(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
		})
	}
}

func TestOpenTrackErrors(t *testing.T) {
	if _, err := openTrack("/nonexistent/track.m4a"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("openTrack(m4a) error = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := openTrack("/nonexistent/track.mp3"); err == nil {
		t.Error("openTrack(missing file) returned nil error")
	}
}

func opusHeader(prefix int, channels byte) []byte {
	var b bytes.Buffer
	b.WriteString("OggS")
	b.Write(make([]byte, prefix))
	b.WriteString("OpusHead")
	b.WriteByte(1)
	b.WriteByte(channels)
	b.Write([]byte{0x38, 0x01, 0x80, 0xbb, 0, 0, 0, 0, 0})
	return b.Bytes()
}

func TestParseOpusHead(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		channels int
		wantErr  bool
	}{
		{"stereo", opusHeader(24, 2), 2, false},
		{"mono", opusHeader(24, 1), 1, false},
		{"surround", opusHeader(24, 6), 6, false},
		{"zero channels", opusHeader(24, 0), 0, true},
		{"not ogg", []byte("ID3\x03OpusHead\x01\x02"), 0, true},
		{"no head", []byte("OggS" + "vorbis-------"), 0, true},
		{"truncated", []byte("OggSOpusHead\x01"), 0, true},
		{"empty", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			got, err := parseOpusHead(r)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseOpusHead() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOpusHead() error = %v", err)
			}
			if got != tt.channels {
				t.Errorf("parseOpusHead() = %d, want %d", got, tt.channels)
			}
			if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
				t.Errorf("reader not rewound, offset = %d", pos)
			}
		})
	}
}

func TestInterleavedToStereo(t *testing.T) {
	tests := []struct {
		name     string
		src      []float32
		channels int
		expected [][2]float64
	}{
		{"mono", []float32{0.5, -0.25}, 1, [][2]float64{{0.5, 0.5}, {-0.25, -0.25}}},
		{"stereo", []float32{0.5, -0.5, 0.25, 0}, 2, [][2]float64{{0.5, -0.5}, {0.25, 0}}},
		{"three", []float32{0.5, -0.5, 1, 0.25, 0, 1}, 3, [][2]float64{{0.5, -0.5}, {0.25, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([][2]float64, len(tt.expected))
			interleavedToStereo(dst, tt.src, tt.channels)
			for i := range dst {
				if dst[i] != tt.expected[i] {
					t.Errorf("frame %d = %v, want %v", i, dst[i], tt.expected[i])
				}
			}
		})
	}
}
