package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep/v2"
	"gopkg.in/hraban/opus.v2"
)

// OpusSampleRate is the rate libopusfile always decodes to.
const OpusSampleRate = beep.SampleRate(48000)

const opusHeadScan = 4096

var errNoOpusHead = errors.New("OpusHead packet not found")

// parseOpusHead returns the channel count from the identification header.
// The reader is rewound to the start afterwards.
func parseOpusHead(r io.ReadSeeker) (int, error) {
	buf := make([]byte, opusHeadScan)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, err
	}
	buf = buf[:n]

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	if !bytes.HasPrefix(buf, []byte("OggS")) {
		return 0, errors.New("not an ogg stream")
	}
	idx := bytes.Index(buf, []byte("OpusHead"))
	if idx < 0 || idx+10 > len(buf) {
		return 0, errNoOpusHead
	}
	// magic(8) version(1) channels(1)
	channels := int(buf[idx+9])
	if channels == 0 {
		return 0, fmt.Errorf("invalid opus channel count %d", channels)
	}
	return channels, nil
}

type opusStreamer struct {
	stream   *opus.Stream
	channels int
	buf      []float32
	err      error
}

func decodeOpus(f *os.File) (beep.StreamCloser, beep.Format, error) {
	channels, err := parseOpusHead(f)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, err := opus.NewStream(f)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open opus stream: %w", err)
	}

	format := beep.Format{SampleRate: OpusSampleRate, NumChannels: 2, Precision: 2}
	return &opusStreamer{stream: stream, channels: channels}, format, nil
}

// Stream fills samples with stereo frames. Mono is duplicated to both sides
// and channels past the second are dropped.
func (s *opusStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	if need := len(samples) * s.channels; cap(s.buf) < need {
		s.buf = make([]float32, need)
	}

	for n < len(samples) {
		read, err := s.stream.ReadFloat32(s.buf[:(len(samples)-n)*s.channels])
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			break
		}
		if read == 0 {
			break
		}
		interleavedToStereo(samples[n:n+read], s.buf, s.channels)
		n += read
	}
	return n, n > 0
}

func interleavedToStereo(dst [][2]float64, src []float32, channels int) {
	for i := range dst {
		left := float64(src[i*channels])
		right := left
		if channels > 1 {
			right = float64(src[i*channels+1])
		}
		dst[i] = [2]float64{left, right}
	}
}

func (s *opusStreamer) Err() error {
	return s.err
}

func (s *opusStreamer) Close() error {
	return s.stream.Close()
}
