package capture

import "github.com/gopxl/beep/v2"

// Tap attaches the capture buffer to a playback pipeline. It sits between
// the decoder and the rest of the chain and never modifies the samples.
type Tap struct {
	buf *Buffer
}

func NewTap(buf *Buffer) *Tap {
	return &Tap{buf: buf}
}

// Wrap returns a pass-through stage that records what src produces.
func (t *Tap) Wrap(src beep.Streamer) beep.Streamer {
	return &tapStage{src: src, buf: t.buf}
}

// Reset discards samples from a previous track.
func (t *Tap) Reset() {
	t.buf.Clear()
}

type tapStage struct {
	src beep.Streamer
	buf *Buffer
}

// Stream observes each frame and forwards it untouched.
func (s *tapStage) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	s.buf.PushFrames(samples[:n])
	return n, ok
}

func (s *tapStage) Err() error {
	return s.src.Err()
}
