// Package capture records the decoded sample stream for spectral analysis
// without altering what reaches the audio output.
package capture

import "sync"

// DefaultCapacity is the number of mono samples kept for analysis.
const DefaultCapacity = 8192

// Buffer is a bounded FIFO of the most recently played mono samples.
// It is shared between the audio goroutine (writer) and the UI tick (reader).
type Buffer struct {
	mu    sync.Mutex
	data  []float64
	head  int // index of the oldest sample
	count int
}

// NewBuffer creates a Buffer holding at most capacity samples.
// A non-positive capacity falls back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest one when the buffer is full.
func (b *Buffer) Push(sample float64) {
	b.mu.Lock()
	b.push(sample)
	b.mu.Unlock()
}

// PushFrames appends the mono mix of each stereo frame under a single lock.
func (b *Buffer) PushFrames(frames [][2]float64) {
	if len(frames) == 0 {
		return
	}
	b.mu.Lock()
	for i := range frames {
		b.push((frames[i][0] + frames[i][1]) / 2)
	}
	b.mu.Unlock()
}

func (b *Buffer) push(sample float64) {
	capacity := len(b.data)
	if b.count == capacity {
		b.data[b.head] = sample
		b.head = (b.head + 1) % capacity
		return
	}
	b.data[(b.head+b.count)%capacity] = sample
	b.count++
}

// Snapshot returns up to count of the most recent samples, oldest first.
// A short result means not enough audio has been captured since the last Clear.
func (b *Buffer) Snapshot(count int) []float64 {
	if count <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if count > b.count {
		count = b.count
	}
	out := make([]float64, count)
	capacity := len(b.data)
	start := (b.head + b.count - count) % capacity
	n := copy(out, b.data[start:min(start+count, capacity)])
	copy(out[n:], b.data[:count-n])
	return out
}

// Clear drops every captured sample.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.head = 0
	b.count = 0
	b.mu.Unlock()
}

// Len reports how many samples are currently held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap reports the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}
