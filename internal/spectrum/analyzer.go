package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	Sensitivity = 0.8
	Compression = 0.7
	Smoothing   = 0.7
	DecayFactor = 0.9
	FloorLevel  = 0.05
	CeilLevel   = 0.95
	InitLevel   = 0.1
)

// Frame is the current level of every bar, each in [FloorLevel, CeilLevel].
type Frame []float64

// Analyzer keeps the smoothed frame between ticks. It is not safe for
// concurrent use; the UI tick owns it.
type Analyzer struct {
	bars    Frame
	window  []float64
	input   []float64
	raw     []float64
	hasBins []bool
	bandMap BandMap
}

func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		bars:    make(Frame, NumBars),
		window:  hannWindow(FFTSize),
		input:   make([]float64, FFTSize),
		raw:     make([]float64, NumBars),
		hasBins: make([]bool, NumBars),
	}
	for i := range a.bars {
		a.bars[i] = InitLevel
	}
	return a
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// Frame returns a copy of the current bar levels.
func (a *Analyzer) Frame() Frame {
	out := make(Frame, len(a.bars))
	copy(out, a.bars)
	return out
}

// Update analyzes the most recent FFTSize samples. It returns false and leaves
// the frame untouched when fewer samples are available.
func (a *Analyzer) Update(samples []float64, sampleRate int) bool {
	if len(samples) < FFTSize {
		return false
	}
	samples = samples[len(samples)-FFTSize:]

	if a.bandMap.SampleRate != sampleRate || len(a.bandMap.Bands) == 0 {
		a.bandMap = NewBandMap(sampleRate, FFTSize, NumBars)
	}

	for i, s := range samples {
		a.input[i] = s * a.window[i]
	}
	spectrum := fft.FFTReal(a.input)

	maxMagnitude := 0.0
	for i, band := range a.bandMap.Bands {
		a.hasBins[i] = band.Bins() > 0
		if !a.hasBins[i] {
			continue
		}
		sum := 0.0
		for bin := band.StartBin; bin < band.EndBin; bin++ {
			sum += cmplx.Abs(spectrum[bin])
		}
		a.raw[i] = sum / float64(band.Bins())
		maxMagnitude = max(maxMagnitude, a.raw[i])
	}

	for i := range a.bars {
		if !a.hasBins[i] {
			continue
		}
		level := a.raw[i]
		if maxMagnitude > 0 {
			level /= maxMagnitude
		}
		level = shape(level)
		a.bars[i] = clamp(a.bars[i]*Smoothing+level*(1-Smoothing), FloorLevel, CeilLevel)
	}
	return true
}

// shape applies sensitivity and dynamic-range compression to a normalized magnitude.
func shape(level float64) float64 {
	return clamp(math.Pow(level*Sensitivity, Compression), 0, 1)
}

// Decay eases every bar toward the floor while nothing is playing.
func (a *Analyzer) Decay() {
	for i := range a.bars {
		a.bars[i] = max(a.bars[i]*DecayFactor, FloorLevel)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
