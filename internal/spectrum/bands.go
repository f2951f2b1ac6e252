// Package spectrum turns a window of captured samples into smoothed,
// perceptually compressed frequency-band levels for the visualizer.
package spectrum

import "math"

const (
	// NumBars is the number of bands shown by the visualizer.
	NumBars = 32
	// FFTSize is the transform length; it is also the number of samples analyzed per tick.
	FFTSize = 2048
	// MinFreq and MaxFreq bound the logarithmic band layout, in Hz.
	MinFreq = 60.0
	MaxFreq = 16000.0
)

// Band is one bar's slice of the spectrum. Bins cover [StartBin, EndBin),
// the bins whose centre frequency lies in [StartHz, EndHz).
type Band struct {
	StartHz  float64
	EndHz    float64
	StartBin int
	EndBin   int
}

// Bins reports how many transform bins fall in the band.
func (b Band) Bins() int {
	if b.EndBin <= b.StartBin {
		return 0
	}
	return b.EndBin - b.StartBin
}

// Contains reports whether freq lies within the band's frequency range.
func (b Band) Contains(freq float64) bool {
	return freq >= b.StartHz && freq < b.EndHz
}

// BandMap is the static layout of bars for a given sample rate and transform size.
type BandMap struct {
	SampleRate int
	Size       int
	Bands      []Band
}

// BandEdge returns the frequency at position t in [0,1] along the log scale.
func BandEdge(t float64) float64 {
	return MinFreq * math.Pow(MaxFreq/MinFreq, t)
}

// NewBandMap lays out numBars logarithmically spaced bands ending exactly at
// MaxFreq. Bin indices are clamped to [0, size/2]; a zero sample rate yields
// bands with no bins.
func NewBandMap(sampleRate, size, numBars int) BandMap {
	m := BandMap{
		SampleRate: sampleRate,
		Size:       size,
		Bands:      make([]Band, numBars),
	}

	nyquistBin := size / 2
	freqPerBin := float64(sampleRate) / float64(size)

	for i := range m.Bands {
		start := BandEdge(float64(i) / float64(numBars))
		end := BandEdge(float64(i+1) / float64(numBars))
		if i == numBars-1 {
			end = MaxFreq
		}

		m.Bands[i] = Band{
			StartHz:  start,
			EndHz:    end,
			StartBin: freqToBin(start, freqPerBin, nyquistBin),
			EndBin:   freqToBin(end, freqPerBin, nyquistBin),
		}
	}
	return m
}

func freqToBin(freq, freqPerBin float64, maxBin int) int {
	if freqPerBin <= 0 {
		return maxBin
	}
	bin := freq / freqPerBin
	if bin >= float64(maxBin) {
		return maxBin
	}
	if bin < 0 {
		return 0
	}
	return int(math.Ceil(bin))
}

// BandFor returns the index of the band whose range contains freq, or -1.
// MaxFreq itself belongs to the top band.
func (m BandMap) BandFor(freq float64) int {
	for i, b := range m.Bands {
		if b.Contains(freq) {
			return i
		}
	}
	if n := len(m.Bands); n > 0 && freq == m.Bands[n-1].EndHz {
		return n - 1
	}
	return -1
}
