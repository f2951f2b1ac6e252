package spectrum

import (
	"fmt"
	"testing"
)

func TestBandEdgesStrictlyIncreasing(t *testing.T) {
	m := NewBandMap(44100, FFTSize, NumBars)

	if len(m.Bands) != NumBars {
		t.Fatalf("len(Bands) = %d, want %d", len(m.Bands), NumBars)
	}
	for i, b := range m.Bands {
		if b.StartHz >= b.EndHz {
			t.Errorf("band %d: start %.2f >= end %.2f", i, b.StartHz, b.EndHz)
		}
		if i > 0 && m.Bands[i-1].StartHz >= b.StartHz {
			t.Errorf("band %d start %.2f not above band %d start %.2f", i, b.StartHz, i-1, m.Bands[i-1].StartHz)
		}
		if i > 0 && m.Bands[i-1].EndBin != b.StartBin {
			t.Errorf("band %d starts at bin %d, previous band ends at %d", i, b.StartBin, m.Bands[i-1].EndBin)
		}
	}

	if first := m.Bands[0].StartHz; first != MinFreq {
		t.Errorf("first edge = %v, want %v", first, MinFreq)
	}
	if last := m.Bands[NumBars-1].EndHz; last != MaxFreq {
		t.Errorf("last edge = %v, want %v", last, MaxFreq)
	}
}

func TestBandBinsClampedToNyquist(t *testing.T) {
	tests := []struct {
		sampleRate int
	}{
		{0},
		{8000},
		{22050},
		{44100},
		{48000},
		{96000},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("rate_%d", tt.sampleRate), func(t *testing.T) {
			m := NewBandMap(tt.sampleRate, FFTSize, NumBars)
			for i, b := range m.Bands {
				if b.StartBin < 0 || b.EndBin > FFTSize/2 {
					t.Errorf("band %d bins [%d, %d) outside [0, %d]", i, b.StartBin, b.EndBin, FFTSize/2)
				}
			}
		})
	}
}

func TestZeroSampleRateHasNoBins(t *testing.T) {
	m := NewBandMap(0, FFTSize, NumBars)
	for i, b := range m.Bands {
		if b.Bins() != 0 {
			t.Errorf("band %d has %d bins, want 0", i, b.Bins())
		}
	}
}

func TestBandFor(t *testing.T) {
	m := NewBandMap(44100, FFTSize, NumBars)

	tests := []struct {
		freq float64
		want int
	}{
		{59, -1},
		{60, 0},
		{1000, 16},
		{15999, NumBars - 1},
		{16000, NumBars - 1},
		{16001, -1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.0fHz", tt.freq), func(t *testing.T) {
			if got := m.BandFor(tt.freq); got != tt.want {
				t.Errorf("BandFor(%v) = %d, want %d", tt.freq, got, tt.want)
			}
		})
	}
}

func TestBinCentresLieInTheirBand(t *testing.T) {
	for _, rate := range []int{22050, 44100, 48000} {
		t.Run(fmt.Sprintf("rate_%d", rate), func(t *testing.T) {
			m := NewBandMap(rate, FFTSize, NumBars)
			freqPerBin := float64(rate) / FFTSize
			for i, b := range m.Bands {
				for bin := b.StartBin; bin < b.EndBin; bin++ {
					centre := float64(bin) * freqPerBin
					if got := m.BandFor(centre); got != i {
						t.Errorf("bin %d (%.1f Hz) is in band %d, BandFor = %d", bin, centre, i, got)
					}
				}
			}
		})
	}
}
