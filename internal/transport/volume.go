package transport

import (
	"math"

	"github.com/rs/zerolog/log"
)

const (
	VolumeStep    = 0.05
	MinVolume     = 0.0
	MaxVolume     = 1.0
	DefaultVolume = 0.5
)

// ClampVolume ensures volume is within [MinVolume, MaxVolume].
func ClampVolume(v float64) float64 {
	if v < MinVolume || math.IsNaN(v) {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}

// GainSetter receives the live output gain.
type GainSetter interface {
	SetVolume(v float64)
}

// Volume is the session's linear output level.
type Volume struct {
	level float64
	sink  GainSetter
}

func NewVolume(sink GainSetter, initial float64) *Volume {
	v := &Volume{sink: sink}
	v.Set(initial)
	return v
}

func (v *Volume) Level() float64 {
	return v.level
}

// Percent returns the level rounded to a whole percentage.
func (v *Volume) Percent() int {
	return int(v.level*100 + 0.5)
}

// Set clamps level and forwards it to the output.
func (v *Volume) Set(level float64) {
	v.level = ClampVolume(level)
	if v.sink != nil {
		v.sink.SetVolume(v.level)
	}
	log.Debug().Msgf("Volume set to %d%%", v.Percent())
}

func (v *Volume) Increase() {
	v.Set(v.level + VolumeStep)
}

func (v *Volume) Decrease() {
	v.Set(v.level - VolumeStep)
}
