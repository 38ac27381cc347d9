package recorder

import (
	"math"
	"math/cmplx"
)

// Decibel range mapped onto [0, 1], matching what browser analysers display.
const (
	minDecibels = -100.0
	maxDecibels = -30.0
)

// hann holds the window applied before the transform.
var hann = func() [LevelWindow]float64 {
	var w [LevelWindow]float64
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(LevelWindow-1)))
	}
	return w
}()

// twiddles[k*n % N] is e^(-2πi·kn/N).
var twiddles = func() [LevelWindow]complex128 {
	var t [LevelWindow]complex128
	for i := range t {
		t[i] = cmplx.Rect(1, -2*math.Pi*float64(i)/float64(LevelWindow))
	}
	return t
}()

// Level returns the loudness of the most recent LevelWindow samples in [0, 1]:
// the mean over frequency bins of each bin's magnitude on a decibel scale.
// Shorter inputs are zero padded at the front.
func Level(samples []int16) float64 {
	var frame [LevelWindow]float64
	if len(samples) > LevelWindow {
		samples = samples[len(samples)-LevelWindow:]
	}
	offset := LevelWindow - len(samples)
	for i, s := range samples {
		frame[offset+i] = float64(s) / 32768 * hann[offset+i]
	}

	const bins = LevelWindow / 2
	var sum float64
	for k := 0; k < bins; k++ {
		var x complex128
		for n := 0; n < LevelWindow; n++ {
			if frame[n] == 0 {
				continue
			}
			x += complex(frame[n], 0) * twiddles[(k*n)%LevelWindow]
		}
		sum += scaleDecibels(cmplx.Abs(x) / LevelWindow)
	}
	return sum / bins
}

func scaleDecibels(mag float64) float64 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := (db - minDecibels) / (maxDecibels - minDecibels)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
