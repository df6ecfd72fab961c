package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Spectrum is a one-sided power spectrum. Freqs are in Hz.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum transforms series sampled every dt milliseconds. The mean is
// removed first so the DC bin does not dominate.
func PowerSpectrum(series []float64, dt float64) Spectrum {
	n := len(series)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	sampleRate := 1000 / dt
	spec := Spectrum{
		Freqs: make([]float64, len(coeffs)),
		Power: make([]float64, len(coeffs)),
	}
	for i, c := range coeffs {
		spec.Freqs[i] = fft.Freq(i) * sampleRate
		spec.Power[i] = cmplx.Abs(c) * cmplx.Abs(c)
	}
	return spec
}

// DominantFrequency returns the strongest non-DC frequency. ok is false when
// the series is flat or too short.
func DominantFrequency(series []float64, dt float64) (hz float64, ok bool) {
	spec := PowerSpectrum(series, dt)
	best := 0.0
	for i := 1; i < len(spec.Power); i++ {
		if spec.Power[i] > best {
			best = spec.Power[i]
			hz = spec.Freqs[i]
		}
	}
	return hz, best > 0
}
