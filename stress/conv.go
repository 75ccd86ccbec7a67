package stress

import "gonum.org/v1/gonum/dsp/fourier"

// fftconvolve returns the linear convolution of s with kernel b,
// truncated to len(s). Mirrors a full-mode FFT convolution with the
// leading len(s) samples kept.
func fftconvolve(s, b []float64) []float64 {
	n := len(s) + len(b) - 1
	sp := make([]float64, n)
	bp := make([]float64, n)
	copy(sp, s)
	copy(bp, b)

	fft := fourier.NewFFT(n)
	sc := fft.Coefficients(nil, sp)
	bc := fft.Coefficients(nil, bp)
	for i := range sc {
		sc[i] *= bc[i]
	}
	out := fft.Sequence(nil, sc)
	fn := float64(n)
	for i := range out {
		out[i] /= fn
	}
	return out[:len(s)]
}
