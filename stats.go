package pastas

import (
	"math"

	"github.com/clau1313/pastas/series"
	"github.com/maseology/objfunc"
	"gonum.org/v1/gonum/stat"
)

// Fit statistics over the calibration window. All use the optimal
// parameters when the model is solved, initial otherwise.

// calib simulates once and derives the observed, simulated, residual
// and innovation vectors from it.
func (m *Model) calib() (obs, sim, res, inn []float64) {
	tmin, tmax := m.timespan(m.Settings.Tmin, m.Settings.Tmax)
	o := m.Obs.Window(tmin, tmax)
	s := m.Simulate(nil, tmin, tmax).Interp(o.T)
	r := make([]float64, len(o.V))
	for i := range r {
		r[i] = o.V[i] - s[i]
	}
	v := r
	if m.Noise != nil {
		p := m.parvals()
		rs := &series.Series{Name: "residuals", T: o.T, V: r}
		v = m.Noise.Simulate(rs, p[len(p)-m.Noise.Npar():]).V
	}
	return o.V, s, r, v
}

func (m *Model) RMSE() float64 {
	obs, sim, _, _ := m.calib()
	return objfunc.RMSE(obs, sim)
}

func (m *Model) NSE() float64 {
	obs, sim, _, _ := m.calib()
	return objfunc.NSE(obs, sim)
}

func (m *Model) KGE() float64 {
	obs, sim, _, _ := m.calib()
	return objfunc.KGE(obs, sim)
}

func (m *Model) Bias() float64 {
	obs, sim, _, _ := m.calib()
	return objfunc.Bias(obs, sim)
}

// RSQ is the squared Pearson correlation of observed and simulated.
func (m *Model) RSQ() float64 {
	obs, sim, _, _ := m.calib()
	return rsq(obs, sim)
}

// EVP is the explained variance percentage,
// 100 (var(obs) - var(res)) / var(obs), clamped to [0, 100].
func (m *Model) EVP() float64 {
	obs, _, res, _ := m.calib()
	return evp(obs, res)
}

// AIC = n ln(SSE/n) + 2k over the innovation series (residuals when no
// noise model is attached); k counts the free parameters.
func (m *Model) AIC() float64 {
	_, _, _, inn := m.calib()
	return aic(inn, float64(m.nvary()))
}

// BIC = n ln(SSE/n) + k ln(n).
func (m *Model) BIC() float64 {
	_, _, _, inn := m.calib()
	return bic(inn, float64(m.nvary()))
}

func rsq(obs, sim []float64) float64 {
	r := stat.Correlation(obs, sim, nil)
	return r * r
}

func evp(obs, res []float64) float64 {
	vo := stat.Variance(obs, nil)
	if vo == 0. {
		return 0.
	}
	x := 100. * (vo - stat.Variance(res, nil)) / vo
	if x < 0. {
		return 0.
	}
	if x > 100. {
		return 100.
	}
	return x
}

func aic(inn []float64, k float64) float64 {
	n := float64(len(inn))
	return n*math.Log(sse(inn)/n) + 2.*k
}

func bic(inn []float64, k float64) float64 {
	n := float64(len(inn))
	return n*math.Log(sse(inn)/n) + k*math.Log(n)
}

func sse(v []float64) float64 {
	s := 0.
	for _, x := range v {
		s += x * x
	}
	return s
}
