package pastas

import (
	"time"

	"github.com/clau1313/pastas/series"
)

// Residuals returns observed minus simulated head over [tmin, tmax].
// Observations may sit between simulation timesteps; the simulation is
// linearly interpolated to the observation times.
func (m *Model) Residuals(p []float64, tmin, tmax time.Time) *series.Series {
	if p == nil {
		p = m.parvals()
	}
	tmin, tmax = m.timespan(tmin, tmax)
	sim := m.Simulate(p, tmin, tmax)
	obs := m.Obs.Window(tmin, tmax)

	simAtObs := sim.Interp(obs.T)
	res := make([]float64, len(obs.V))
	for i := range res {
		res[i] = obs.V[i] - simAtObs[i]
	}
	return &series.Series{Name: "residuals", T: obs.T, V: res}
}

// Innovations filters the residuals through the noise model. Returns
// the raw residuals when no noise model is attached.
func (m *Model) Innovations(p []float64, tmin, tmax time.Time) *series.Series {
	if p == nil {
		p = m.parvals()
	}
	res := m.Residuals(p, tmin, tmax)
	if m.Noise == nil {
		return res
	}
	return m.Noise.Simulate(res, p[len(p)-m.Noise.Npar():])
}
