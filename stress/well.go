package stress

import (
	"fmt"
	"time"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/series"
)

// Well sums the drawdown of one or more pumping wells sharing a single
// parameter set; each well gets its own kernel instance carrying the
// distance to the observation point.
type Well struct {
	Nm      string
	Kernels []rfunc.RFunc // one per well, distance baked in
	Wells   []*series.Series
}

func NewWell(name string, kernels []rfunc.RFunc, wells []*series.Series) (*Well, error) {
	if len(kernels) != len(wells) {
		return nil, fmt.Errorf("stress.NewWell: %d kernels for %d wells", len(kernels), len(wells))
	}
	if len(wells) == 0 {
		return nil, fmt.Errorf("stress.NewWell: no wells")
	}
	return &Well{Nm: name, Kernels: kernels, Wells: wells}, nil
}

func (sm *Well) Name() string { return sm.Nm }

func (sm *Well) Npar() int { return sm.Kernels[0].Npar() }

func (sm *Well) Defaults() []rfunc.Def { return sm.Kernels[0].Defaults(sm.Nm) }

func (sm *Well) Resp() rfunc.RFunc { return sm.Kernels[0] }

func (sm *Well) Span() (time.Time, time.Time) {
	tmin, tmax := sm.Wells[0].Tmin(), sm.Wells[0].Tmax()
	for _, w := range sm.Wells[1:] {
		if w.Tmin().After(tmin) {
			tmin = w.Tmin()
		}
		if w.Tmax().Before(tmax) {
			tmax = w.Tmax()
		}
	}
	return tmin, tmax
}

func (sm *Well) Simulate(p []float64, t []time.Time, dt float64) []float64 {
	out := make([]float64, len(t))
	for i, w := range sm.Wells {
		s := w.Regular(t[0], t[len(t)-1])
		b := sm.Kernels[i].Block(p, dt)
		c := fftconvolve(s.V, b)
		for j := range out {
			out[j] -= c[j] // pumping draws the head down
		}
	}
	return out
}

// Step applies a response from a fixed point in time; the amplitude
// (and shape, for kernels other than One) is calibrated.
type Step struct {
	Nm string
	T0 time.Time
	RF rfunc.RFunc
}

func NewStep(name string, t0 time.Time, rf rfunc.RFunc) *Step {
	if rf == nil {
		rf = &rfunc.One{}
	}
	return &Step{Nm: name, T0: t0, RF: rf}
}

func (sm *Step) Name() string { return sm.Nm }

func (sm *Step) Npar() int { return sm.RF.Npar() }

func (sm *Step) Defaults() []rfunc.Def { return sm.RF.Defaults(sm.Nm) }

func (sm *Step) Resp() rfunc.RFunc { return sm.RF }

func (*Step) Span() (time.Time, time.Time) { return time.Time{}, time.Time{} }

func (sm *Step) Simulate(p []float64, t []time.Time, dt float64) []float64 {
	s := sm.RF.Step(p, dt)
	out := make([]float64, len(t))
	for i, tt := range t {
		if tt.Before(sm.T0) {
			continue
		}
		j := int(tt.Sub(sm.T0).Hours() / 24. / dt)
		if j >= len(s) {
			j = len(s) - 1
		}
		out[i] = s[j]
	}
	return out
}
