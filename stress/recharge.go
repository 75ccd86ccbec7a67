package stress

import (
	"time"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/series"
)

// RechargeFunc converts precipitation and evaporation arrays into a
// recharge flux before convolution.
type RechargeFunc interface {
	Npar() int
	Defaults(prefix string) []rfunc.Def
	Simulate(prec, evap, p []float64) []float64
}

// Linear computes R = P - f E.
type Linear struct{}

func (Linear) Npar() int { return 1 }

func (Linear) Defaults(prefix string) []rfunc.Def {
	return []rfunc.Def{{Name: prefix + "_f", Initial: 1., Min: 0., Max: 2.}}
}

func (Linear) Simulate(prec, evap, p []float64) []float64 {
	r := make([]float64, len(prec))
	for i := range r {
		r[i] = prec[i] - p[0]*evap[i]
	}
	return r
}

// Recharge runs precipitation and evaporation through a recharge
// function and convolves the result with one response function. The
// recharge parameters are appended after the response parameters.
type Recharge struct {
	Nm         string
	RF         rfunc.RFunc
	RC         RechargeFunc
	Prec, Evap *series.Series
}

func NewRecharge(name string, rf rfunc.RFunc, rc RechargeFunc, prec, evap *series.Series) (*Recharge, error) {
	pr, ev, err := series.Intersect(prec, evap)
	if err != nil {
		return nil, err
	}
	return &Recharge{Nm: name, RF: rf, RC: rc, Prec: pr, Evap: ev}, nil
}

func (sm *Recharge) Name() string { return sm.Nm }

func (sm *Recharge) Npar() int { return sm.RF.Npar() + sm.RC.Npar() }

func (sm *Recharge) Defaults() []rfunc.Def {
	return append(sm.RF.Defaults(sm.Nm), sm.RC.Defaults(sm.Nm)...)
}

func (sm *Recharge) Span() (time.Time, time.Time) { return sm.Prec.Tmin(), sm.Prec.Tmax() }

func (sm *Recharge) Resp() rfunc.RFunc { return sm.RF }

// Stress returns the recharge series itself for a given parameter set.
func (sm *Recharge) StressSeries(p []float64, t []time.Time) *series.Series {
	pr := sm.Prec.Regular(t[0], t[len(t)-1])
	ev := sm.Evap.Regular(t[0], t[len(t)-1])
	r := sm.RC.Simulate(pr.V, ev.V, p[sm.RF.Npar():])
	return &series.Series{Name: sm.Nm, Kind: series.KindPrec, T: pr.T, V: r}
}

func (sm *Recharge) Simulate(p []float64, t []time.Time, dt float64) []float64 {
	r := sm.StressSeries(p, t)
	b := sm.RF.Block(p[:sm.RF.Npar()], dt)
	return fftconvolve(r.V, b)
}
