// Package stress holds the model components that translate explanatory
// time series into head contributions by convolution with a response
// function.
package stress

import (
	"time"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/series"
)

// StressModel is one named additive component of the head model.
type StressModel interface {
	Name() string
	Npar() int
	// Defaults returns the component's parameter table, names prefixed
	// with the component name.
	Defaults() []rfunc.Def
	// Simulate returns the head contribution on the (daily) simulation
	// index t for parameter slice p (length Npar).
	Simulate(p []float64, t []time.Time, dt float64) []float64
	// Span reports the period the component's stress data covers. Zero
	// times mean unbounded (constant, step).
	Span() (tmin, tmax time.Time)
}

// Single convolves one stress with one response function.
type Single struct {
	Nm     string
	RF     rfunc.RFunc
	Stress *series.Series
}

func NewSingle(name string, rf rfunc.RFunc, s *series.Series) *Single {
	return &Single{Nm: name, RF: rf, Stress: s}
}

func (sm *Single) Name() string { return sm.Nm }

func (sm *Single) Npar() int { return sm.RF.Npar() }

func (sm *Single) Defaults() []rfunc.Def { return sm.RF.Defaults(sm.Nm) }

func (sm *Single) Span() (time.Time, time.Time) { return sm.Stress.Tmin(), sm.Stress.Tmax() }

func (sm *Single) Resp() rfunc.RFunc { return sm.RF }

func (sm *Single) Simulate(p []float64, t []time.Time, dt float64) []float64 {
	s := sm.Stress.Regular(t[0], t[len(t)-1])
	b := sm.RF.Block(p, dt)
	return fftconvolve(s.V, b)
}

// Dual convolves two stresses sharing one response function; the
// second stress is scaled by an extra factor f appended to the
// response parameters (classically precipitation and evaporation with
// f near -1).
type Dual struct {
	Nm         string
	RF         rfunc.RFunc
	Up, Down   *series.Series
	FInit      float64
	FMin, FMax float64
}

func NewDual(name string, rf rfunc.RFunc, up, down *series.Series) (*Dual, error) {
	u, d, err := series.Intersect(up, down)
	if err != nil {
		return nil, err
	}
	return &Dual{Nm: name, RF: rf, Up: u, Down: d, FInit: -1., FMin: -2., FMax: 2.}, nil
}

func (sm *Dual) Name() string { return sm.Nm }

func (sm *Dual) Npar() int { return sm.RF.Npar() + 1 }

func (sm *Dual) Defaults() []rfunc.Def {
	return append(sm.RF.Defaults(sm.Nm), rfunc.Def{
		Name: sm.Nm + "_f", Initial: sm.FInit, Min: sm.FMin, Max: sm.FMax})
}

func (sm *Dual) Span() (time.Time, time.Time) { return sm.Up.Tmin(), sm.Up.Tmax() }

func (sm *Dual) Resp() rfunc.RFunc { return sm.RF }

func (sm *Dual) Simulate(p []float64, t []time.Time, dt float64) []float64 {
	f := p[len(p)-1]
	u := sm.Up.Regular(t[0], t[len(t)-1])
	d := sm.Down.Regular(t[0], t[len(t)-1])
	eff := make([]float64, len(u.V))
	for i := range eff {
		eff[i] = u.V[i] + f*d.V[i]
	}
	b := sm.RF.Block(p[:len(p)-1], dt)
	return fftconvolve(eff, b)
}

// Constant is the model baseline d.
type Constant struct {
	Nm         string
	Value      float64
	Pmin, Pmax float64
}

func NewConstant(value, pmin, pmax float64) *Constant {
	return &Constant{Nm: "constant", Value: value, Pmin: pmin, Pmax: pmax}
}

func (c *Constant) Name() string { return c.Nm }

func (*Constant) Npar() int { return 1 }

func (c *Constant) Defaults() []rfunc.Def {
	return []rfunc.Def{{Name: c.Nm + "_d", Initial: c.Value, Min: c.Pmin, Max: c.Pmax}}
}

func (*Constant) Span() (time.Time, time.Time) { return time.Time{}, time.Time{} }

func (c *Constant) Simulate(p []float64, t []time.Time, dt float64) []float64 {
	out := make([]float64, len(t))
	for i := range out {
		out[i] = p[0]
	}
	return out
}
