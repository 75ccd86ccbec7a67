// Package pastas fits transfer-function noise models to groundwater
// head observations: an additive decomposition
//
//	head(t) = baseline + sum_i (response_i * stress_i)(t) + noise(t)
//
// where each stress (rainfall, evaporation, pumping, ..) is convolved
// with a parametric response function and the free parameters are
// calibrated against the observed head series.
package pastas

import (
	"fmt"
	"time"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/series"
	"github.com/clau1313/pastas/stress"
)

// Settings holds the simulation window and options used by the last
// initialization/solve.
type Settings struct {
	Tmin, Tmax time.Time
	Freq       float64 // timestep [d]
	Warmup     int     // [d]
	Noise      bool
	Solver     string
}

// Model is a transfer-function noise model of an observed head series.
type Model struct {
	Name     string
	Obs      *series.Series
	Stresses []stress.StressModel // in add order; parameter vector follows it
	Constant *stress.Constant
	Noise    *NoiseModel
	Settings Settings
	Params   []Parameter
	Fit      *FitResult
}

// New builds a model of the observed head series with the default
// constant (initial at the observed mean) and noise model attached.
func New(obs *series.Series) *Model {
	name := obs.Name
	if name == "" {
		name = "observations"
	}
	m := &Model{
		Name:     name,
		Obs:      obs,
		Settings: Settings{Freq: 1., Warmup: 3650, Noise: true},
		Noise:    NewNoiseModel(),
	}
	rng := obs.Max() - obs.Min()
	if rng <= 0. {
		rng = 1.
	}
	m.Constant = stress.NewConstant(obs.Mean(), obs.Min()-rng, obs.Max()+rng)
	m.rebuildParams()
	return m
}

// AddStress appends a stress model; component names must be unique.
func (m *Model) AddStress(sm stress.StressModel) error {
	for _, x := range m.Stresses {
		if x.Name() == sm.Name() {
			return fmt.Errorf("stressmodel %s already exists in this model", sm.Name())
		}
	}
	m.Stresses = append(m.Stresses, sm)
	m.rebuildParams()
	return nil
}

// DelStress removes a stress model by name.
func (m *Model) DelStress(name string) error {
	for i, x := range m.Stresses {
		if x.Name() == name {
			m.Stresses = append(m.Stresses[:i], m.Stresses[i+1:]...)
			m.rebuildParams()
			return nil
		}
	}
	return fmt.Errorf("stressmodel %s is not present in the model", name)
}

// DelConstant removes the baseline term.
func (m *Model) DelConstant() {
	m.Constant = nil
	m.rebuildParams()
}

// DelNoise removes the noise model; solving then minimizes raw
// residuals.
func (m *Model) DelNoise() {
	m.Noise = nil
	m.Settings.Noise = false
	m.rebuildParams()
}

// rebuildParams reassembles the parameter table from the component
// defaults: stresses in add order, then constant, then noise. Resets
// any earlier fit.
func (m *Model) rebuildParams() {
	var ps []Parameter
	for _, sm := range m.Stresses {
		ps = append(ps, fromDefs(sm.Defaults())...)
	}
	if m.Constant != nil {
		ps = append(ps, fromDefs(m.Constant.Defaults())...)
	}
	if m.Noise != nil {
		ps = append(ps, fromDefs(m.Noise.Defaults())...)
	}
	m.Params = ps
	m.Fit = nil
}

func fromDefs(defs []rfunc.Def) []Parameter {
	out := make([]Parameter, len(defs))
	for i, d := range defs {
		out[i] = Parameter{Name: d.Name, Initial: d.Initial, Pmin: d.Min, Pmax: d.Max, Vary: true}
	}
	return out
}

// timespan resolves the simulation window: user bounds clipped to the
// observations and to the availability of every bounded stress.
func (m *Model) timespan(tmin, tmax time.Time) (time.Time, time.Time) {
	t0, t1 := m.Obs.Tmin(), m.Obs.Tmax()
	for _, sm := range m.Stresses {
		s0, s1 := sm.Span()
		if !s0.IsZero() && s0.After(t0) {
			t0 = s0
		}
		if !s1.IsZero() && s1.Before(t1) {
			t1 = s1
		}
	}
	if !tmin.IsZero() && tmin.After(t0) {
		t0 = tmin
	}
	if !tmax.IsZero() && tmax.Before(t1) {
		t1 = tmax
	}
	return t0, t1
}

// checkspan rejects a resolved window that is inverted or holds no
// observations.
func (m *Model) checkspan(tmin, tmax time.Time) error {
	if tmin.After(tmax) {
		return fmt.Errorf("tmin %s falls after tmax %s",
			tmin.Format("2006-01-02"), tmax.Format("2006-01-02"))
	}
	if m.Obs.Window(tmin, tmax).Len() == 0 {
		return fmt.Errorf("no observations between %s and %s",
			tmin.Format("2006-01-02"), tmax.Format("2006-01-02"))
	}
	return nil
}
