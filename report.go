package pastas

import (
	"fmt"
	"strings"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/stress"
	"github.com/maseology/mmio"
	"github.com/maseology/objfunc"
)

type responder interface{ Resp() rfunc.RFunc }

// FitReport renders the post-solve summary: model info, fit statistics
// and the parameter table.
func (m *Model) FitReport() string {
	if m.Fit == nil {
		return "model " + m.Name + " has not been solved"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nModel results: %s\n", m.Name)
	fmt.Fprintf(&b, "============================================================\n")
	fmt.Fprintf(&b, " nobs: %d  nfev: %d  solver: %s  noise: %v\n",
		m.Fit.Nobs, m.Fit.Nfev, m.Fit.Solver, m.Noise != nil)
	fmt.Fprintf(&b, " %v to %v, warmup %d d\n",
		m.Settings.Tmin.Format("2006-01-02"), m.Settings.Tmax.Format("2006-01-02"), m.Settings.Warmup)
	obs, sim, res, inn := m.calib()
	k := float64(m.nvary())
	fmt.Fprintf(&b, " EVP: %.2f  R²: %.3f  NSE: %.3f  KGE: %.3f  RMSE: %.4f  Bias: %.4f\n",
		evp(obs, res), rsq(obs, sim), objfunc.NSE(obs, sim), objfunc.KGE(obs, sim),
		objfunc.RMSE(obs, sim), objfunc.Bias(obs, sim))
	fmt.Fprintf(&b, " AIC: %.2f  BIC: %.2f\n", aic(inn, k), bic(inn, k))

	fmt.Fprintf(&b, "\nParameters (%d optimized)\n", m.nvary())
	fmt.Fprintf(&b, "%-16s %12s %12s %10s %6s\n", "name", "optimal", "stderr", "initial", "vary")
	for _, p := range m.Params {
		fmt.Fprintf(&b, "%-16s %12.4f ±%11.4f %10.2f %6v\n",
			p.Name, p.Optimal, p.Stderr, p.Initial, p.Vary)
	}

	if atmin, atmax := m.CheckParamBounds(.01); len(atmin)+len(atmax) > 0 {
		fmt.Fprintf(&b, "\nWarnings\n")
		for _, n := range atmin {
			fmt.Fprintf(&b, " %s at lower bound\n", n)
		}
		for _, n := range atmax {
			fmt.Fprintf(&b, " %s at upper bound\n", n)
		}
	}
	return b.String()
}

// BlockResponse returns the fitted block response of a named stress
// model, sampled at the model timestep.
func (m *Model) BlockResponse(name string) ([]float64, error) {
	sm, p, err := m.stressParams(name)
	if err != nil {
		return nil, err
	}
	r, ok := sm.(responder)
	if !ok {
		return nil, fmt.Errorf("stressmodel %s has no response function", name)
	}
	return r.Resp().Block(p[:r.Resp().Npar()], m.Settings.Freq), nil
}

// StepResponse returns the fitted step response of a named stress
// model.
func (m *Model) StepResponse(name string) ([]float64, error) {
	sm, p, err := m.stressParams(name)
	if err != nil {
		return nil, err
	}
	r, ok := sm.(responder)
	if !ok {
		return nil, fmt.Errorf("stressmodel %s has no response function", name)
	}
	return r.Resp().Step(p[:r.Resp().Npar()], m.Settings.Freq), nil
}

func (m *Model) stressParams(name string) (stress.StressModel, []float64, error) {
	p := m.parvals()
	i0 := 0
	for _, sm := range m.Stresses {
		if sm.Name() == name {
			return sm, p[i0 : i0+sm.Npar()], nil
		}
		i0 += sm.Npar()
	}
	return nil, nil, fmt.Errorf("stressmodel %s is not present in the model", name)
}

// WritePlots renders the standard result graphics and the simulated
// hydrograph csv with the given file prefix.
func (m *Model) WritePlots(outdirprfx string) {
	tmin, tmax := m.Settings.Tmin, m.Settings.Tmax
	obs := m.Obs.Window(m.timespan(tmin, tmax))
	sim := m.Simulate(nil, tmin, tmax)
	simAtObs := sim.Interp(obs.T)

	mmio.Temporal(outdirprfx+"hydrograph.png", sim.T,
		map[string][]float64{"simulated": sim.V}, 48.)
	mmio.ObsSim(outdirprfx+"obssim.png", obs.V, simAtObs)
	mmio.Scatter11(outdirprfx+"scatter.png", obs.V, simAtObs)
	mmio.WriteCsvDateFloats(outdirprfx+"hdgrph.csv", "date,obs,sim", obs.T, obs.V, simAtObs)

	if len(m.Stresses) > 0 {
		contrib := map[string][]float64{}
		var ct []float64
		for _, sm := range m.Stresses {
			c, err := m.Contribution(sm.Name(), tmin, tmax)
			if err != nil {
				continue
			}
			contrib[sm.Name()] = c.V
			if ct == nil {
				ct = make([]float64, len(c.T))
				for i := range c.T {
					ct[i] = float64(i)
				}
			}
		}
		mmio.Line(outdirprfx+"contributions.png", ct, contrib, 48.)
	}

	// fitted response curves
	for _, sm := range m.Stresses {
		b, err := m.BlockResponse(sm.Name())
		if err != nil {
			continue
		}
		s, _ := m.StepResponse(sm.Name())
		rt := make([]float64, len(b))
		for i := range rt {
			rt[i] = float64(i+1) * m.Settings.Freq
		}
		mmio.Line(outdirprfx+sm.Name()+".response.png", rt,
			map[string][]float64{"block": b, "step": s}, 24.)
	}
}
