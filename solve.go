package pastas

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
	"gonum.org/v1/gonum/mat"
)

// FitResult holds the outcome of Solve.
type FitResult struct {
	Optimal []float64 // full parameter vector
	Stderr  []float64
	Obj     float64 // sum of squared innovations (residuals without noise model)
	Nfev    int64
	Nobs    int
	Solver  string
}

// Solve calibrates the free parameters over [tmin, tmax] (zero times
// use the full shared span) by shuffled-complex evolution on the unit
// hypercube; a single free parameter falls back to Fibonacci search.
// The objective is the sum of squared innovations when a noise model
// is attached, squared residuals otherwise. Standard errors come from
// a forward-difference Jacobian at the optimum.
func (m *Model) Solve(tmin, tmax time.Time, report bool) error {
	tmin, tmax = m.timespan(tmin, tmax)
	if err := m.checkspan(tmin, tmax); err != nil {
		return err
	}
	m.Settings.Tmin, m.Settings.Tmax = tmin, tmax
	m.Settings.Noise = m.Noise != nil

	var ifree []int
	for i, p := range m.Params {
		if p.Vary {
			if math.IsInf(p.Pmin, 0) || math.IsInf(p.Pmax, 0) || p.Pmax <= p.Pmin {
				return fmt.Errorf("parameter %s needs finite bounds (pmin < pmax) to vary", p.Name)
			}
			ifree = append(ifree, i)
		}
	}
	nf := len(ifree)
	if nf == 0 {
		return fmt.Errorf("model has no free parameters")
	}

	// map the optimizer's unit hypercube onto the parameter bounds;
	// wide positive ranges get a log scale
	xfm := make([]func(float64) float64, nf)
	for j, i := range ifree {
		pmin, pmax := m.Params[i].Pmin, m.Params[i].Pmax
		if pmin > 0. && pmax/pmin >= 100. {
			xfm[j] = func(u float64) float64 { return mmaths.LogLinearTransform(pmin, pmax, u) }
		} else {
			xfm[j] = func(u float64) float64 { return mmaths.LinearTransform(pmin, pmax, u) }
		}
	}

	assemble := func(u []float64) []float64 {
		p := make([]float64, len(m.Params))
		for i, par := range m.Params {
			p[i] = par.Initial
		}
		for j, i := range ifree {
			p[i] = xfm[j](u[j])
		}
		return p
	}

	rvec := func(p []float64) []float64 {
		if m.Noise != nil {
			return m.Innovations(p, tmin, tmax).V
		}
		return m.Residuals(p, tmin, tmax).V
	}

	var nfev int64
	obj := func(u []float64) float64 {
		atomic.AddInt64(&nfev, 1)
		ss := 0.
		for _, v := range rvec(assemble(u)) {
			ss += v * v
		}
		if math.IsNaN(ss) {
			return math.MaxFloat64
		}
		return ss
	}

	var uopt []float64
	solver := "SCE"
	if nf == 1 {
		u, _ := glbopt.Fibonacci(obj)
		uopt = []float64{u}
		solver = "Fibonacci"
	} else {
		rng := rand.New(mrg63k3a.New())
		rng.Seed(time.Now().UnixNano())
		uopt, _ = glbopt.SCE(runtime.GOMAXPROCS(0), nf, rng, obj, true)
	}

	popt := assemble(uopt)
	r0 := rvec(popt)
	ss := 0.
	for _, v := range r0 {
		ss += v * v
	}

	stderr := m.stderr(popt, r0, ss, ifree, rvec)

	for i := range m.Params {
		m.Params[i].Optimal = popt[i]
		m.Params[i].Stderr = 0.
		if !m.Params[i].Vary {
			m.Params[i].Optimal = m.Params[i].Initial
		}
	}
	for j, i := range ifree {
		m.Params[i].Stderr = stderr[j]
	}

	m.Settings.Solver = solver
	m.Fit = &FitResult{
		Optimal: popt,
		Stderr:  stderr,
		Obj:     ss,
		Nfev:    atomic.LoadInt64(&nfev),
		Nobs:    len(r0),
		Solver:  solver,
	}

	if report {
		fmt.Println(m.FitReport())
	}
	return nil
}

// stderr estimates parameter standard errors from the residual
// covariance s2 (JtJ)^-1 at the optimum. Parameters whose Jacobian
// column collapses (e.g. pinned at a bound) report NaN.
func (m *Model) stderr(popt, r0 []float64, ss float64, ifree []int, rvec func([]float64) []float64) []float64 {
	nf, nobs := len(ifree), len(r0)
	out := make([]float64, nf)
	if nobs <= nf {
		for j := range out {
			out[j] = math.NaN()
		}
		return out
	}

	jac := mat.NewDense(nobs, nf, nil)
	for j, i := range ifree {
		h := 1e-6 * math.Abs(popt[i])
		if h < 1e-8 {
			h = 1e-8
		}
		pp := make([]float64, len(popt))
		copy(pp, popt)
		pp[i] += h
		rj := rvec(pp)
		for k := 0; k < nobs; k++ {
			jac.Set(k, j, (rj[k]-r0[k])/h)
		}
	}

	var jtj, inv mat.Dense
	jtj.Mul(jac.T(), jac)
	if err := inv.Inverse(&jtj); err != nil {
		for j := range out {
			out[j] = math.NaN()
		}
		return out
	}
	s2 := ss / float64(nobs-nf)
	for j := range out {
		d := inv.At(j, j)
		if d < 0. {
			out[j] = math.NaN()
		} else {
			out[j] = math.Sqrt(s2 * d)
		}
	}
	return out
}
