// Package rfunc holds the parametric response functions convolved with
// model stresses. Each returns its step response sampled at dt, 2dt, ..
// up to the time the response has levelled off (set by Cutoff), and its
// block response (the step differenced, i.e. the impulse response of a
// unit block of stress).
package rfunc

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

const defaultCutoff = 0.99

// Def declares one parameter of a response function: its default
// initial value and feasible range.
type Def struct {
	Name     string
	Initial  float64
	Min, Max float64
}

// RFunc is a parametric response kernel.
type RFunc interface {
	Npar() int
	Defaults(prefix string) []Def
	Step(p []float64, dt float64) []float64
	Block(p []float64, dt float64) []float64
}

func block(step []float64) []float64 {
	b := make([]float64, len(step))
	b[0] = step[0]
	for i := 1; i < len(step); i++ {
		b[i] = step[i] - step[i-1]
	}
	return b
}

// Gamma is the three-parameter (A, n, a) gamma response:
//
//	step(t) = A P(n, t/a)
//
// with P the regularized lower incomplete gamma function.
type Gamma struct{ Cutoff float64 }

func (g *Gamma) cutoff() float64 {
	if g.Cutoff <= 0. || g.Cutoff >= 1. {
		return defaultCutoff
	}
	return g.Cutoff
}

func (*Gamma) Npar() int { return 3 }

func (*Gamma) Defaults(prefix string) []Def {
	return []Def{
		{prefix + "_A", 500., 0., 5000.},
		{prefix + "_n", 1., .01, 5.},
		{prefix + "_a", 100., 1., 5000.},
	}
}

func (g *Gamma) Step(p []float64, dt float64) []float64 {
	a, n, aa := p[0], p[1], p[2]
	tmax := mathext.GammaIncRegInv(n, g.cutoff()) * aa
	s := make([]float64, nstep(tmax, dt))
	for i := range s {
		s[i] = a * mathext.GammaIncReg(n, float64(i+1)*dt/aa)
	}
	return s
}

func (g *Gamma) Block(p []float64, dt float64) []float64 { return block(g.Step(p, dt)) }

// Exponential is the two-parameter (A, a) response:
//
//	step(t) = A (1 - exp(-t/a))
type Exponential struct{ Cutoff float64 }

func (e *Exponential) cutoff() float64 {
	if e.Cutoff <= 0. || e.Cutoff >= 1. {
		return defaultCutoff
	}
	return e.Cutoff
}

func (*Exponential) Npar() int { return 2 }

func (*Exponential) Defaults(prefix string) []Def {
	return []Def{
		{prefix + "_A", 500., 0., 5000.},
		{prefix + "_a", 100., 1., 5000.},
	}
}

func (e *Exponential) Step(p []float64, dt float64) []float64 {
	a, aa := p[0], p[1]
	tmax := -aa * math.Log(1.-e.cutoff())
	s := make([]float64, nstep(tmax, dt))
	for i := range s {
		s[i] = a * (1. - math.Exp(-float64(i+1)*dt/aa))
	}
	return s
}

func (e *Exponential) Block(p []float64, dt float64) []float64 { return block(e.Step(p, dt)) }

// One is the unit response used by the model constant.
type One struct{}

func (*One) Npar() int { return 1 }

func (*One) Defaults(prefix string) []Def {
	return []Def{{prefix + "_d", 0., math.Inf(-1), math.Inf(1)}}
}

func (*One) Step(p []float64, dt float64) []float64 { return []float64{p[0], p[0]} }

func (*One) Block(p []float64, dt float64) []float64 { return []float64{p[0], 0.} }

func nstep(tmax, dt float64) int {
	n := int(tmax / dt)
	if n < 2 {
		n = 2
	}
	return n
}
