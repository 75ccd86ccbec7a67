package pastas

import (
	"fmt"
	"math"
)

// Parameter is one row of the model parameter table. Optimal and
// Stderr are filled by Solve.
type Parameter struct {
	Name       string
	Initial    float64
	Pmin, Pmax float64
	Vary       bool
	Optimal    float64
	Stderr     float64
}

func (m *Model) paramIndex(name string) (int, error) {
	for i, p := range m.Params {
		if p.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("parameter %s is not present in the model", name)
}

// SetInitial sets the starting estimate of a parameter.
func (m *Model) SetInitial(name string, value float64) error {
	i, err := m.paramIndex(name)
	if err != nil {
		return err
	}
	m.Params[i].Initial = value
	return nil
}

// SetVary frees (true) or fixes (false) a parameter during solving. A
// fixed parameter is held at its initial value.
func (m *Model) SetVary(name string, vary bool) error {
	i, err := m.paramIndex(name)
	if err != nil {
		return err
	}
	m.Params[i].Vary = vary
	return nil
}

func (m *Model) SetPmin(name string, value float64) error {
	i, err := m.paramIndex(name)
	if err != nil {
		return err
	}
	m.Params[i].Pmin = value
	return nil
}

func (m *Model) SetPmax(name string, value float64) error {
	i, err := m.paramIndex(name)
	if err != nil {
		return err
	}
	m.Params[i].Pmax = value
	return nil
}

// parvals returns the full parameter vector: optimal values when the
// model has been solved, initial values otherwise.
func (m *Model) parvals() []float64 {
	p := make([]float64, len(m.Params))
	for i, par := range m.Params {
		if m.Fit != nil {
			p[i] = par.Optimal
		} else {
			p[i] = par.Initial
		}
	}
	return p
}

func (m *Model) nvary() int {
	n := 0
	for _, p := range m.Params {
		if p.Vary {
			n++
		}
	}
	return n
}

// CheckParamBounds flags fitted parameters within alpha (as a fraction
// of the feasible range) of either bound.
func (m *Model) CheckParamBounds(alpha float64) (atmin, atmax []string) {
	for _, p := range m.Params {
		if !p.Vary || math.IsInf(p.Pmax-p.Pmin, 0) {
			continue
		}
		u := (p.Optimal - p.Pmin) / (p.Pmax - p.Pmin)
		if u < alpha {
			atmin = append(atmin, p.Name)
		} else if u > 1.-alpha {
			atmax = append(atmax, p.Name)
		}
	}
	return
}
