package pastas

import (
	"math"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/series"
)

// NoiseModel filters the residual series into innovations assuming the
// residuals decay exponentially between observations (von Asmuth &
// Bierkens, 2005):
//
//	v(t1) = r(t1) - r(t0) exp(-(t1-t0)/alpha)
type NoiseModel struct {
	Nm string
}

func NewNoiseModel() *NoiseModel { return &NoiseModel{Nm: "noise"} }

func (n *NoiseModel) Name() string { return n.Nm }

func (*NoiseModel) Npar() int { return 1 }

func (n *NoiseModel) Defaults() []rfunc.Def {
	return []rfunc.Def{{Name: n.Nm + "_alpha", Initial: 14., Min: .01, Max: 5000.}}
}

// Simulate computes the innovation series from residuals res for noise
// parameters p (p[0] = alpha, in days).
func (n *NoiseModel) Simulate(res *series.Series, p []float64) *series.Series {
	if len(res.V) == 0 {
		return &series.Series{Name: "innovations"}
	}
	v := make([]float64, len(res.V))
	v[0] = res.V[0]
	for i := 1; i < len(res.V); i++ {
		dt := res.T[i].Sub(res.T[i-1]).Hours() / 24.
		v[i] = res.V[i] - res.V[i-1]*math.Exp(-dt/p[0])
	}
	return &series.Series{Name: "innovations", T: res.T, V: v}
}
