package pastas

import (
	"fmt"
	"time"

	"github.com/clau1313/pastas/series"
)

// simIndex builds the daily simulation index from tmin-warmup to tmax.
func (m *Model) simIndex(tmin, tmax time.Time) []time.Time {
	u0 := series.DayDate(tmin) - int64(m.Settings.Warmup)*86400
	u1 := series.DayDate(tmax)
	nt := int((u1-u0)/86400) + 1
	t := make([]time.Time, nt)
	for i := 0; i < nt; i++ {
		t[i] = time.Unix(u0+int64(i)*86400, 0).UTC()
	}
	return t
}

// Simulate sums the component contributions on the warmup-extended
// daily index and returns the simulated head with the warmup trimmed.
// A nil p uses the optimal parameters when solved, initial otherwise.
func (m *Model) Simulate(p []float64, tmin, tmax time.Time) *series.Series {
	if p == nil {
		p = m.parvals()
	}
	tmin, tmax = m.timespan(tmin, tmax)
	t := m.simIndex(tmin, tmax)
	dt := m.Settings.Freq

	sim := make([]float64, len(t))
	i0 := 0
	for _, sm := range m.Stresses {
		c := sm.Simulate(p[i0:i0+sm.Npar()], t, dt)
		for i := range sim {
			sim[i] += c[i]
		}
		i0 += sm.Npar()
	}
	if m.Constant != nil {
		c := m.Constant.Simulate(p[i0:i0+1], t, dt)
		for i := range sim {
			sim[i] += c[i]
		}
	}

	// trim warmup
	k := 0
	for k < len(t) && t[k].Before(tmin) {
		k++
	}
	return &series.Series{Name: "simulation", Kind: series.KindHead, T: t[k:], V: sim[k:]}
}

// Contribution simulates a single named stress model over the model
// window (warmup trimmed).
func (m *Model) Contribution(name string, tmin, tmax time.Time) (*series.Series, error) {
	p := m.parvals()
	tmin, tmax = m.timespan(tmin, tmax)
	t := m.simIndex(tmin, tmax)

	i0 := 0
	for _, sm := range m.Stresses {
		if sm.Name() != name {
			i0 += sm.Npar()
			continue
		}
		c := sm.Simulate(p[i0:i0+sm.Npar()], t, m.Settings.Freq)
		k := 0
		for k < len(t) && t[k].Before(tmin) {
			k++
		}
		return &series.Series{Name: name, T: t[k:], V: c[k:]}, nil
	}
	return nil, fmt.Errorf("stressmodel %s is not present in the model", name)
}
