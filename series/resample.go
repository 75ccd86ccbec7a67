package series

import (
	"math"
	"sort"
	"time"
)

// Daily collapses sub-daily data onto daily timestamps: fluxes (prec,
// evap, well) are summed, state observations averaged.
func (s *Series) Daily() *Series {
	sum := s.Kind == KindPrec || s.Kind == KindEvap || s.Kind == KindWell
	acc, n := make(map[int64]float64, len(s.T)), make(map[int64]int, len(s.T))
	for i, t := range s.T {
		u := DayDate(t)
		acc[u] += s.V[i]
		n[u]++
	}
	us := make([]int64, 0, len(acc))
	for u := range acc {
		us = append(us, u)
	}
	sort.Slice(us, func(i, j int) bool { return us[i] < us[j] })
	t := make([]time.Time, len(us))
	v := make([]float64, len(us))
	for i, u := range us {
		t[i] = time.Unix(u, 0).UTC()
		if sum {
			v[i] = acc[u]
		} else {
			v[i] = acc[u] / float64(n[u])
		}
	}
	return &Series{Name: s.Name, Kind: s.Kind, T: t, V: v}
}

// Regular resamples the series onto a complete daily grid spanning
// [tmin, tmax]. Gaps are filled by kind: precipitation gaps are dry
// days (0.), evaporation gaps are linearly interpolated, anything else
// is left NaN. Observed heads are never regularized; they keep their
// original (possibly irregular) timestamps.
func (s *Series) Regular(tmin, tmax time.Time) *Series {
	d := s.Daily()
	vx := make(map[int64]float64, len(d.T))
	for i, t := range d.T {
		vx[DayDate(t)] = d.V[i]
	}

	u0, u1 := DayDate(tmin), DayDate(tmax)
	nt := int((u1-u0)/86400) + 1
	t := make([]time.Time, nt)
	v := make([]float64, nt)
	for i := 0; i < nt; i++ {
		u := u0 + int64(i)*86400
		t[i] = time.Unix(u, 0).UTC()
		if x, ok := vx[u]; ok {
			v[i] = x
		} else {
			v[i] = math.NaN()
		}
	}

	switch s.Kind {
	case KindPrec, KindWell:
		for i := range v {
			if math.IsNaN(v[i]) {
				v[i] = 0.
			}
		}
	case KindEvap:
		fillInterp(v)
	}
	return &Series{Name: s.Name, Kind: s.Kind, T: t, V: v}
}

// fillInterp replaces interior NaN runs by linear interpolation and
// boundary runs by the nearest valid value.
func fillInterp(v []float64) {
	i0 := -1
	for i := range v {
		if !math.IsNaN(v[i]) {
			i0 = i
			break
		}
	}
	if i0 < 0 {
		return
	}
	for i := 0; i < i0; i++ {
		v[i] = v[i0]
	}
	last := i0
	for i := i0 + 1; i < len(v); i++ {
		if math.IsNaN(v[i]) {
			continue
		}
		if i > last+1 {
			dv := (v[i] - v[last]) / float64(i-last)
			for j := last + 1; j < i; j++ {
				v[j] = v[last] + dv*float64(j-last)
			}
		}
		last = i
	}
	for i := last + 1; i < len(v); i++ {
		v[i] = v[last]
	}
}
