package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// Kind tags determine default gap-filling when a series is regularized.
const (
	KindHead = "head"
	KindPrec = "prec"
	KindEvap = "evap"
	KindWell = "well"
)

var (
	ErrLenMismatch  = errors.New("series: timestamps and values have different lengths")
	ErrNotMonotonic = errors.New("series: timestamps not strictly increasing")
	ErrEmpty        = errors.New("series: no data")
)

// Series is an ordered set of (timestamp, value) pairs. Timestamps are
// strictly increasing; spacing may be irregular.
type Series struct {
	Name string
	Kind string
	T    []time.Time // [date ID]
	V    []float64
}

func New(name, kind string, t []time.Time, v []float64) (*Series, error) {
	if len(t) != len(v) {
		return nil, fmt.Errorf("%w: %d timestamps, %d values", ErrLenMismatch, len(t), len(v))
	}
	if len(t) == 0 {
		return nil, ErrEmpty
	}
	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("%w: at index %d (%v)", ErrNotMonotonic, i, t[i])
		}
	}
	s := &Series{Name: name, Kind: kind, T: t, V: v}
	if kind == KindHead || kind == KindWell {
		s = s.dropNaN()
	}
	if len(s.T) == 0 {
		return nil, ErrEmpty
	}
	return s, nil
}

func (s *Series) Len() int { return len(s.T) }

func (s *Series) Tmin() time.Time { return s.T[0] }

func (s *Series) Tmax() time.Time { return s.T[len(s.T)-1] }

func (s *Series) Copy() *Series {
	t := make([]time.Time, len(s.T))
	v := make([]float64, len(s.V))
	copy(t, s.T)
	copy(v, s.V)
	return &Series{Name: s.Name, Kind: s.Kind, T: t, V: v}
}

func (s *Series) dropNaN() *Series {
	t := make([]time.Time, 0, len(s.T))
	v := make([]float64, 0, len(s.V))
	for i, x := range s.V {
		if !math.IsNaN(x) {
			t = append(t, s.T[i])
			v = append(v, x)
		}
	}
	return &Series{Name: s.Name, Kind: s.Kind, T: t, V: v}
}

func (s *Series) Mean() float64 {
	x := 0.
	for _, v := range s.V {
		x += v
	}
	return x / float64(len(s.V))
}

func (s *Series) Min() float64 {
	x := math.Inf(1)
	for _, v := range s.V {
		if v < x {
			x = v
		}
	}
	return x
}

func (s *Series) Max() float64 {
	x := math.Inf(-1)
	for _, v := range s.V {
		if v > x {
			x = v
		}
	}
	return x
}

// Window returns the subset tmin <= t <= tmax. Zero bounds are open.
func (s *Series) Window(tmin, tmax time.Time) *Series {
	i0, i1 := 0, len(s.T)
	if !tmin.IsZero() {
		i0 = sort.Search(len(s.T), func(i int) bool { return !s.T[i].Before(tmin) })
	}
	if !tmax.IsZero() {
		i1 = sort.Search(len(s.T), func(i int) bool { return s.T[i].After(tmax) })
	}
	if i0 > i1 {
		i0 = i1
	}
	return &Series{Name: s.Name, Kind: s.Kind, T: s.T[i0:i1], V: s.V[i0:i1]}
}

// DayDate truncates a timestamp to its UTC date.
func DayDate(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// Sub subtracts o from s on their shared timestamps.
func (s *Series) Sub(o *Series) (*Series, error) {
	ox := make(map[int64]float64, len(o.T))
	for i, t := range o.T {
		ox[DayDate(t)] = o.V[i]
	}
	t := make([]time.Time, 0, len(s.T))
	v := make([]float64, 0, len(s.T))
	for i, tt := range s.T {
		if vo, ok := ox[DayDate(tt)]; ok {
			t = append(t, tt)
			v = append(v, s.V[i]-vo)
		}
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("series: %s and %s share no timestamps", s.Name, o.Name)
	}
	return &Series{Name: s.Name + "-" + o.Name, Kind: s.Kind, T: t, V: v}, nil
}

// Intersect trims both series to their shared timestamps, in place order.
func Intersect(a, b *Series) (*Series, *Series, error) {
	bx := make(map[int64]bool, len(b.T))
	for _, t := range b.T {
		bx[DayDate(t)] = true
	}
	a2, err := a.filter(bx)
	if err != nil {
		return nil, nil, err
	}
	ax := make(map[int64]bool, len(a.T))
	for _, t := range a.T {
		ax[DayDate(t)] = true
	}
	b2, err := b.filter(ax)
	if err != nil {
		return nil, nil, err
	}
	return a2, b2, nil
}

func (s *Series) filter(keep map[int64]bool) (*Series, error) {
	t := make([]time.Time, 0, len(s.T))
	v := make([]float64, 0, len(s.V))
	for i, tt := range s.T {
		if keep[DayDate(tt)] {
			t = append(t, tt)
			v = append(v, s.V[i])
		}
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("series: %s has no overlapping timestamps", s.Name)
	}
	return &Series{Name: s.Name, Kind: s.Kind, T: t, V: v}, nil
}

// Interp linearly interpolates the series at the given times. Times
// outside the series span take the boundary values.
func (s *Series) Interp(at []time.Time) []float64 {
	out := make([]float64, len(at))
	for i, t := range at {
		j := sort.Search(len(s.T), func(k int) bool { return !s.T[k].Before(t) })
		switch {
		case j == 0:
			out[i] = s.V[0]
		case j == len(s.T):
			out[i] = s.V[len(s.V)-1]
		case s.T[j].Equal(t):
			out[i] = s.V[j]
		default:
			f := t.Sub(s.T[j-1]).Seconds() / s.T[j].Sub(s.T[j-1]).Seconds()
			out[i] = s.V[j-1] + f*(s.V[j]-s.V[j-1])
		}
	}
	return out
}
