package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func days(t0 time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t0.AddDate(0, 0, i)
	}
	return out
}

func TestNewValidation(t *testing.T) {
	t0 := day(2000, 1, 1)

	_, err := New("x", KindHead, days(t0, 3), []float64{1., 2.})
	assert.ErrorIs(t, err, ErrLenMismatch)

	_, err = New("x", KindHead, nil, nil)
	assert.ErrorIs(t, err, ErrEmpty)

	tt := days(t0, 3)
	tt[2] = tt[1] // duplicate
	_, err = New("x", KindHead, tt, []float64{1., 2., 3.})
	assert.ErrorIs(t, err, ErrNotMonotonic)
}

func TestNewDropsNaNHeads(t *testing.T) {
	t0 := day(2000, 1, 1)
	s, err := New("x", KindHead, days(t0, 4), []float64{1., math.NaN(), 3., 4.})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{1., 3., 4.}, s.V)
	assert.Equal(t, day(2000, 1, 3), s.T[1])
}

func TestWindow(t *testing.T) {
	t0 := day(2000, 1, 1)
	s, err := New("x", KindHead, days(t0, 10), []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)

	w := s.Window(day(2000, 1, 3), day(2000, 1, 6))
	assert.Equal(t, 4, w.Len()) // bounds inclusive
	assert.Equal(t, 2., w.V[0])
	assert.Equal(t, 5., w.V[3])

	w = s.Window(time.Time{}, time.Time{})
	assert.Equal(t, 10, w.Len())
}

func TestSubAlignsOnSharedTimestamps(t *testing.T) {
	t0 := day(2000, 1, 1)
	a, err := New("a", KindHead, days(t0, 5), []float64{10, 11, 12, 13, 14})
	require.NoError(t, err)
	b, err := New("b", KindHead,
		[]time.Time{day(2000, 1, 2), day(2000, 1, 4), day(2000, 1, 9)},
		[]float64{1., 3., 9.})
	require.NoError(t, err)

	d, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []float64{10., 10.}, d.V)
	assert.Equal(t, day(2000, 1, 2), d.T[0])
	assert.Equal(t, day(2000, 1, 4), d.T[1])
}

func TestIntersect(t *testing.T) {
	t0 := day(2000, 1, 1)
	a, _ := New("a", KindPrec, days(t0, 5), []float64{0, 1, 2, 3, 4})
	b, _ := New("b", KindEvap, days(t0.AddDate(0, 0, 2), 5), []float64{2, 3, 4, 5, 6})

	a2, b2, err := Intersect(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, a2.Len())
	assert.Equal(t, 3, b2.Len())
	assert.Equal(t, a2.T[0], b2.T[0])
	assert.Equal(t, []float64{2, 3, 4}, a2.V)
	assert.Equal(t, []float64{2, 3, 4}, b2.V)
}

func TestDaily(t *testing.T) {
	t0 := day(2000, 1, 1)
	tt := []time.Time{
		t0.Add(6 * time.Hour), t0.Add(18 * time.Hour),
		t0.AddDate(0, 0, 1).Add(12 * time.Hour),
	}

	p, _ := New("p", KindPrec, tt, []float64{.001, .003, .002})
	pd := p.Daily()
	require.Equal(t, 2, pd.Len())
	assert.InDelta(t, .004, pd.V[0], 1e-12) // fluxes sum
	assert.InDelta(t, .002, pd.V[1], 1e-12)
	assert.Equal(t, day(2000, 1, 1), pd.T[0])

	h, _ := New("h", KindHead, tt, []float64{1., 3., 2.})
	hd := h.Daily()
	require.Equal(t, 2, hd.Len())
	assert.InDelta(t, 2., hd.V[0], 1e-12) // states average
}

func TestRegularFillByKind(t *testing.T) {
	tt := []time.Time{day(2000, 1, 1), day(2000, 1, 2), day(2000, 1, 5)}

	p, _ := New("p", KindPrec, tt, []float64{.002, .001, .003})
	pr := p.Regular(day(2000, 1, 1), day(2000, 1, 5))
	require.Equal(t, 5, pr.Len())
	assert.Equal(t, 0., pr.V[2]) // gaps are dry days
	assert.Equal(t, 0., pr.V[3])

	e, _ := New("e", KindEvap, tt, []float64{.001, .001, .004})
	er := e.Regular(day(2000, 1, 1), day(2000, 1, 5))
	require.Equal(t, 5, er.Len())
	assert.InDelta(t, .002, er.V[2], 1e-12) // gaps interpolated
	assert.InDelta(t, .003, er.V[3], 1e-12)

	h, _ := New("h", KindHead, tt, []float64{1., 1., 1.})
	hr := h.Regular(day(2000, 1, 1), day(2000, 1, 5))
	assert.True(t, math.IsNaN(hr.V[2])) // heads never filled
}

func TestRegularBoundaryFill(t *testing.T) {
	tt := []time.Time{day(2000, 1, 3), day(2000, 1, 4)}
	e, _ := New("e", KindEvap, tt, []float64{.002, .004})
	er := e.Regular(day(2000, 1, 1), day(2000, 1, 6))
	require.Equal(t, 6, er.Len())
	assert.Equal(t, .002, er.V[0]) // nearest valid value
	assert.Equal(t, .002, er.V[1])
	assert.Equal(t, .004, er.V[4])
	assert.Equal(t, .004, er.V[5])
}

func TestInterp(t *testing.T) {
	tt := []time.Time{day(2000, 1, 1), day(2000, 1, 3)}
	s, _ := New("s", KindHead, tt, []float64{1., 3.})

	v := s.Interp([]time.Time{
		day(1999, 12, 30),                   // before span
		day(2000, 1, 1),                     // on a sample
		day(2000, 1, 2),                     // midway
		day(2000, 1, 2).Add(12 * time.Hour), // three quarters
		day(2000, 1, 8),                     // after span
	})
	assert.Equal(t, 1., v[0])
	assert.Equal(t, 1., v[1])
	assert.InDelta(t, 2., v[2], 1e-12)
	assert.InDelta(t, 2.5, v[3], 1e-12)
	assert.Equal(t, 3., v[4])
}

func TestDayDate(t *testing.T) {
	a := time.Date(2000, 6, 15, 23, 59, 0, 0, time.UTC)
	b := time.Date(2000, 6, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, DayDate(a), DayDate(b))
	assert.NotEqual(t, DayDate(a), DayDate(a.Add(time.Minute)))
}
