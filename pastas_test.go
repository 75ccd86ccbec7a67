package pastas

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/series"
	"github.com/clau1313/pastas/stress"
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

func synthObs(t *testing.T, n int) *series.Series {
	tt := days(day(2000, 1, 1), n)
	v := make([]float64, n)
	for i := range v {
		v[i] = 5. + .3*math.Sin(float64(i)/8.)
	}
	s, err := series.New("obswell", series.KindHead, tt, v)
	require.NoError(t, err)
	return s
}

func rechargeModel(t *testing.T, n int) *Model {
	tt := days(day(2000, 1, 1), n)
	pv, ev := make([]float64, n), make([]float64, n)
	for i := range pv {
		pv[i] = .002 * float64(i%5)
		ev[i] = .001
	}
	p, err := series.New("prec", series.KindPrec, tt, pv)
	require.NoError(t, err)
	e, err := series.New("evap", series.KindEvap, tt, ev)
	require.NoError(t, err)

	m := New(synthObs(t, n))
	rch, err := stress.NewRecharge("recharge", &rfunc.Gamma{}, stress.Linear{}, p, e)
	require.NoError(t, err)
	require.NoError(t, m.AddStress(rch))
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := New(synthObs(t, 30))
	require.Len(t, m.Params, 2)
	assert.Equal(t, "constant_d", m.Params[0].Name)
	assert.Equal(t, "noise_alpha", m.Params[1].Name)
	assert.InDelta(t, m.Obs.Mean(), m.Params[0].Initial, 1e-12)
	assert.True(t, m.Settings.Noise)
	assert.Equal(t, 3650, m.Settings.Warmup)
}

func TestParamOrderFollowsAddOrder(t *testing.T) {
	m := rechargeModel(t, 30)
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	assert.Equal(t, []string{
		"recharge_A", "recharge_n", "recharge_a", "recharge_f",
		"constant_d", "noise_alpha",
	}, names)
}

func TestAddStressRejectsDuplicateName(t *testing.T) {
	m := rechargeModel(t, 30)
	err := m.AddStress(stress.NewStep("recharge", day(2000, 1, 5), nil))
	assert.Error(t, err)
}

func TestDelStressAndNoise(t *testing.T) {
	m := rechargeModel(t, 30)
	require.NoError(t, m.DelStress("recharge"))
	assert.Error(t, m.DelStress("recharge"))
	m.DelNoise()
	require.Len(t, m.Params, 1)
	assert.Equal(t, "constant_d", m.Params[0].Name)
	assert.False(t, m.Settings.Noise)
}

func TestParamSetters(t *testing.T) {
	m := New(synthObs(t, 30))
	require.NoError(t, m.SetInitial("constant_d", 4.2))
	require.NoError(t, m.SetVary("noise_alpha", false))
	require.NoError(t, m.SetPmin("constant_d", 0.))
	require.NoError(t, m.SetPmax("constant_d", 10.))
	assert.Equal(t, 4.2, m.Params[0].Initial)
	assert.False(t, m.Params[1].Vary)
	assert.Equal(t, 1, m.nvary())
	assert.Error(t, m.SetInitial("nope", 1.))
}

func TestSimulateConstantOnly(t *testing.T) {
	m := New(synthObs(t, 20))
	sim := m.Simulate(nil, time.Time{}, time.Time{})
	require.Equal(t, 20, sim.Len())
	assert.Equal(t, day(2000, 1, 1), sim.T[0]) // warmup trimmed
	for _, v := range sim.V {
		assert.InDelta(t, m.Obs.Mean(), v, 1e-12)
	}
}

func TestResidualsZeroAtPerfectFit(t *testing.T) {
	obs := synthObs(t, 20)
	m := New(obs)
	// force a flat observed series by subtracting the signal
	for i := range m.Obs.V {
		m.Obs.V[i] = 7.
	}
	p := []float64{7., 14.} // constant_d, noise_alpha
	res := m.Residuals(p, time.Time{}, time.Time{})
	for _, v := range res.V {
		assert.InDelta(t, 0., v, 1e-12)
	}
}

func TestNoiseModelInnovations(t *testing.T) {
	tt := []time.Time{day(2000, 1, 1), day(2000, 1, 2), day(2000, 1, 5)}
	res := &series.Series{Name: "residuals", T: tt, V: []float64{.1, .2, -.1}}

	nm := NewNoiseModel()
	v := nm.Simulate(res, []float64{14.})
	require.Equal(t, 3, v.Len())
	assert.Equal(t, .1, v.V[0])
	assert.InDelta(t, .2-.1*math.Exp(-1./14.), v.V[1], 1e-12)
	assert.InDelta(t, -.1-.2*math.Exp(-3./14.), v.V[2], 1e-12)
}

func TestFitStats(t *testing.T) {
	m := New(synthObs(t, 40))

	obs := m.Obs.V
	sim := m.Simulate(nil, time.Time{}, time.Time{}).Interp(m.Obs.T)
	ssr := 0.
	for i := range obs {
		d := obs[i] - sim[i]
		ssr += d * d
	}
	assert.InDelta(t, math.Sqrt(ssr/float64(len(obs))), m.RMSE(), 1e-9)

	// flat simulation explains none of the observed variance
	assert.InDelta(t, 0., m.EVP(), 1e-6)

	inn := m.Innovations(nil, time.Time{}, time.Time{}).V
	n, k := float64(len(inn)), float64(m.nvary())
	assert.InDelta(t, n*math.Log(sse(inn)/n)+2.*k, m.AIC(), 1e-9)
	assert.InDelta(t, n*math.Log(sse(inn)/n)+k*math.Log(n), m.BIC(), 1e-9)
}

func TestCheckParamBounds(t *testing.T) {
	m := New(synthObs(t, 30))
	m.Params[0].Optimal = m.Params[0].Pmin + 1e-9
	m.Params[1].Optimal = m.Params[1].Pmax
	atmin, atmax := m.CheckParamBounds(.01)
	assert.Equal(t, []string{"constant_d"}, atmin)
	assert.Equal(t, []string{"noise_alpha"}, atmax)
}

func TestSolveSingleParameter(t *testing.T) {
	tt := days(day(2000, 1, 1), 60)
	v := make([]float64, 60)
	for i := range v {
		v[i] = 5.
	}
	obs, err := series.New("flat", series.KindHead, tt, v)
	require.NoError(t, err)

	m := New(obs)
	m.DelNoise()
	require.Equal(t, 1, m.nvary())

	require.NoError(t, m.Solve(time.Time{}, time.Time{}, false))
	require.NotNil(t, m.Fit)
	assert.Equal(t, "Fibonacci", m.Fit.Solver)
	assert.Equal(t, 60, m.Fit.Nobs)
	assert.InDelta(t, 5., m.Params[0].Optimal, .01)
	assert.Less(t, m.Fit.Obj, 1e-2)

	rpt := m.FitReport()
	assert.Contains(t, rpt, "Fibonacci")
	assert.Contains(t, rpt, "constant_d")
}

func TestSolveRejectsEmptyWindow(t *testing.T) {
	m := New(synthObs(t, 30)) // observations span Jan 2000

	err := m.Solve(day(2010, 1, 1), time.Time{}, false)
	assert.Error(t, err) // tmin beyond the observations
	assert.Nil(t, m.Fit)

	err = m.Solve(day(2000, 1, 10), day(2000, 1, 5), false)
	assert.Error(t, err) // inverted window

	m.Settings.Tmin = day(2010, 1, 1)
	_, _, err = m.GenerateSamples(4, 1, t.TempDir()+"/")
	assert.Error(t, err)
}

func TestNoiseModelEmptyResiduals(t *testing.T) {
	res := &series.Series{Name: "residuals"}
	v := NewNoiseModel().Simulate(res, []float64{14.})
	assert.Equal(t, 0, v.Len())
}

func TestSolveRejectsUnboundedFreeParam(t *testing.T) {
	m := New(synthObs(t, 30))
	require.NoError(t, m.SetPmax("constant_d", math.Inf(1)))
	assert.Error(t, m.Solve(time.Time{}, time.Time{}, false))
}

func TestGobRoundTrip(t *testing.T) {
	m := rechargeModel(t, 30)
	require.NoError(t, m.SetInitial("recharge_a", 42.))

	fp := t.TempDir() + "/model.gob"
	require.NoError(t, m.SaveGob(fp))

	m2, err := LoadGobModel(fp)
	require.NoError(t, err)
	assert.Equal(t, m.Name, m2.Name)
	require.Len(t, m2.Stresses, 1)
	assert.Equal(t, "recharge", m2.Stresses[0].Name())
	require.Len(t, m2.Params, len(m.Params))
	assert.Equal(t, 42., m2.Params[2].Initial)

	s1 := m.Simulate(nil, time.Time{}, time.Time{})
	s2 := m2.Simulate(nil, time.Time{}, time.Time{})
	require.Equal(t, s1.Len(), s2.Len())
	for i := range s1.V {
		assert.InDelta(t, s1.V[i], s2.V[i], 1e-12)
	}
}

func TestGenerateSamples(t *testing.T) {
	tt := days(day(2000, 1, 1), 40)
	v := make([]float64, 40)
	for i := range v {
		v[i] = 5.
	}
	obs, err := series.New("flat", series.KindHead, tt, v)
	require.NoError(t, err)
	m := New(obs)
	m.DelNoise()

	dir := t.TempDir() + "/"
	p, obj, err := m.GenerateSamples(8, 2, dir)
	require.NoError(t, err)
	require.Len(t, p, len(m.Params))
	assert.GreaterOrEqual(t, obj, 0.)
	_, err = os.Stat(dir + "samplespace.csv")
	assert.NoError(t, err)
}
