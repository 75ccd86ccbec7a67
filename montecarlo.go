package pastas

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// GenerateSamples runs a Latin hypercube sample of the free-parameter
// space, evaluating the solve objective for each realization over
// nwrkrs concurrent workers. The sample space and objectives are
// written to <outdirprfx>samplespace.csv; the best parameter vector
// and its objective are returned.
func (m *Model) GenerateSamples(n, nwrkrs int, outdirprfx string) ([]float64, float64, error) {
	tmin, tmax := m.timespan(m.Settings.Tmin, m.Settings.Tmax)
	if err := m.checkspan(tmin, tmax); err != nil {
		return nil, 0., err
	}

	var ifree []int
	for i, p := range m.Params {
		if p.Vary {
			if math.IsInf(p.Pmin, 0) || math.IsInf(p.Pmax, 0) || p.Pmax <= p.Pmin {
				return nil, 0., fmt.Errorf("parameter %s needs finite bounds to sample", p.Name)
			}
			ifree = append(ifree, i)
		}
	}
	nf := len(ifree)
	if nf == 0 {
		return nil, 0., fmt.Errorf("model has no free parameters")
	}

	assemble := func(u []float64) []float64 {
		p := make([]float64, len(m.Params))
		for i, par := range m.Params {
			p[i] = par.Initial
		}
		for j, i := range ifree {
			p[i] = mmaths.LinearTransform(m.Params[i].Pmin, m.Params[i].Pmax, u[j])
		}
		return p
	}
	obj := func(p []float64) float64 {
		var v []float64
		if m.Noise != nil {
			v = m.Innovations(p, tmin, tmax).V
		} else {
			v = m.Residuals(p, tmin, tmax).V
		}
		ss := 0.
		for _, x := range v {
			ss += x * x
		}
		return ss
	}

	// build sampling plan
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, nf, false)

	uiprogress.Start()
	bar := uiprogress.AddBar(n).AppendCompleted().PrependElapsed()

	objs := make([]float64, n)
	jobs := make(chan int, nwrkrs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	wg.Add(nwrkrs)
	for w := 0; w < nwrkrs; w++ {
		go func() {
			defer wg.Done()
			for k := range jobs {
				ut := make([]float64, nf)
				for j := 0; j < nf; j++ {
					ut[j] = sp.U[j][k]
				}
				objs[k] = obj(assemble(ut))
				mu.Lock()
				bar.Incr()
				mu.Unlock()
			}
		}()
	}
	for k := 0; k < n; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	uiprogress.Stop()

	// save sample space
	lns, kbest := make([]string, n), 0
	for k := 0; k < n; k++ {
		lns[k] = fmt.Sprint(k)
		for j := 0; j < nf; j++ {
			lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
		}
		lns[k] += fmt.Sprintf(",%f", objs[k])
		if objs[k] < objs[kbest] {
			kbest = k
		}
	}
	mmio.WriteLines(outdirprfx+"samplespace.csv", lns)

	ub := make([]float64, nf)
	for j := 0; j < nf; j++ {
		ub[j] = sp.U[j][kbest]
	}
	return assemble(ub), objs[kbest], nil
}
