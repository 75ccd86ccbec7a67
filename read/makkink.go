package read

import (
	"time"

	"github.com/clau1313/pastas/series"
	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/solirrad"
)

// Prescott/Makkink coefficients calibrated against southern-Ontario
// pan evaporation.
const (
	prescottA = .37503
	prescottB = .68627
	wetDay    = .0008 // [m] daily precip above which skies are assumed overcast
	nNwet     = .2732 // sunshine-hour ratio on wet days
	mkAlpha   = .6783
	mkBeta    = -.00097315
)

// Makkink estimates daily evaporation where none was measured, from
// daily temperature extremes, precipitation and latitude: clear-sky
// potential insolation scaled by a Prescott-type transmittance, then
// the Makkink radiation formula.
func Makkink(dts []time.Time, tx, tn, prcp []float64, lat float64) (*series.Series, error) {
	si := solirrad.New(lat, 0., 0.)
	v := make([]float64, len(dts))
	for i, dt := range dts {
		nN := 1.
		if prcp[i] > wetDay {
			nN = nNwet
		}
		tm := (tx[i] + tn[i]) / 2.
		Kg := si.PSIdaily(dt.YearDay()) * (prescottA + prescottB*nN)
		v[i] = pet.Makkink(Kg, tm, 101300., mkAlpha, mkBeta)
	}
	return series.New("makkink", series.KindEvap, dts, v)
}
