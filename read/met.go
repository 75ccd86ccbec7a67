package read

import (
	"fmt"

	"github.com/clau1313/pastas/series"
	"github.com/maseology/goHydro/met"
)

// Met reads one water-budget variable (e.g. "Rainfall", "Evaporation")
// from a .met file.
func Met(fp, variable, kind string) (*series.Series, error) {
	hdr, dat, err := met.ReadMET(fp, false)
	if err != nil {
		return nil, fmt.Errorf(" read.Met %s: %v", fp, err)
	}
	x := hdr.WBDCxr()
	i, ok := x[variable]
	if !ok {
		return nil, fmt.Errorf(" read.Met %s: variable %s not found", fp, variable)
	}
	t, v := dat.Get(i)
	return series.New(variable, kind, t, v)
}
