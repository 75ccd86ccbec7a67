// Package read loads observation and stress series from the flat-file
// formats commonly holding them: DINO groundwater archives, KNMI
// climate exports, generic date-value csv and .met files.
package read

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clau1313/pastas/series"
	"github.com/maseology/mmio"
)

// Dino reads a DINO (Dutch groundwater archive) csv export of head
// observations: header row containing "Peildatum" and a stand column
// in cm relative to datum, converted here to m.
func Dino(fp string) (*series.Series, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf(" read.Dino %s: %v", fp, err)
	}

	cdate, cval := -1, -1
	var t []time.Time
	var v []float64
	for _, ln := range lns {
		flds := strings.Split(ln, ",")
		if cdate < 0 {
			for i, f := range flds {
				switch {
				case strings.Contains(f, "Peildatum"):
					cdate = i
				case strings.Contains(f, "Stand"):
					if cval < 0 {
						cval = i
					}
				}
			}
			continue
		}
		if cval < 0 || len(flds) <= cdate || len(flds) <= cval {
			continue
		}
		dt, err := time.Parse("02-01-2006", strings.TrimSpace(flds[cdate]))
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(flds[cval]), 64)
		if err != nil {
			continue
		}
		t = append(t, dt)
		v = append(v, x/100.) // [cm] to [m]
	}
	if cdate < 0 || cval < 0 {
		return nil, fmt.Errorf(" read.Dino %s: no Peildatum/Stand header found", fp)
	}
	return series.New(mmio.FileName(fp, false), series.KindHead, t, v)
}

// KNMI reads one variable (e.g. "RH" rainfall, "EV24" Makkink
// evaporation) from a KNMI daily climate export: '#'-commented, with a
// final comment line naming the columns (STN,YYYYMMDD,..). Values are
// in 0.1 mm; -1 codes <0.05 mm and is read as dry. Returned in m/d.
func KNMI(fp, variable string) (*series.Series, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf(" read.KNMI %s: %v", fp, err)
	}

	cdate, cval := -1, -1
	var t []time.Time
	var v []float64
	for _, ln := range lns {
		if strings.HasPrefix(ln, "#") {
			if strings.Contains(ln, "YYYYMMDD") {
				for i, f := range strings.Split(strings.TrimLeft(ln, "# "), ",") {
					switch strings.TrimSpace(f) {
					case "YYYYMMDD":
						cdate = i
					case variable:
						cval = i
					}
				}
			}
			continue
		}
		if cdate < 0 || cval < 0 {
			continue
		}
		flds := strings.Split(ln, ",")
		if len(flds) <= cdate || len(flds) <= cval {
			continue
		}
		dt, err := time.Parse("20060102", strings.TrimSpace(flds[cdate]))
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(flds[cval]), 64)
		if err != nil {
			continue
		}
		if x < 0. {
			x = 0. // -1: trace, <0.05 mm
		}
		t = append(t, dt)
		v = append(v, x/10000.) // [0.1 mm] to [m]
	}
	if cval < 0 {
		return nil, fmt.Errorf(" read.KNMI %s: variable %s not found", fp, variable)
	}
	kind := series.KindPrec
	if variable == "EV24" {
		kind = series.KindEvap
	}
	return series.New(variable, kind, t, v)
}

// CsvDateValue reads a generic date,value csv.
func CsvDateValue(fp, kind string) (*series.Series, error) {
	c, err := mmio.ReadCsvDateFloat(fp)
	if err != nil {
		return nil, fmt.Errorf(" read.CsvDateValue %s: %v", fp, err)
	}
	us := make([]int64, 0, len(c))
	for u := range c {
		us = append(us, u)
	}
	sort.Slice(us, func(i, j int) bool { return us[i] < us[j] })
	t := make([]time.Time, len(us))
	v := make([]float64, len(us))
	for i, u := range us {
		t[i] = time.Unix(u, 0).UTC()
		v[i] = c[u]
	}
	return series.New(mmio.FileName(fp, false), kind, t, v)
}
