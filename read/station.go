package read

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
	"github.com/maseology/mmio"
)

// Station is a measurement or pumping location. Easting/northing are
// derived from lat/lon on load so well distances can be computed.
type Station struct {
	ID          string
	Lat, Lon    float64
	East, North float64
	Zone        int
	Letter      string
}

// Stations reads a station metadata csv: id,lat,lon per line, '#' and
// header lines skipped.
func Stations(fp string) ([]Station, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf(" read.Stations %s: %v", fp, err)
	}
	var out []Station
	for _, ln := range lns {
		if strings.HasPrefix(ln, "#") {
			continue
		}
		flds := strings.Split(ln, ",")
		if len(flds) < 3 {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(flds[1]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(flds[2]), 64)
		if err1 != nil || err2 != nil {
			continue // header
		}
		e, n, zn, zl, err := UTM.FromLatLon(lat, lon, lat < 0.)
		if err != nil {
			return nil, fmt.Errorf(" read.Stations %s: %v", fp, err)
		}
		out = append(out, Station{
			ID: strings.TrimSpace(flds[0]), Lat: lat, Lon: lon,
			East: e, North: n, Zone: zn, Letter: zl,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf(" read.Stations %s: no stations parsed", fp)
	}
	return out, nil
}

// Distance is the planar distance [m] between two stations; they must
// project into the same UTM zone.
func Distance(a, b Station) (float64, error) {
	if a.Zone != b.Zone {
		return 0., fmt.Errorf("stations %s and %s fall in different UTM zones", a.ID, b.ID)
	}
	dx, dy := a.East-b.East, a.North-b.North
	return math.Sqrt(dx*dx + dy*dy), nil
}
