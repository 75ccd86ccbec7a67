package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/clau1313/pastas"
	"github.com/clau1313/pastas/read"
	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/stress"
	"github.com/maseology/mmio"
)

// fits a head series to recharge (rainfall less evaporation) computed
// from a DINO well export and a KNMI climate export; control file keys:
//
//	obsfp:    <dino head csv>
//	metfp:    <knmi daily climate txt>
//	outprfx:  <output file prefix>
//	tmin:     <optional calibration start yyyy-mm-dd>
//	tmax:     <optional calibration end>
func main() {

	cfp := "pastas.ins"
	if len(os.Args) > 1 {
		cfp = os.Args[1]
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Print("complete!")

	ins := mmio.NewInstruct(cfp)
	obsfp := ins.Param["obsfp"][0]
	metfp := ins.Param["metfp"][0]
	outprfx := ins.Param["outprfx"][0]
	var tmin, tmax time.Time
	if v, ok := ins.Param["tmin"]; ok {
		tmin, _ = time.Parse("2006-01-02", v[0])
	}
	if v, ok := ins.Param["tmax"]; ok {
		tmax, _ = time.Parse("2006-01-02", v[0])
	}

	// read observations
	println("loading observations..")
	obs, err := read.Dino(obsfp)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// read climate data
	println("loading climate data..")
	rh, err := read.KNMI(metfp, "RH")
	if err != nil {
		log.Fatalf("%v", err)
	}
	ev24, err := read.KNMI(metfp, "EV24")
	if err != nil {
		log.Fatalf("%v", err)
	}

	// create the time series model with a recharge stress
	ml := pastas.New(obs)
	rch, err := stress.NewRecharge("recharge", &rfunc.Gamma{}, stress.Linear{}, rh, ev24)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := ml.AddStress(rch); err != nil {
		log.Fatalf("%v", err)
	}
	if err := ml.SetInitial("constant_d", obs.Min()); err != nil {
		log.Fatalf("%v", err)
	}
	tt.Lap("model build complete")

	// solve
	println("solving..")
	if err := ml.Solve(tmin, tmax, true); err != nil {
		log.Fatalf("%v", err)
	}
	tt.Lap("solve complete")

	// results
	ml.WritePlots(outprfx)
	if err := ml.SaveGob(outprfx + "model.gob"); err != nil {
		log.Fatalf("%v", err)
	}
}
