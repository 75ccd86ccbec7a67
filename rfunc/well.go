package rfunc

import "math"

// Hantush is the well function for a pumping well in a leaky aquifer
// (Hantush & Jacob, 1955), evaluated after Veling & Maas (2010).
// Parameters are the aquifer storativity S, transmissivity T and the
// aquitard resistance c; R is the distance from the pumping well to the
// observation point.
type Hantush struct {
	R      float64
	Cutoff float64
}

const wellTmax = 10000. // response horizon [d]; steady state well before this

func (*Hantush) Npar() int { return 3 }

func (*Hantush) Defaults(prefix string) []Def {
	return []Def{
		{prefix + "_S", .2, 1e-3, 1.},
		{prefix + "_T", 100., 10., 5000.},
		{prefix + "_c", 1500., 1000., 5000.},
	}
}

func (h *Hantush) Step(p []float64, dt float64) []float64 {
	s, t, c := p[0], p[1], p[2]
	rho := h.R / math.Sqrt(t*c)
	hinf := K0(rho)
	w := (E1(rho) - hinf) / (E1(rho) - E1(rho/2.))

	out := make([]float64, nstep(wellTmax, dt))
	for i := range out {
		tau := math.Log(2. / rho * float64(i+1) * dt / (s * c))
		f := hinf - w*E1(rho/2.*math.Exp(math.Abs(tau))) + (w-1.)*E1(rho*math.Cosh(tau))
		if tau < 0. {
			f = -f
		}
		out[i] = hinf + f
	}
	return out
}

func (h *Hantush) Block(p []float64, dt float64) []float64 { return block(h.Step(p, dt)) }

// Theis is the well function for a confined aquifer (Theis, 1935):
//
//	step(t) = E1(r²S / 4Tt)
type Theis struct {
	R      float64
	Cutoff float64
}

func (*Theis) Npar() int { return 2 }

func (*Theis) Defaults(prefix string) []Def {
	return []Def{
		{prefix + "_S", .3, 1e-3, 1.},
		{prefix + "_T", 100., 10., 5000.},
	}
}

func (th *Theis) Step(p []float64, dt float64) []float64 {
	s, t := p[0], p[1]
	out := make([]float64, nstep(wellTmax, dt))
	for i := range out {
		u := th.R * th.R * s / (4. * t * float64(i+1) * dt)
		out[i] = E1(u)
	}
	return out
}

func (th *Theis) Block(p []float64, dt float64) []float64 { return block(th.Step(p, dt)) }
