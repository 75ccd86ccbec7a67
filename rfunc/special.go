package rfunc

import "math"

// Scalar special functions needed by the well responses. Polynomial
// approximations from Abramowitz & Stegun; absolute error < 2e-7 over
// the evaluated ranges.

// E1 is the exponential integral E1(x), x > 0 (A&S 5.1.53, 5.1.56).
func E1(x float64) float64 {
	if x <= 0. {
		return math.Inf(1)
	}
	if x <= 1. {
		return -math.Log(x) - 0.57721566 +
			x*(0.99999193+x*(-0.24991055+x*(0.05519968+x*(-0.00976004+x*0.00107857))))
	}
	num := 0.2677737343 + x*(8.6347608925+x*(18.059016973+x*(8.5733287401+x)))
	den := 3.9584969228 + x*(21.0996530827+x*(25.6329561486+x*(9.5733223454+x)))
	return math.Exp(-x) / x * num / den
}

// K0 is the modified Bessel function of the second kind, order zero
// (A&S 9.8.5, 9.8.6).
func K0(x float64) float64 {
	if x <= 0. {
		return math.Inf(1)
	}
	if x <= 2. {
		t := x * x / 4.
		return -math.Log(x/2.)*besselI0(x) - 0.57721566 +
			t*(0.42278420+t*(0.23069756+t*(0.03488590+t*(0.00262698+t*(0.00010750+t*0.00000740)))))
	}
	t := 2. / x
	return math.Exp(-x) / math.Sqrt(x) *
		(1.25331414 + t*(-0.07832358+t*(0.02189568+t*(-0.01062446+t*(0.00587872+t*(-0.00251540+t*0.00053208))))))
}

// besselI0 (A&S 9.8.1), valid for |x| < 3.75.
func besselI0(x float64) float64 {
	t := x * x / (3.75 * 3.75)
	return 1. + t*(3.5156229+t*(3.0899424+t*(1.2067492+t*(0.2659732+t*(0.0360768+t*0.0045813)))))
}
