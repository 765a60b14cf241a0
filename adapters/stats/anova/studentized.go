package anova

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Studentized range distribution, evaluated by direct numerical integration
// over gonum densities. The CDF of the range of k standard normals,
// studentized by an independent chi-based scale estimate with df degrees of
// freedom, is
//
//	P(Q <= q) = integral over s of f_s(s) * P(range <= q*s) ds
//
// where s = sqrt(chi2_df / df) and
//
//	P(range <= x) = k * integral over u of phi(u) * (Phi(u) - Phi(u-x))^(k-1) du
//
// with u the maximum of the k variates. Large df collapses the outer
// integral to the range CDF itself.

const (
	rangeInnerLimit = 8.0 // +/- integration bounds for the max of k normals
	rangeInnerSteps = 256
	scaleOuterLimit = 4.0 // upper bound for s; the density is negligible beyond
	scaleOuterSteps = 256
	largeDF         = 1e4
)

// normalRangeCDF is P(range of k independent standard normals <= x).
func normalRangeCDF(x float64, k int) float64 {
	if x <= 0 {
		return 0
	}
	norm := distuv.UnitNormal

	// Simpson's rule over u in [-limit, limit].
	h := 2 * rangeInnerLimit / float64(rangeInnerSteps)
	sum := 0.0
	for i := 0; i <= rangeInnerSteps; i++ {
		u := -rangeInnerLimit + float64(i)*h
		inner := norm.CDF(u) - norm.CDF(u-x)
		if inner < 0 {
			inner = 0
		}
		f := norm.Prob(u) * math.Pow(inner, float64(k-1))
		switch {
		case i == 0 || i == rangeInnerSteps:
			sum += f
		case i%2 == 1:
			sum += 4 * f
		default:
			sum += 2 * f
		}
	}
	p := float64(k) * sum * h / 3
	if p > 1 {
		p = 1
	}
	return p
}

// StudentizedRangeCDF is P(Q <= q) for the studentized range of k groups
// with df within-group degrees of freedom.
func StudentizedRangeCDF(q float64, k int, df float64) float64 {
	if q <= 0 {
		return 0
	}
	if df >= largeDF {
		return normalRangeCDF(q, k)
	}

	chi2 := distuv.ChiSquared{K: df}
	// Density of s = sqrt(U/df) for U ~ chi2(df): f_s(s) = 2*df*s * f_U(df*s^2).
	h := scaleOuterLimit / float64(scaleOuterSteps)
	sum := 0.0
	for i := 0; i <= scaleOuterSteps; i++ {
		s := float64(i) * h
		var f float64
		if s > 0 {
			f = 2 * df * s * chi2.Prob(df*s*s) * normalRangeCDF(q*s, k)
		}
		switch {
		case i == 0 || i == scaleOuterSteps:
			sum += f
		case i%2 == 1:
			sum += 4 * f
		default:
			sum += 2 * f
		}
	}
	p := sum * h / 3
	if p > 1 {
		p = 1
	}
	return p
}

// StudentizedRangeQuantile inverts the CDF by bisection. p is the lower
// tail probability, e.g. 0.95 for the conventional alpha = 0.05 critical
// value.
func StudentizedRangeQuantile(p float64, k int, df float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.Inf(1)
	}

	lo, hi := 0.0, 50.0
	for hi-lo > 1e-6 {
		mid := (lo + hi) / 2
		if StudentizedRangeCDF(mid, k, df) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
