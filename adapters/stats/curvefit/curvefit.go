// Package curvefit fits competing linear and quadratic models of efficiency
// in log-bandwidth space to test for an inverted-U optimum.
package curvefit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"coordlab/domain/analysis"
	"coordlab/domain/core"
)

// Engine fits bandwidth-efficiency response curves.
type Engine struct{}

// New creates a curve fit engine.
func New() *Engine {
	return &Engine{}
}

// Fit fits both models over >= 3 bandwidth points. Bandwidths must be
// strictly positive (log-transform precondition). A quadratic fit needs at
// least 3 distinct bandwidths; with fewer, or on a solver fault, the result
// carries absent quadratic fields and HasInvertedU=false rather than an
// error.
func (e *Engine) Fit(points []analysis.BandwidthPoint) (analysis.RegressionResult, error) {
	if len(points) < 3 {
		return analysis.RegressionResult{},
			fmt.Errorf("%w: need >= 3 bandwidth points, got %d", core.ErrInsufficientData, len(points))
	}

	logBW := make([]float64, len(points))
	eff := make([]float64, len(points))
	for i, p := range points {
		if p.Bandwidth <= 0 {
			return analysis.RegressionResult{},
				core.NewConfigError("bandwidth", fmt.Sprintf("must be > 0 for log transform, got %g", p.Bandwidth))
		}
		logBW[i] = math.Log(p.Bandwidth)
		eff[i] = p.MeanEfficiency
	}

	ssTot := totalSumOfSquares(eff)

	intercept, slope := stat.LinearRegression(logBW, eff, nil, false)
	linear := analysis.LinearFit{
		Slope:     slope,
		Intercept: intercept,
		R2:        rSquared(eff, linearPredictions(logBW, slope, intercept), ssTot),
	}

	result := analysis.RegressionResult{Linear: linear}

	quad, ok := e.fitQuadratic(logBW, eff, ssTot)
	if !ok {
		return result, nil
	}
	result.Quadratic = quad

	if quad.A < 0 {
		result.HasInvertedU = true
		optimal := math.Exp(-quad.B / (2 * quad.A))
		result.OptimalBandwidth = &optimal
	}

	result.Diagnostics = e.olsDiagnostics(logBW, eff, quad)
	return result, nil
}

// fitQuadratic solves the least squares problem for
// eff ~ a*log(bw)^2 + b*log(bw) + c. ok=false signals a recoverable fit
// failure: too few distinct bandwidths or a singular system.
func (e *Engine) fitQuadratic(logBW, eff []float64, ssTot float64) (*analysis.QuadraticFit, bool) {
	if distinctCount(logBW) < 3 {
		return nil, false
	}

	n := len(logBW)
	design := mat.NewDense(n, 3, nil)
	for i, x := range logBW {
		design.Set(i, 0, 1)
		design.Set(i, 1, x)
		design.Set(i, 2, x*x)
	}
	y := mat.NewVecDense(n, eff)

	var coef mat.VecDense
	if err := coef.SolveVec(design, y); err != nil {
		// Collinear or otherwise degenerate design: absent quadratic,
		// not a propagated solver fault.
		return nil, false
	}

	c, b, a := coef.AtVec(0), coef.AtVec(1), coef.AtVec(2)
	pred := make([]float64, n)
	for i, x := range logBW {
		pred[i] = a*x*x + b*x + c
	}

	return &analysis.QuadraticFit{
		A:  a,
		B:  b,
		C:  c,
		R2: rSquared(eff, pred, ssTot),
	}, true
}

// olsDiagnostics reports t statistics and p-values for the combined
// log(bw) + log(bw)^2 model. Nil when no residual degrees of freedom
// remain (exact fit with n == 3).
func (e *Engine) olsDiagnostics(logBW, eff []float64, quad *analysis.QuadraticFit) *analysis.OLSDiagnostics {
	n := len(logBW)
	const p = 3
	residualDF := n - p
	if residualDF < 1 {
		return nil
	}

	ssRes := 0.0
	for i, x := range logBW {
		r := eff[i] - (quad.A*x*x + quad.B*x + quad.C)
		ssRes += r * r
	}
	sigma2 := ssRes / float64(residualDF)

	design := mat.NewDense(n, p, nil)
	for i, x := range logBW {
		design.Set(i, 0, 1)
		design.Set(i, 1, x)
		design.Set(i, 2, x*x)
	}
	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(residualDF)}
	estimates := []float64{quad.C, quad.B, quad.A}
	terms := []string{"intercept", "log_bw", "log_bw_sq"}

	coefs := make([]analysis.OLSCoefficient, p)
	for i := 0; i < p; i++ {
		se := math.Sqrt(sigma2 * xtxInv.At(i, i))
		var tStat, pValue float64
		if se > 0 {
			tStat = estimates[i] / se
			pValue = 2 * (1 - tDist.CDF(math.Abs(tStat)))
		} else {
			pValue = 1
		}
		coefs[i] = analysis.OLSCoefficient{
			Term:       terms[i],
			Estimate:   estimates[i],
			StdErr:     se,
			TStatistic: tStat,
			PValue:     pValue,
		}
	}

	return &analysis.OLSDiagnostics{ResidualDF: residualDF, Coefficients: coefs}
}

func linearPredictions(xs []float64, slope, intercept float64) []float64 {
	pred := make([]float64, len(xs))
	for i, x := range xs {
		pred[i] = slope*x + intercept
	}
	return pred
}

// rSquared is 1 - SS_res/SS_tot with SS_tot around the empirical mean.
// A zero SS_tot (constant response) counts as a perfect fit.
func rSquared(observed, predicted []float64, ssTot float64) float64 {
	if ssTot == 0 {
		return 1
	}
	ssRes := 0.0
	for i, y := range observed {
		r := y - predicted[i]
		ssRes += r * r
	}
	return 1 - ssRes/ssTot
}

func totalSumOfSquares(ys []float64) float64 {
	mean := 0.0
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))

	ss := 0.0
	for _, y := range ys {
		d := y - mean
		ss += d * d
	}
	return ss
}

func distinctCount(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}
