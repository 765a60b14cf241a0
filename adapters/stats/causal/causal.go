// Package causal compares the three phases of an ablation test - baseline,
// ablated, restored - via pairwise significance tests and standardized
// effect sizes, plus an omnibus ANOVA across the phases.
package causal

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"coordlab/adapters/stats/anova"
	"coordlab/domain/analysis"
	"coordlab/domain/core"
)

// Analyzer runs the three-phase causal ablation readout.
type Analyzer struct {
	anova *anova.Engine
}

// New creates a causal phase analyzer.
func New() *Analyzer {
	return &Analyzer{anova: anova.New()}
}

// Analyze compares baseline (A), ablated (B) and restored (C) phases. Equal
// length pairs get a paired t-test; unequal lengths fall back to Welch's
// independent-samples test, since paired statistics are invalid for
// unmatched samples. The analyzer supplies the numbers only - the causal
// interpretation (A close to C, B apart from both) is the caller's.
func (a *Analyzer) Analyze(phaseA, phaseB, phaseC analysis.PhaseDataset) (analysis.CausalAnalysis, error) {
	for _, p := range []analysis.PhaseDataset{phaseA, phaseB, phaseC} {
		if len(p.Efficiencies) == 0 {
			return analysis.CausalAnalysis{},
				fmt.Errorf("%w: phase %s has no observations", core.ErrInsufficientGroups, p.Phase)
		}
	}

	omnibus, err := a.anova.OneWay([]anova.Group{
		{Label: string(phaseA.Phase), Values: phaseA.Efficiencies},
		{Label: string(phaseB.Phase), Values: phaseB.Efficiencies},
		{Label: string(phaseC.Phase), Values: phaseC.Efficiencies},
	})
	if err != nil {
		return analysis.CausalAnalysis{}, err
	}

	return analysis.CausalAnalysis{
		AvsB:    comparePhases(phaseA.Efficiencies, phaseB.Efficiencies),
		BvsC:    comparePhases(phaseB.Efficiencies, phaseC.Efficiencies),
		AvsC:    comparePhases(phaseA.Efficiencies, phaseC.Efficiencies),
		Omnibus: omnibus,
	}, nil
}

func comparePhases(x, y []float64) analysis.PhaseComparison {
	var ttest analysis.TTestResult
	if len(x) == len(y) {
		ttest = pairedTTest(x, y)
	} else {
		ttest = welchTTest(x, y)
	}
	return analysis.PhaseComparison{
		TTest:      ttest,
		EffectSize: CohensD(x, y),
	}
}

// pairedTTest tests the mean of the elementwise differences against zero.
func pairedTTest(x, y []float64) analysis.TTestResult {
	n := len(x)
	if n < 2 {
		return analysis.TTestResult{PValue: 1, Paired: true}
	}

	diffs := make([]float64, n)
	for i := range x {
		diffs[i] = x[i] - y[i]
	}
	meanDiff, _ := stats.Mean(diffs)
	sdDiff, _ := stats.StandardDeviationSample(diffs)

	df := float64(n - 1)
	tStat, pValue := tFromStats(meanDiff, sdDiff/math.Sqrt(float64(n)), df)
	return analysis.TTestResult{
		Statistic:   tStat,
		PValue:      pValue,
		DF:          df,
		Paired:      true,
		Significant: pValue < analysis.Alpha,
	}
}

// welchTTest is the unequal-variance independent-samples test with
// Welch-Satterthwaite degrees of freedom.
func welchTTest(x, y []float64) analysis.TTestResult {
	n1, n2 := float64(len(x)), float64(len(y))
	if n1 < 2 || n2 < 2 {
		return analysis.TTestResult{PValue: 1}
	}

	mean1, _ := stats.Mean(x)
	mean2, _ := stats.Mean(y)
	var1, _ := stats.SampleVariance(x)
	var2, _ := stats.SampleVariance(y)

	se := math.Sqrt(var1/n1 + var2/n2)
	df := 1.0
	if var1 > 0 || var2 > 0 {
		df = math.Pow(var1/n1+var2/n2, 2) /
			(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))
	}

	tStat, pValue := tFromStats(mean1-mean2, se, df)
	return analysis.TTestResult{
		Statistic:   tStat,
		PValue:      pValue,
		DF:          df,
		Significant: pValue < analysis.Alpha,
	}
}

// tFromStats turns an estimate and its standard error into a two-sided
// t-test outcome. A zero standard error degenerates to p=1 for a zero
// estimate and p=0 otherwise.
func tFromStats(estimate, se, df float64) (tStat, pValue float64) {
	if se == 0 {
		if estimate == 0 {
			return 0, 1
		}
		return math.Copysign(math.Inf(1), estimate), 0
	}
	tStat = estimate / se
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * (1 - tDist.CDF(math.Abs(tStat)))
	return tStat, pValue
}

// CohensD is the standardized mean difference (mean(x) - mean(y)) over the
// root-mean of the two population variances. A zero pooled deviation
// reports d = 0 rather than dividing by zero.
func CohensD(x, y []float64) analysis.EffectSizeResult {
	meanX, _ := stats.Mean(x)
	meanY, _ := stats.Mean(y)
	varX, _ := stats.PopulationVariance(x)
	varY, _ := stats.PopulationVariance(y)

	meanDiff := meanX - meanY
	pooled := math.Sqrt((varX + varY) / 2)

	d := 0.0
	if pooled > 0 {
		d = meanDiff / pooled
	}

	return analysis.EffectSizeResult{
		CohensD:        d,
		Interpretation: analysis.ClassifyEffect(d),
		MeanDiff:       meanDiff,
	}
}
