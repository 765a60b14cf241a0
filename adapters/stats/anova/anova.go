// Package anova implements one-way analysis of variance with Tukey-style
// post-hoc pairwise comparison. The omnibus test gates the pairwise table:
// running all pairwise t-tests unconditionally would inflate the family-wise
// false positive rate.
package anova

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"coordlab/domain/analysis"
	"coordlab/domain/core"
)

// Group is one named sequence of scalar observations.
type Group struct {
	Label  string
	Values []float64
}

// GroupsFromObservations folds flat (group, value) pairs into ordered
// groups, preserving first-seen group order.
func GroupsFromObservations(obs []analysis.GroupedObservation) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, o := range obs {
		i, ok := index[o.Group]
		if !ok {
			i = len(groups)
			index[o.Group] = i
			groups = append(groups, Group{Label: o.Group})
		}
		groups[i].Values = append(groups[i].Values, o.Value)
	}
	return groups
}

// Engine computes one-way ANOVA across named groups.
type Engine struct{}

// New creates a significance engine.
func New() *Engine {
	return &Engine{}
}

// OneWay runs a one-way ANOVA. When the omnibus test rejects the null at
// alpha = 0.05, the result carries the Tukey HSD post-hoc table at the same
// family-wise alpha.
func (e *Engine) OneWay(groups []Group) (analysis.SignificanceResult, error) {
	if len(groups) < 2 {
		return analysis.SignificanceResult{},
			fmt.Errorf("%w: need >= 2 groups, got %d", core.ErrInsufficientGroups, len(groups))
	}
	for _, g := range groups {
		if len(g.Values) == 0 {
			return analysis.SignificanceResult{},
				fmt.Errorf("%w: group %q has no observations", core.ErrInsufficientGroups, g.Label)
		}
	}

	k := len(groups)
	n := 0
	grandSum := 0.0
	for _, g := range groups {
		n += len(g.Values)
		for _, v := range g.Values {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(n)

	dfBetween := k - 1
	dfWithin := n - k
	if dfWithin < 1 {
		return analysis.SignificanceResult{},
			fmt.Errorf("%w: no within-group degrees of freedom (N=%d, k=%d)", core.ErrInsufficientData, n, k)
	}

	means := make([]float64, k)
	ssBetween := 0.0
	ssWithin := 0.0
	for i, g := range groups {
		sum := 0.0
		for _, v := range g.Values {
			sum += v
		}
		means[i] = sum / float64(len(g.Values))

		dev := means[i] - grandMean
		ssBetween += float64(len(g.Values)) * dev * dev
		for _, v := range g.Values {
			d := v - means[i]
			ssWithin += d * d
		}
	}

	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)

	var fStat, pValue float64
	switch {
	case msWithin > 0:
		fStat = msBetween / msWithin
		fDist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
		pValue = 1 - fDist.CDF(fStat)
	case msBetween > 0:
		// Zero within-group variance with distinct group means: the group
		// effect explains everything.
		fStat = math.Inf(1)
		pValue = 0
	default:
		// All observations identical.
		fStat = 0
		pValue = 1
	}

	result := analysis.SignificanceResult{
		FStatistic:  fStat,
		PValue:      pValue,
		Significant: pValue < analysis.Alpha,
		DFBetween:   dfBetween,
		DFWithin:    dfWithin,
	}

	if result.Significant {
		result.PostHoc = e.tukeyHSD(groups, means, msWithin, dfWithin)
	}

	return result, nil
}

// tukeyHSD computes all-pairs comparisons with Tukey-Kramer standard errors
// and studentized-range adjusted p-values, controlling the family-wise error
// rate at analysis.Alpha.
func (e *Engine) tukeyHSD(groups []Group, means []float64, msWithin float64, dfWithin int) []analysis.PairwiseComparison {
	k := len(groups)
	qCrit := StudentizedRangeQuantile(1-analysis.Alpha, k, float64(dfWithin))

	var table []analysis.PairwiseComparison
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			ni := float64(len(groups[i].Values))
			nj := float64(len(groups[j].Values))
			diff := means[i] - means[j]

			se := math.Sqrt(msWithin / 2 * (1/ni + 1/nj))

			var adjP float64
			var halfwidth float64
			if se > 0 {
				qObs := math.Abs(diff) / se
				adjP = 1 - StudentizedRangeCDF(qObs, k, float64(dfWithin))
				halfwidth = qCrit * se
			} else if diff != 0 {
				adjP = 0
			} else {
				adjP = 1
			}

			table = append(table, analysis.PairwiseComparison{
				GroupA:      groups[i].Label,
				GroupB:      groups[j].Label,
				MeanDiff:    diff,
				Lower:       diff - halfwidth,
				Upper:       diff + halfwidth,
				AdjustedP:   adjP,
				Significant: adjP < analysis.Alpha,
			})
		}
	}
	return table
}
