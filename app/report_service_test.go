package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coordlab/domain/core"
	"coordlab/domain/experiment"
	"coordlab/internal/testkit"
)

func runStubBatch(t *testing.T, seed int64) []*experiment.Result {
	t.Helper()
	svc := NewBatchService(testkit.NewStubFactory(), testLogger())
	results, err := svc.Run(context.Background(), seededEntries(seed), nil)
	require.NoError(t, err)
	return results
}

func syntheticResult(name string, bandwidth float64, efficiencies ...float64) *experiment.Result {
	runs := make([]experiment.RunRecord, len(efficiencies))
	sum := 0.0
	for i, e := range efficiencies {
		runs[i] = experiment.RunRecord{NetEfficiency: e}
		sum += e
	}
	return &experiment.Result{
		Name:   name,
		Config: experiment.Config{BandwidthBits: bandwidth},
		Runs:   runs,
		Aggregated: experiment.AggregatedStats{
			Efficiency: experiment.RangeStats{Mean: sum / float64(len(efficiencies))},
		},
	}
}

func TestAssemble_FullBatch(t *testing.T) {
	results := runStubBatch(t, 42)
	rep, err := NewReportService(testLogger()).Assemble(results)
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Metadata.NumExperiments)
	assert.Equal(t, 15, rep.Metadata.TotalRuns)
	assert.False(t, rep.Metadata.GeneratedAt.IsZero())

	assert.NotEmpty(t, rep.ExecutiveSummary.BestExperiment)
	assert.GreaterOrEqual(t, rep.ExecutiveSummary.BestEfficiency, rep.ExecutiveSummary.WorstEfficiency)

	require.Len(t, rep.DetailedResults, 3)
	for i, row := range rep.DetailedResults {
		assert.Equal(t, results[i].Name, row.Name, "detailed rows must keep batch order")
	}

	assert.Len(t, rep.Visualizations.EfficiencyComparison.Labels, 3)
	assert.Len(t, rep.Visualizations.EfficiencyComparison.ErrorBars, 3)
	assert.Len(t, rep.Visualizations.Radar, 3, "three experiments fit the radar cap")

	// Three groups of five runs and three distinct bandwidths: both
	// inferential sections must be computed.
	require.NotNil(t, rep.Statistics.ANOVA)
	assert.Empty(t, rep.Statistics.ANOVASkipped)
	assert.Equal(t, 2, rep.Statistics.ANOVA.DFBetween)
	assert.Equal(t, 12, rep.Statistics.ANOVA.DFWithin)

	require.NotNil(t, rep.Statistics.Regression)
	assert.Empty(t, rep.Statistics.RegressionSkipped)
}

func TestAssemble_BestAndWorst(t *testing.T) {
	results := []*experiment.Result{
		syntheticResult("mid", 100, 4, 6),
		syntheticResult("top", 1000, 9, 11),
		syntheticResult("bottom", 10000, 2, 4),
	}

	rep, err := NewReportService(testLogger()).Assemble(results)
	require.NoError(t, err)

	assert.Equal(t, "top", rep.ExecutiveSummary.BestExperiment)
	assert.Equal(t, 10.0, rep.ExecutiveSummary.BestEfficiency)
	assert.Equal(t, "bottom", rep.ExecutiveSummary.WorstExperiment)
	assert.Equal(t, 3.0, rep.ExecutiveSummary.WorstEfficiency)
	assert.Equal(t, 6.0, rep.ExecutiveSummary.MeanAcrossAll)
}

func TestAssemble_RadarCapped(t *testing.T) {
	var results []*experiment.Result
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		results = append(results, syntheticResult(name, 100, 1, 2))
	}

	rep, err := NewReportService(testLogger()).Assemble(results)
	require.NoError(t, err)
	assert.Nil(t, rep.Visualizations.Radar, "radar must be omitted beyond the experiment cap")
	assert.Len(t, rep.Visualizations.EfficiencyComparison.Labels, 6)
}

func TestAssemble_SingleExperimentSkipsInference(t *testing.T) {
	rep, err := NewReportService(testLogger()).Assemble([]*experiment.Result{
		syntheticResult("only", 1000, 1, 2, 3),
	})
	require.NoError(t, err)

	assert.Nil(t, rep.Statistics.ANOVA)
	assert.NotEmpty(t, rep.Statistics.ANOVASkipped)
	assert.Nil(t, rep.Statistics.Regression)
	assert.NotEmpty(t, rep.Statistics.RegressionSkipped)
}

func TestAssemble_EmptyBatch(t *testing.T) {
	_, err := NewReportService(testLogger()).Assemble(nil)
	assert.ErrorIs(t, err, core.ErrEmptyBatch)
}
