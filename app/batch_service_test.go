package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coordlab/domain/core"
	"coordlab/domain/experiment"
	"coordlab/internal/testkit"
	"coordlab/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededEntries(seed int64) []experiment.TemplateEntry {
	entries := experiment.Template(experiment.TemplateBandwidthSweep)
	for i := range entries {
		s := seed
		entries[i].Config.SeedBase = &s
	}
	return entries
}

func TestRun_CompletesTemplate(t *testing.T) {
	svc := NewBatchService(testkit.NewStubFactory(), testLogger())

	var fractions []float64
	progress := func(f float64) { fractions = append(fractions, f) }

	results, err := svc.Run(context.Background(), seededEntries(42), progress)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Len(t, r.Runs, 5)
		assert.NotEmpty(t, r.Name)
		assert.False(t, r.ID.String() == "")
		assert.GreaterOrEqual(t, r.Aggregated.Efficiency.Max, r.Aggregated.Efficiency.Min)
	}

	// One fraction before each experiment plus the final 1.0.
	require.Len(t, fractions, 4)
	assert.Equal(t, 0.0, fractions[0])
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
	for i := 1; i < len(fractions); i++ {
		assert.Greater(t, fractions[i], fractions[i-1], "progress must be strictly increasing")
	}
}

func TestRun_Deterministic(t *testing.T) {
	svc := NewBatchService(testkit.NewStubFactory(), testLogger())

	first, err := svc.Run(context.Background(), seededEntries(7), nil)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), seededEntries(7), nil)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Runs, second[i].Runs, "seeded runs must repeat exactly")
		assert.Equal(t, first[i].Aggregated, second[i].Aggregated)
	}
	assert.Equal(t, BatchFingerprint(first), BatchFingerprint(second))
}

func TestRunParallel_MatchesSequential(t *testing.T) {
	svc := NewBatchService(testkit.NewStubFactory(), testLogger())

	sequential, err := svc.Run(context.Background(), seededEntries(9), nil)
	require.NoError(t, err)

	var fractions []float64
	parallel, err := svc.RunParallel(context.Background(), seededEntries(9), func(f float64) {
		fractions = append(fractions, f)
	}, 3)
	require.NoError(t, err)

	require.Len(t, parallel, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].Name, parallel[i].Name, "parallel results must keep input order")
		assert.Equal(t, sequential[i].Aggregated, parallel[i].Aggregated)
	}

	require.Len(t, fractions, 3)
	for i := 1; i < len(fractions); i++ {
		assert.Greater(t, fractions[i], fractions[i-1])
	}
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestRun_InvalidConfigRejected(t *testing.T) {
	svc := NewBatchService(testkit.NewStubFactory(), testLogger())
	entries := []experiment.TemplateEntry{
		{Name: "bad", Config: experiment.Config{BandwidthBits: -5}},
	}

	_, err := svc.Run(context.Background(), entries, nil)
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
}

type failingFactory struct{}

func (f *failingFactory) New(cfg experiment.Config) (ports.Simulation, error) {
	return nil, errors.New("no simulator available")
}

func TestRun_SimulationFailureAbortsBatch(t *testing.T) {
	svc := NewBatchService(&failingFactory{}, testLogger())

	_, err := svc.Run(context.Background(), seededEntries(1), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSimulationFailed)
}

func TestGroupedEfficiencies(t *testing.T) {
	results := []*experiment.Result{
		{Name: "a", Runs: []experiment.RunRecord{{NetEfficiency: 1}, {NetEfficiency: 2}}},
		{Name: "b", Runs: []experiment.RunRecord{{NetEfficiency: 3}}},
	}

	obs := GroupedEfficiencies(results)
	require.Len(t, obs, 3)
	assert.Equal(t, "a", obs[0].Group)
	assert.Equal(t, 2.0, obs[1].Value)
	assert.Equal(t, "b", obs[2].Group)
}

func TestBandwidthPoints_PoolsAndSorts(t *testing.T) {
	results := []*experiment.Result{
		{
			Config: experiment.Config{BandwidthBits: 1000},
			Runs:   []experiment.RunRecord{{NetEfficiency: 4}, {NetEfficiency: 6}},
		},
		{
			Config: experiment.Config{BandwidthBits: 100},
			Runs:   []experiment.RunRecord{{NetEfficiency: 1}},
		},
		{
			Config: experiment.Config{BandwidthBits: 1000},
			Runs:   []experiment.RunRecord{{NetEfficiency: 8}},
		},
	}

	points := BandwidthPoints(results)
	require.Len(t, points, 2)
	assert.Equal(t, 100.0, points[0].Bandwidth)
	assert.Equal(t, 1.0, points[0].MeanEfficiency)
	assert.Equal(t, 1000.0, points[1].Bandwidth)
	assert.Equal(t, 6.0, points[1].MeanEfficiency)
}
