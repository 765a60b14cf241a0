package app

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"coordlab/adapters/stats/aggregate"
	"coordlab/domain/analysis"
	"coordlab/domain/core"
	"coordlab/domain/experiment"
	"coordlab/ports"
)

// BatchService drives the external simulation across a list of named
// configurations with seeded repetitions, aggregating each experiment's
// runs. A failing experiment aborts the batch; isolation is the caller's
// concern.
type BatchService struct {
	sims       ports.SimulationFactory
	aggregator *aggregate.Aggregator
	log        *slog.Logger
}

// NewBatchService creates a batch service.
func NewBatchService(sims ports.SimulationFactory, logger *slog.Logger) *BatchService {
	return &BatchService{
		sims:       sims,
		aggregator: aggregate.New(),
		log:        logger,
	}
}

// Run executes the batch sequentially. The progress hook, when non-nil, is
// invoked with idx/total before each experiment and once more with exactly
// 1.0 after the last - strictly increasing fractions.
func (s *BatchService) Run(ctx context.Context, entries []experiment.TemplateEntry, progress ports.ProgressFunc) ([]*experiment.Result, error) {
	total := len(entries)
	results := make([]*experiment.Result, 0, total)

	for idx, entry := range entries {
		if progress != nil {
			progress(float64(idx) / float64(total))
		}

		result, err := s.runExperiment(ctx, entry)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if progress != nil {
		progress(1.0)
	}
	return results, nil
}

// RunParallel executes independent experiments concurrently with at most
// maxWorkers simulations in flight. Safe because every analysis call only
// reads its inputs and allocates fresh outputs; each worker owns its own
// result slot. Progress reports completed/total in completion order, which
// keeps the fractions monotonic.
func (s *BatchService) RunParallel(ctx context.Context, entries []experiment.TemplateEntry, progress ports.ProgressFunc, maxWorkers int64) ([]*experiment.Result, error) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	total := len(entries)
	results := make([]*experiment.Result, total)

	sem := semaphore.NewWeighted(maxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	completed := 0

	for idx, entry := range entries {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(idx int, entry experiment.TemplateEntry) {
			defer wg.Done()
			defer sem.Release(1)

			result, err := s.runExperiment(ctx, entry)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[idx] = result
			completed++
			if progress != nil {
				progress(float64(completed) / float64(total))
			}
		}(idx, entry)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// runExperiment validates the config, runs the configured repetitions and
// aggregates them into one immutable result.
func (s *BatchService) runExperiment(ctx context.Context, entry experiment.TemplateEntry) (*experiment.Result, error) {
	cfg := entry.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s.log.Info("running experiment",
		"name", entry.Name,
		"bandwidth_bits", cfg.BandwidthBits,
		"agents", cfg.NumAgents,
		"runs", cfg.NumRuns)

	sim, err := s.sims.New(cfg)
	if err != nil {
		return nil, core.NewSimulationError(entry.Name, err)
	}

	runs := make([]experiment.RunRecord, 0, cfg.NumRuns)
	for i := 0; i < cfg.NumRuns; i++ {
		var seed *int64
		if cfg.SeedBase != nil {
			v := *cfg.SeedBase + int64(i)
			seed = &v
		}

		if err := sim.Initialize(ctx, seed); err != nil {
			return nil, core.NewSimulationError(entry.Name, err)
		}
		metrics, err := sim.RunEpisode(ctx, cfg.NumSteps)
		if err != nil {
			return nil, core.NewSimulationError(entry.Name, err)
		}
		runs = append(runs, experiment.RecordFromMetrics(metrics))
	}

	aggregated, err := s.aggregator.Aggregate(runs)
	if err != nil {
		return nil, err
	}

	return &experiment.Result{
		ID:         core.ExperimentID(core.NewID()),
		Name:       entry.Name,
		Config:     cfg,
		Runs:       runs,
		Aggregated: aggregated,
		CreatedAt:  core.Now(),
	}, nil
}

// GroupedEfficiencies flattens per-run efficiencies across the batch into
// (experiment name, value) observations for analysis of variance.
func GroupedEfficiencies(results []*experiment.Result) []analysis.GroupedObservation {
	var obs []analysis.GroupedObservation
	for _, r := range results {
		for _, run := range r.Runs {
			obs = append(obs, analysis.GroupedObservation{
				Group: r.Name,
				Value: run.NetEfficiency,
			})
		}
	}
	return obs
}

// BandwidthPoints folds the batch into one (bandwidth, mean efficiency)
// point per distinct bandwidth level, ordered by ascending bandwidth. Runs
// of experiments sharing a bandwidth pool into one mean.
func BandwidthPoints(results []*experiment.Result) []analysis.BandwidthPoint {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, r := range results {
		bw := r.Config.BandwidthBits
		for _, run := range r.Runs {
			sums[bw] += run.NetEfficiency
			counts[bw]++
		}
	}

	points := make([]analysis.BandwidthPoint, 0, len(sums))
	for bw, sum := range sums {
		points = append(points, analysis.BandwidthPoint{
			Bandwidth:      bw,
			MeanEfficiency: sum / float64(counts[bw]),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bandwidth < points[j].Bandwidth })
	return points
}

// BatchFingerprint hashes the batch identity (every experiment fingerprint
// in order) for deterministic replay checks.
func BatchFingerprint(results []*experiment.Result) core.Hash {
	parts := make([]string, 0, len(results)+1)
	parts = append(parts, "batch")
	for _, r := range results {
		parts = append(parts, r.Fingerprint().String())
	}
	return core.NewHash(parts...)
}
