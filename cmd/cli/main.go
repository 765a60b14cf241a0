package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coordlab/adapters/stats/causal"
	"coordlab/app"
	"coordlab/domain/analysis"
	"coordlab/domain/experiment"
	"coordlab/domain/report"
	"coordlab/internal/logging"
	"coordlab/internal/testkit"
	"coordlab/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coordlab",
		Short: "Coordination experiment batches and statistical analysis",
	}

	rootCmd.AddCommand(
		newBatchCmd(),
		newCausalCmd(),
		newServeCmd(),
		newTemplatesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newBatchCmd() *cobra.Command {
	var template string
	var seed int64
	var workers int64
	var jsonPath, xlsxPath, mdPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run an experiment batch and assemble the report",
		Long: `Run one of the built-in experiment batches against the demo simulation,
aggregate the runs and assemble the statistical report.

Example: coordlab batch --template bandwidth_sweep --seed 42 --json report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := runBatch(cmd.Context(), template, seed, workers)
			if err != nil {
				return err
			}
			return writeOutputs(rep, jsonPath, xlsxPath, mdPath)
		},
	}

	cmd.Flags().StringVar(&template, "template", experiment.TemplateBandwidthSweep, "Batch template (bandwidth_sweep, agent_scaling, vision_range)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Base seed for deterministic runs")
	cmd.Flags().Int64Var(&workers, "workers", 1, "Max experiments in flight")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Write report JSON to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write report workbook to this path")
	cmd.Flags().StringVar(&mdPath, "md", "", "Write report markdown to this path")

	return cmd
}

func newCausalCmd() *cobra.Command {
	var seed int64
	var bandwidth float64

	cmd := &cobra.Command{
		Use:   "causal",
		Short: "Run the three-phase communication ablation",
		Long: `Run the baseline / ablated / restoration ablation against the demo
simulation and print the paired significance tests and effect sizes.

Example: coordlab causal --seed 42 --bandwidth 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCausal(cmd.Context(), seed, bandwidth)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Base seed shared across phases")
	cmd.Flags().Float64Var(&bandwidth, "bandwidth", 1000, "Bandwidth (bits) for the baseline and restoration phases")

	return cmd
}

func newServeCmd() *cobra.Command {
	var template string
	var seed int64
	var workers int64
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a batch and serve the report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := runBatch(cmd.Context(), template, seed, workers)
			if err != nil {
				return err
			}
			fmt.Printf("Serving report on http://localhost:%s\n", port)
			return ui.NewApp(rep).Start(ui.Config{Port: port})
		},
	}

	cmd.Flags().StringVar(&template, "template", experiment.TemplateBandwidthSweep, "Batch template")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Base seed for deterministic runs")
	cmd.Flags().Int64Var(&workers, "workers", 1, "Max experiments in flight")
	cmd.Flags().StringVar(&port, "port", "8080", "HTTP port")

	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in batch templates",
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range experiment.TemplateKinds() {
				fmt.Println(kind)
				for _, entry := range experiment.Template(kind) {
					fmt.Printf("  %s\n", entry.Name)
				}
			}
		},
	}
}

func runBatch(ctx context.Context, template string, seed, workers int64) (rep *report.Report, err error) {
	entries := experiment.Template(template)
	if entries == nil {
		return nil, fmt.Errorf("unknown template %q (try: %v)", template, experiment.TemplateKinds())
	}
	for i := range entries {
		s := seed
		entries[i].Config.SeedBase = &s
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"))
	batches := app.NewBatchService(testkit.NewStubFactory(), logger)
	reports := app.NewReportService(logger)

	progress := func(fraction float64) {
		fmt.Printf("\rprogress: %3.0f%%", fraction*100)
		if fraction >= 1.0 {
			fmt.Println()
		}
	}

	var results []*experiment.Result
	if workers > 1 {
		results, err = batches.RunParallel(ctx, entries, progress, workers)
	} else {
		results, err = batches.Run(ctx, entries, progress)
	}
	if err != nil {
		return nil, err
	}

	return reports.Assemble(results)
}

func runCausal(ctx context.Context, seed int64, bandwidth float64) error {
	logger := logging.New(os.Getenv("LOG_LEVEL"))
	batches := app.NewBatchService(testkit.NewStubFactory(), logger)

	// Phase B ablates communication down to a single bit; all three phases
	// reuse the same base seed so the comparisons pair up run for run.
	phases := []experiment.TemplateEntry{
		{Name: "Phase A (baseline)", Config: experiment.Config{BandwidthBits: bandwidth, SeedBase: &seed}},
		{Name: "Phase B (ablated)", Config: experiment.Config{BandwidthBits: 1, SeedBase: &seed}},
		{Name: "Phase C (restored)", Config: experiment.Config{BandwidthBits: bandwidth, SeedBase: &seed}},
	}

	results, err := batches.Run(ctx, phases, nil)
	if err != nil {
		return err
	}

	out, err := causal.New().Analyze(
		analysis.PhaseDataset{Phase: analysis.PhaseBaseline, Efficiencies: results[0].Efficiencies()},
		analysis.PhaseDataset{Phase: analysis.PhaseAblated, Efficiencies: results[1].Efficiencies()},
		analysis.PhaseDataset{Phase: analysis.PhaseRestoration, Efficiencies: results[2].Efficiencies()},
	)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeOutputs(rep *report.Report, jsonPath, xlsxPath, mdPath string) error {
	if jsonPath != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if xlsxPath != "" {
		if err := ui.WriteExcel(rep, xlsxPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", xlsxPath)
	}
	if mdPath != "" {
		if err := os.WriteFile(mdPath, []byte(ui.RenderMarkdown(rep)), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", mdPath)
	}
	if jsonPath == "" && xlsxPath == "" && mdPath == "" {
		fmt.Print(ui.RenderMarkdown(rep))
	}
	return nil
}
