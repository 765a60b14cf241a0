package ui

import (
	"fmt"
	"strings"

	"coordlab/domain/report"
)

// RenderMarkdown formats a report as a markdown document. Section order
// mirrors the report contract; skipped statistical sections keep their
// heading with the skip reason so the omission is visible.
func RenderMarkdown(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("# Coordination Experiment Report\n\n")
	fmt.Fprintf(&b, "Generated: %s | Experiments: %d | Total runs: %d\n\n",
		rep.Metadata.GeneratedAt.Time().Format("2006-01-02 15:04:05"),
		rep.Metadata.NumExperiments,
		rep.Metadata.TotalRuns)

	writeExecutiveSummary(&b, rep.ExecutiveSummary)
	writeDetailedResults(&b, rep.DetailedResults)
	writeStatistics(&b, rep.Statistics)

	return b.String()
}

func writeExecutiveSummary(b *strings.Builder, s report.ExecutiveSummary) {
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(b, "- Best: **%s** (efficiency %.2f)\n", s.BestExperiment, s.BestEfficiency)
	fmt.Fprintf(b, "- Worst: **%s** (efficiency %.2f)\n", s.WorstExperiment, s.WorstEfficiency)
	fmt.Fprintf(b, "- Across all experiments: %.2f ± %.2f\n\n", s.MeanAcrossAll, s.StdAcrossAll)
}

func writeDetailedResults(b *strings.Builder, rows []report.DetailedResult) {
	b.WriteString("## Detailed Results\n\n")
	b.WriteString("| Experiment | Efficiency | Coordination | Food | Dangers |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %.2f ± %.2f | %.1f%% | %.1f | %.1f |\n",
			r.Name, r.EfficiencyMean, r.EfficiencyStd,
			r.CoordinationMean*100, r.FoodMean, r.DangersMean)
	}
	b.WriteString("\n")
}

func writeStatistics(b *strings.Builder, s report.Statistics) {
	b.WriteString("## Statistical Analysis\n\n")

	b.WriteString("### One-Way ANOVA\n\n")
	switch {
	case s.ANOVA != nil:
		a := s.ANOVA
		fmt.Fprintf(b, "F(%d, %d) = %.3f, p = %.4f (%s)\n\n",
			a.DFBetween, a.DFWithin, a.FStatistic, a.PValue, verdict(a.Significant))
		if len(a.PostHoc) > 0 {
			b.WriteString("| Pair | Mean Diff | 95% CI | Adj. p | Significant |\n")
			b.WriteString("|---|---|---|---|---|\n")
			for _, p := range a.PostHoc {
				fmt.Fprintf(b, "| %s vs %s | %.2f | [%.2f, %.2f] | %.4f | %v |\n",
					p.GroupA, p.GroupB, p.MeanDiff, p.Lower, p.Upper, p.AdjustedP, p.Significant)
			}
			b.WriteString("\n")
		}
	case s.ANOVASkipped != "":
		fmt.Fprintf(b, "Skipped: %s\n\n", s.ANOVASkipped)
	}

	b.WriteString("### Bandwidth Regression\n\n")
	switch {
	case s.Regression != nil:
		r := s.Regression
		fmt.Fprintf(b, "Linear (log bandwidth): slope %.3f, intercept %.3f, R² = %.3f\n\n",
			r.Linear.Slope, r.Linear.Intercept, r.Linear.R2)
		if r.Quadratic != nil {
			fmt.Fprintf(b, "Quadratic: a %.3f, b %.3f, c %.3f, R² = %.3f\n\n",
				r.Quadratic.A, r.Quadratic.B, r.Quadratic.C, r.Quadratic.R2)
		}
		if r.HasInvertedU && r.OptimalBandwidth != nil {
			fmt.Fprintf(b, "Inverted-U detected; estimated optimal bandwidth ≈ %.0f bits\n\n",
				*r.OptimalBandwidth)
		}
	case s.RegressionSkipped != "":
		fmt.Fprintf(b, "Skipped: %s\n\n", s.RegressionSkipped)
	}
}

func verdict(significant bool) string {
	if significant {
		return "significant"
	}
	return "not significant"
}
