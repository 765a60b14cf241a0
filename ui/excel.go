package ui

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"coordlab/domain/report"
)

// WriteExcel exports the report as a workbook with a Summary sheet and a
// Detailed Results sheet.
func WriteExcel(rep *report.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, rep); err != nil {
		return err
	}
	if err := writeDetailSheet(f, rep); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, rep *report.Report) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Generated", rep.Metadata.GeneratedAt.String()},
		{"Experiments", rep.Metadata.NumExperiments},
		{"Total runs", rep.Metadata.TotalRuns},
		{},
		{"Best experiment", rep.ExecutiveSummary.BestExperiment, rep.ExecutiveSummary.BestEfficiency},
		{"Worst experiment", rep.ExecutiveSummary.WorstExperiment, rep.ExecutiveSummary.WorstEfficiency},
		{"Mean across all", rep.ExecutiveSummary.MeanAcrossAll},
		{"Std across all", rep.ExecutiveSummary.StdAcrossAll},
	}
	return writeRows(f, sheet, rows)
}

func writeDetailSheet(f *excelize.File, rep *report.Report) error {
	const sheet = "Detailed Results"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Experiment", "Efficiency Mean", "Efficiency Std", "Coordination", "Food", "Dangers", "Bandwidth (bits)", "Agents", "Runs"},
	}
	for _, r := range rep.DetailedResults {
		rows = append(rows, []interface{}{
			r.Name,
			r.EfficiencyMean,
			r.EfficiencyStd,
			r.CoordinationMean,
			r.FoodMean,
			r.DangersMean,
			r.Config.BandwidthBits,
			r.Config.NumAgents,
			r.Config.NumRuns,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for rowIdx, row := range rows {
		for colIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
