package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coordlab/domain/core"
	"coordlab/domain/report"
)

func demoReport() *report.Report {
	return &report.Report{
		Metadata: report.Metadata{
			GeneratedAt:    core.Now(),
			NumExperiments: 2,
			TotalRuns:      10,
		},
		ExecutiveSummary: report.ExecutiveSummary{
			BestExperiment:  "Medium BW",
			BestEfficiency:  6.2,
			WorstExperiment: "Low BW",
			WorstEfficiency: 1.4,
			MeanAcrossAll:   3.8,
			StdAcrossAll:    2.4,
		},
		DetailedResults: []report.DetailedResult{
			{Name: "Low BW", EfficiencyMean: 1.4, CoordinationMean: 0.3},
			{Name: "Medium BW", EfficiencyMean: 6.2, CoordinationMean: 0.7},
		},
		Statistics: report.Statistics{
			ANOVASkipped:      "insufficient groups",
			RegressionSkipped: "insufficient data",
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := NewApp(demoReport())
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestReportJSONEndpoint(t *testing.T) {
	app := NewApp(demoReport())
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Metadata.NumExperiments)
	assert.Equal(t, "Medium BW", got.ExecutiveSummary.BestExperiment)
}

func TestIndexRendersHTML(t *testing.T) {
	app := NewApp(demoReport())
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Coordination Experiment Report")
	assert.Contains(t, body, "Medium BW")
}

func TestRenderMarkdown_Sections(t *testing.T) {
	md := RenderMarkdown(demoReport())

	assert.True(t, strings.HasPrefix(md, "# Coordination Experiment Report"))
	assert.Contains(t, md, "## Executive Summary")
	assert.Contains(t, md, "## Detailed Results")
	assert.Contains(t, md, "## Statistical Analysis")
	assert.Contains(t, md, "Skipped: insufficient groups")
	assert.Contains(t, md, "Skipped: insufficient data")
	assert.Contains(t, md, "| Low BW | 1.40 ± 0.00 | 30.0% | 0.0 | 0.0 |")
}

func TestWriteExcel_RoundTripFile(t *testing.T) {
	path := t.TempDir() + "/report.xlsx"
	require.NoError(t, WriteExcel(demoReport(), path))

	// A second write to the same path must overwrite cleanly.
	require.NoError(t, WriteExcel(demoReport(), path))
}
