package analysis

// ============================================================================
// ANALYSIS INPUTS
// ============================================================================

// GroupedObservation is a single (group label, value) pair, the flattened
// input shape for analysis of variance.
type GroupedObservation struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// BandwidthPoint is one (bandwidth, mean efficiency) observation for curve
// fitting. Bandwidth must be > 0: the fit works in log-bandwidth space.
type BandwidthPoint struct {
	Bandwidth      float64 `json:"bandwidth"`
	MeanEfficiency float64 `json:"mean_efficiency"`
}

// PhaseLabel identifies one phase of a causal ablation test.
type PhaseLabel string

const (
	PhaseBaseline    PhaseLabel = "A" // factor present
	PhaseAblated     PhaseLabel = "B" // factor removed
	PhaseRestoration PhaseLabel = "C" // factor restored
)

// PhaseDataset is the ordered per-run efficiency sequence of one phase.
// Paired comparison across phases is only meaningful when the phases cover
// the same underlying seeds in the same order.
type PhaseDataset struct {
	Phase        PhaseLabel `json:"phase"`
	Efficiencies []float64  `json:"efficiencies"`
}

// ============================================================================
// SIGNIFICANCE RESULTS
// ============================================================================

// Alpha is the family-wise significance level used throughout the pipeline.
const Alpha = 0.05

// SignificanceResult holds an omnibus test outcome, optionally with the
// post-hoc pairwise table when the omnibus test rejected the null.
type SignificanceResult struct {
	FStatistic  float64              `json:"f_statistic"`
	PValue      float64              `json:"p_value"`
	Significant bool                 `json:"significant"`
	DFBetween   int                  `json:"df_between"`
	DFWithin    int                  `json:"df_within"`
	PostHoc     []PairwiseComparison `json:"post_hoc,omitempty"`
}

// PairwiseComparison is one row of a Tukey-style post-hoc table.
type PairwiseComparison struct {
	GroupA      string  `json:"group_a"`
	GroupB      string  `json:"group_b"`
	MeanDiff    float64 `json:"mean_diff"`
	Lower       float64 `json:"ci_lower"`
	Upper       float64 `json:"ci_upper"`
	AdjustedP   float64 `json:"adjusted_p"`
	Significant bool    `json:"significant"`
}

// TTestResult holds a two-sample comparison outcome. Paired records which
// variant actually ran: the paired test needs equal-length sequences and the
// analyzer falls back to the independent-samples test otherwise.
type TTestResult struct {
	Statistic   float64 `json:"t_statistic"`
	PValue      float64 `json:"p_value"`
	DF          float64 `json:"df"`
	Paired      bool    `json:"paired"`
	Significant bool    `json:"significant"`
}

// ============================================================================
// EFFECT SIZES
// ============================================================================

// EffectMagnitude buckets |Cohen's d| into the conventional ranges.
type EffectMagnitude string

const (
	EffectNegligible EffectMagnitude = "negligible" // |d| < 0.2
	EffectSmall      EffectMagnitude = "small"      // |d| < 0.5
	EffectMedium     EffectMagnitude = "medium"     // |d| < 0.8
	EffectLarge      EffectMagnitude = "large"      // |d| >= 0.8
)

// ClassifyEffect maps a standardized mean difference to its magnitude bucket.
func ClassifyEffect(cohensD float64) EffectMagnitude {
	abs := cohensD
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 0.2:
		return EffectNegligible
	case abs < 0.5:
		return EffectSmall
	case abs < 0.8:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// EffectSizeResult is a standardized mean difference with its qualitative
// interpretation and the raw (unstandardized) difference.
type EffectSizeResult struct {
	CohensD        float64         `json:"cohens_d"`
	Interpretation EffectMagnitude `json:"interpretation"`
	MeanDiff       float64         `json:"mean_diff"`
}

// ============================================================================
// REGRESSION RESULTS
// ============================================================================

// LinearFit is efficiency ~ Slope*log(bw) + Intercept.
type LinearFit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// QuadraticFit is efficiency ~ A*log(bw)^2 + B*log(bw) + C.
type QuadraticFit struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	R2 float64 `json:"r2"`
}

// OLSCoefficient is one term of the diagnostic OLS fit.
type OLSCoefficient struct {
	Term       string  `json:"term"`
	Estimate   float64 `json:"estimate"`
	StdErr     float64 `json:"std_err"`
	TStatistic float64 `json:"t_statistic"`
	PValue     float64 `json:"p_value"`
}

// OLSDiagnostics reports coefficient significance for the combined
// log(bw) + log(bw)^2 model. Diagnostic only: it never gates the
// inverted-U decision.
type OLSDiagnostics struct {
	ResidualDF   int              `json:"residual_df"`
	Coefficients []OLSCoefficient `json:"coefficients"`
}

// RegressionResult is the outcome of the competing linear/quadratic fits.
// Quadratic, OptimalBandwidth and Diagnostics are nil when the quadratic fit
// could not be obtained - absent, not zero. HasInvertedU is false in that
// case by definition.
type RegressionResult struct {
	Linear           LinearFit       `json:"linear"`
	Quadratic        *QuadraticFit   `json:"quadratic,omitempty"`
	HasInvertedU     bool            `json:"has_inverted_u"`
	OptimalBandwidth *float64        `json:"optimal_bandwidth,omitempty"`
	Diagnostics      *OLSDiagnostics `json:"diagnostics,omitempty"`
}

// ============================================================================
// CAUSAL ANALYSIS
// ============================================================================

// PhaseComparison bundles the significance test and effect size for one
// phase pair.
type PhaseComparison struct {
	TTest      TTestResult      `json:"t_test"`
	EffectSize EffectSizeResult `json:"effect_size"`
}

// CausalAnalysis is the full three-phase ablation readout. The analyzer only
// supplies the numbers; the causal inference (A close to C with B apart from
// both) is the caller's interpretation.
type CausalAnalysis struct {
	AvsB    PhaseComparison    `json:"a_vs_b"`
	BvsC    PhaseComparison    `json:"b_vs_c"`
	AvsC    PhaseComparison    `json:"a_vs_c"`
	Omnibus SignificanceResult `json:"omnibus"`
}
