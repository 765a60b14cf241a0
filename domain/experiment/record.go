package experiment

// Metric keys as emitted by the simulation collaborator.
const (
	MetricNetEfficiency       = "net_efficiency"
	MetricCoordinationRate    = "coordination_rate"
	MetricFoodCollected       = "food_collected"
	MetricDangersHit          = "dangers_hit"
	MetricMessageDeliveryRate = "message_delivery_rate"
)

// RunRecord holds the raw metrics produced by one simulation run.
// One record exists per (config, seed) pair.
type RunRecord struct {
	NetEfficiency       float64 `json:"net_efficiency"`
	CoordinationRate    float64 `json:"coordination_rate"`
	FoodCollected       float64 `json:"food_collected"`
	DangersHit          float64 `json:"dangers_hit"`
	MessageDeliveryRate float64 `json:"message_delivery_rate"`
}

// RecordFromMetrics builds a RunRecord from a loosely keyed metric map.
// Missing keys default to 0 - the simulation boundary is the only place
// where untyped metric maps are tolerated.
func RecordFromMetrics(m map[string]float64) RunRecord {
	return RunRecord{
		NetEfficiency:       m[MetricNetEfficiency],
		CoordinationRate:    m[MetricCoordinationRate],
		FoodCollected:       m[MetricFoodCollected],
		DangersHit:          m[MetricDangersHit],
		MessageDeliveryRate: m[MetricMessageDeliveryRate],
	}
}

// DistStats captures mean and spread of a metric across runs.
// Std is the population standard deviation, consistent across the pipeline.
type DistStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// RangeStats extends DistStats with the observed extremes.
// INVARIANTS: Std >= 0 and Min <= Mean <= Max.
type RangeStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// CountStats captures mean and exact total for count-like metrics.
type CountStats struct {
	Mean  float64 `json:"mean"`
	Total float64 `json:"total"`
}

// AggregatedStats is the per-metric reduction of a run sequence.
// Derived deterministically; aggregating the same runs twice yields
// bit-identical values.
type AggregatedStats struct {
	Efficiency   RangeStats `json:"efficiency"`
	Coordination DistStats  `json:"coordination"`
	Food         CountStats `json:"food"`
	Dangers      CountStats `json:"dangers"`
	MsgDelivery  DistStats  `json:"msg_delivery"`
}
