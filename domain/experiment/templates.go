package experiment

// TemplateEntry is one named configuration inside a batch template.
type TemplateEntry struct {
	Name   string `json:"name"`
	Config Config `json:"config"`
}

// Template kinds.
const (
	TemplateBandwidthSweep = "bandwidth_sweep"
	TemplateAgentScaling   = "agent_scaling"
	TemplateVisionRange    = "vision_range"
)

// Template returns the pre-configured batch for the given kind, or nil for
// an unknown kind. Each entry sets only the swept parameter plus the default
// five repetitions; the rest is filled by WithDefaults at run time.
func Template(kind string) []TemplateEntry {
	switch kind {
	case TemplateBandwidthSweep:
		return []TemplateEntry{
			{Name: "Low BW", Config: Config{BandwidthBits: 100, NumRuns: 5}},
			{Name: "Medium BW", Config: Config{BandwidthBits: 1000, NumRuns: 5}},
			{Name: "High BW", Config: Config{BandwidthBits: 10000, NumRuns: 5}},
		}
	case TemplateAgentScaling:
		return []TemplateEntry{
			{Name: "4 Agents", Config: Config{NumAgents: 4, NumRuns: 5}},
			{Name: "8 Agents", Config: Config{NumAgents: 8, NumRuns: 5}},
			{Name: "12 Agents", Config: Config{NumAgents: 12, NumRuns: 5}},
			{Name: "16 Agents", Config: Config{NumAgents: 16, NumRuns: 5}},
		}
	case TemplateVisionRange:
		return []TemplateEntry{
			{Name: "Vision 1", Config: Config{VisionRadius: 1, NumRuns: 5}},
			{Name: "Vision 3", Config: Config{VisionRadius: 3, NumRuns: 5}},
			{Name: "Vision 5", Config: Config{VisionRadius: 5, NumRuns: 5}},
			{Name: "Vision 10", Config: Config{VisionRadius: 10, NumRuns: 5}},
		}
	}
	return nil
}

// TemplateKinds lists the known template names.
func TemplateKinds() []string {
	return []string{TemplateBandwidthSweep, TemplateAgentScaling, TemplateVisionRange}
}
