package experiment

import (
	"fmt"

	"coordlab/domain/core"
)

// Config holds the full parameterization of one experiment. It is a plain
// value: copy it freely, never mutate one after handing it to the runner.
type Config struct {
	WorldSize     int     `json:"world_size"`
	NumAgents     int     `json:"num_agents"`
	NumFood       int     `json:"num_food"`
	NumDangers    int     `json:"num_dangers"`
	BandwidthBits float64 `json:"bandwidth_bits"`
	VisionRadius  int     `json:"vision_radius"`
	NumRuns       int     `json:"num_runs"`
	NumSteps      int     `json:"num_steps"`

	// SeedBase is the base seed for run repetitions; run i uses SeedBase+i.
	// Nil means the simulation seeds itself (non-reproducible).
	SeedBase *int64 `json:"seed_base,omitempty"`
}

// DefaultConfig returns the baseline experiment parameterization.
func DefaultConfig() Config {
	return Config{
		WorldSize:     15,
		NumAgents:     8,
		NumFood:       10,
		NumDangers:    5,
		BandwidthBits: 1000,
		VisionRadius:  3,
		NumRuns:       5,
		NumSteps:      30,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig. Template entries
// only set the fields they sweep; everything else comes from here.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.WorldSize == 0 {
		c.WorldSize = def.WorldSize
	}
	if c.NumAgents == 0 {
		c.NumAgents = def.NumAgents
	}
	if c.NumFood == 0 {
		c.NumFood = def.NumFood
	}
	if c.NumDangers == 0 {
		c.NumDangers = def.NumDangers
	}
	if c.BandwidthBits == 0 {
		c.BandwidthBits = def.BandwidthBits
	}
	if c.VisionRadius == 0 {
		c.VisionRadius = def.VisionRadius
	}
	if c.NumRuns == 0 {
		c.NumRuns = def.NumRuns
	}
	if c.NumSteps == 0 {
		c.NumSteps = def.NumSteps
	}
	return c
}

// Validate rejects malformed configurations before any simulation starts.
func (c Config) Validate() error {
	if c.WorldSize < 1 {
		return core.NewConfigError("world_size", "must be >= 1")
	}
	if c.NumAgents < 1 {
		return core.NewConfigError("num_agents", "must be >= 1")
	}
	if c.NumFood < 0 {
		return core.NewConfigError("num_food", "must be >= 0")
	}
	if c.NumDangers < 0 {
		return core.NewConfigError("num_dangers", "must be >= 0")
	}
	if c.BandwidthBits <= 0 {
		return core.NewConfigError("bandwidth_bits", "must be > 0")
	}
	if c.VisionRadius < 0 {
		return core.NewConfigError("vision_radius", "must be >= 0")
	}
	if c.NumRuns < 1 {
		return core.NewConfigError("num_runs", "must be >= 1")
	}
	if c.NumSteps < 1 {
		return core.NewConfigError("num_steps", "must be >= 1")
	}
	return nil
}

// Hash produces a deterministic fingerprint of the configuration.
func (c Config) Hash() core.Hash {
	seed := "unseeded"
	if c.SeedBase != nil {
		seed = fmt.Sprintf("%d", *c.SeedBase)
	}
	return core.NewHash(
		fmt.Sprintf("world:%d", c.WorldSize),
		fmt.Sprintf("agents:%d", c.NumAgents),
		fmt.Sprintf("food:%d", c.NumFood),
		fmt.Sprintf("dangers:%d", c.NumDangers),
		fmt.Sprintf("bandwidth:%g", c.BandwidthBits),
		fmt.Sprintf("vision:%d", c.VisionRadius),
		fmt.Sprintf("runs:%d", c.NumRuns),
		fmt.Sprintf("steps:%d", c.NumSteps),
		fmt.Sprintf("seed:%s", seed),
	)
}
