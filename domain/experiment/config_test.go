package experiment

import (
	"errors"
	"testing"

	"coordlab/domain/core"
)

func TestWithDefaults_FillsZeroFields(t *testing.T) {
	cfg := Config{BandwidthBits: 100, NumRuns: 5}.WithDefaults()
	def := DefaultConfig()

	if cfg.BandwidthBits != 100 {
		t.Errorf("explicit bandwidth overwritten: %f", cfg.BandwidthBits)
	}
	if cfg.NumRuns != 5 {
		t.Errorf("explicit runs overwritten: %d", cfg.NumRuns)
	}
	if cfg.WorldSize != def.WorldSize || cfg.NumAgents != def.NumAgents || cfg.NumSteps != def.NumSteps {
		t.Errorf("defaults not filled: %+v", cfg)
	}
}

func TestValidate_RejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero bandwidth", func() Config { c := DefaultConfig(); c.BandwidthBits = 0; return c }()},
		{"negative bandwidth", func() Config { c := DefaultConfig(); c.BandwidthBits = -10; return c }()},
		{"no agents", func() Config { c := DefaultConfig(); c.NumAgents = 0; return c }()},
		{"no runs", func() Config { c := DefaultConfig(); c.NumRuns = 0; return c }()},
		{"negative vision", func() Config { c := DefaultConfig(); c.VisionRadius = -1; return c }()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestHash_SeedSensitive(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	if a.Hash() != b.Hash() {
		t.Error("identical configs must hash identically")
	}

	seed := int64(42)
	b.SeedBase = &seed
	if a.Hash() == b.Hash() {
		t.Error("seeded config must hash differently from unseeded")
	}
}

func TestTemplate_KnownKinds(t *testing.T) {
	for _, kind := range TemplateKinds() {
		entries := Template(kind)
		if len(entries) == 0 {
			t.Errorf("template %s is empty", kind)
		}
		for _, e := range entries {
			if e.Name == "" {
				t.Errorf("template %s has an unnamed entry", kind)
			}
			if e.Config.NumRuns != 5 {
				t.Errorf("template %s entry %s should carry 5 runs, got %d", kind, e.Name, e.Config.NumRuns)
			}
			if err := e.Config.WithDefaults().Validate(); err != nil {
				t.Errorf("template %s entry %s invalid after defaults: %v", kind, e.Name, err)
			}
		}
	}

	if Template("unknown") != nil {
		t.Error("unknown template kind should return nil")
	}
}
