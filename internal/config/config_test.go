package config

import (
	"testing"

	"coordlab/domain/experiment"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Batch.Template != experiment.TemplateBandwidthSweep {
		t.Errorf("default template = %s", cfg.Batch.Template)
	}
	if cfg.Batch.Seed != 42 || cfg.Batch.Workers != 1 {
		t.Errorf("default batch config wrong: %+v", cfg.Batch)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("default log level = %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BATCH_TEMPLATE", experiment.TemplateAgentScaling)
	t.Setenv("BATCH_SEED", "7")
	t.Setenv("BATCH_WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Batch.Template != experiment.TemplateAgentScaling {
		t.Errorf("template = %s", cfg.Batch.Template)
	}
	if cfg.Batch.Seed != 7 || cfg.Batch.Workers != 4 {
		t.Errorf("batch config wrong: %+v", cfg.Batch)
	}
}

func TestLoad_RejectsUnknownTemplate(t *testing.T) {
	t.Setenv("BATCH_TEMPLATE", "nonsense")
	if _, err := Load(); err == nil {
		t.Error("unknown template should fail validation")
	}
}

func TestLoad_RejectsZeroWorkers(t *testing.T) {
	t.Setenv("BATCH_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Error("zero workers should fail validation")
	}
}
