package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_DRIVER", "PORT", "PARCL_BASE_URL", "PARCL_TIMEOUT_SECONDS", "INGEST_WORKERS"} {
		t.Setenv(k, "")
	}
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("INGEST_QUEUE_SIZE", "not-a-number")
	t.Setenv("PARCL_RATE_PER_SEC", "2.5")

	cfg := FromEnv()
	if cfg.DatabaseDriver != "postgres" || cfg.Port != "8080" || cfg.ParclBaseURL != "https://api.parcllabs.com" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.ParclTimeout != 30*time.Second || cfg.IngestWorkers != 4 || cfg.IngestQueueSize != 100 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.ParclRatePerS != 2.5 {
		t.Fatalf("rate = %v", cfg.ParclRatePerS)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	cfg.DatabaseDriver = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unsupported driver accepted")
	}
}

func TestLoadTuningOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := "outlier_multiplier: 3\nfallback_radius_miles: 2.5\nproperty_types: [SINGLE_FAMILY, TOWNHOUSE]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatal(err)
	}
	if tun.OutlierMultiplier != 3 || tun.FallbackRadiusMiles != 2.5 || len(tun.PropertyTypes) != 2 {
		t.Fatalf("overlay not applied: %+v", tun)
	}
	if tun.OutlierMinSamples != 3 || tun.MonthsBack != 12 || tun.NormalSqftLow != 0.70 {
		t.Fatalf("defaults lost: %+v", tun)
	}
}

func TestLoadTuningErrors(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("months_back: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Fatal("zero month window accepted")
	}

	tun, err := LoadTuning("")
	if err != nil || tun.OutlierMultiplier != 2.5 {
		t.Fatalf("defaults = %+v, %v", tun, err)
	}
}
