package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// useConfigFile points the CLI at a config file for the duration of one
// test, re-running initConfig the way cobra's OnInitialize would.
func useConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	viper.Reset()
	cfgFile = path
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
	initConfig()
}

func TestBuildConfig_ReadsConfigFile(t *testing.T) {
	useConfigFile(t, `
max_concurrent_verifications: 2
cache:
  enabled: false
risk_thresholds:
  critical_below: 20
  high_below: 40
  medium_below: 60
`)

	cfg, err := buildConfig(analyzeCmd)
	if err != nil {
		t.Fatalf("Expected the config to resolve, got %v", err)
	}
	if cfg.MaxConcurrentVerifications != 2 {
		t.Errorf("Expected concurrency 2 from the file, got %d", cfg.MaxConcurrentVerifications)
	}
	if cfg.Cache.Enabled {
		t.Error("Expected caching disabled by the file")
	}
	if cfg.Risk.CriticalBelow != 20 || cfg.Risk.HighBelow != 40 || cfg.Risk.MediumBelow != 60 {
		t.Errorf("Expected risk thresholds 20/40/60 from the file, got %.0f/%.0f/%.0f",
			cfg.Risk.CriticalBelow, cfg.Risk.HighBelow, cfg.Risk.MediumBelow)
	}
	// Keys the file does not set keep their defaults.
	if cfg.AcceptanceThreshold != 70 {
		t.Errorf("Expected default acceptance threshold 70, got %.0f", cfg.AcceptanceThreshold)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", cfg.Timeout)
	}
}

func TestBuildConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("VERACITY_MAX_CONCURRENT_VERIFICATIONS", "3")
	useConfigFile(t, "max_concurrent_verifications: 2\n")

	cfg, err := buildConfig(analyzeCmd)
	if err != nil {
		t.Fatalf("Expected the config to resolve, got %v", err)
	}
	if cfg.MaxConcurrentVerifications != 3 {
		t.Errorf("Expected the environment to win over the file, got %d", cfg.MaxConcurrentVerifications)
	}
}

func TestBuildConfig_FlagOverridesAll(t *testing.T) {
	t.Setenv("VERACITY_CACHE_ENABLED", "true")
	useConfigFile(t, "cache:\n  enabled: true\n")

	flag := analyzeCmd.Flags().Lookup("no-cache")
	if err := flag.Value.Set("true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	flag.Changed = true
	noCache = true
	t.Cleanup(func() {
		_ = flag.Value.Set("false")
		flag.Changed = false
		noCache = false
	})

	cfg, err := buildConfig(analyzeCmd)
	if err != nil {
		t.Fatalf("Expected the config to resolve, got %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("Expected an explicitly set flag to win over env and file")
	}
}

func TestBuildConfig_RejectsInvalidFile(t *testing.T) {
	useConfigFile(t, "risk_thresholds:\n  critical_below: 90\n")

	_, err := buildConfig(analyzeCmd)
	if err == nil || !strings.Contains(err.Error(), "config:") {
		t.Errorf("Expected a validation error for inverted thresholds, got %v", err)
	}
}
