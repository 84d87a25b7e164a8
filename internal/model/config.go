package model

import (
	"fmt"
	"time"
)

// RiskThresholds maps confidence to risk level via three ascending cut
// points. Confidence below CriticalBelow is critical, below HighBelow is
// high, below MediumBelow is medium, everything else is low. Expressing
// the four ranges as cut points keeps them contiguous by construction.
type RiskThresholds struct {
	CriticalBelow float64 `json:"critical_below" yaml:"critical_below"`
	HighBelow     float64 `json:"high_below" yaml:"high_below"`
	MediumBelow   float64 `json:"medium_below" yaml:"medium_below"`
}

// RiskFor maps a confidence score in [0,100] to its risk level.
func (t RiskThresholds) RiskFor(confidence float64) RiskLevel {
	switch {
	case confidence < t.CriticalBelow:
		return RiskCritical
	case confidence < t.HighBelow:
		return RiskHigh
	case confidence < t.MediumBelow:
		return RiskMedium
	default:
		return RiskLow
	}
}

// DomainDef registers a custom knowledge domain with its keyword sets.
// Primary keywords score 2.0 per hit, secondary 1.0, same as built-ins.
type DomainDef struct {
	Name      string   `json:"name" yaml:"name"`
	Primary   []string `json:"primary" yaml:"primary"`
	Secondary []string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// SourceOverrides adjusts the trusted source catalogue per run
type SourceOverrides struct {
	// Extra sources merged into the catalogue at registry construction.
	Extra []Source `json:"extra,omitempty" yaml:"extra,omitempty"`
	// Whitelist restricts a domain to the named source URLs. Empty list
	// means no restriction for that domain.
	Whitelist map[string][]string `json:"whitelist,omitempty" yaml:"whitelist,omitempty"`
	// Blacklist removes the named source URLs from a domain.
	Blacklist map[string][]string `json:"blacklist,omitempty" yaml:"blacklist,omitempty"`
}

// CacheConfig controls retrieval memoization
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// Config carries every tunable the pipeline recognizes. It is passed
// explicitly to each stage; nothing in the core reads the environment.
type Config struct {
	// AcceptanceThreshold is the confidence above which a claim is
	// considered adequately supported.
	AcceptanceThreshold float64 `json:"acceptance_threshold" yaml:"acceptance_threshold"`

	Risk          RiskThresholds  `json:"risk_thresholds" yaml:"risk_thresholds"`
	CustomDomains []DomainDef     `json:"custom_domains,omitempty" yaml:"custom_domains,omitempty"`
	Sources       SourceOverrides `json:"source_overrides,omitempty" yaml:"source_overrides,omitempty"`
	Cache         CacheConfig     `json:"cache" yaml:"cache"`

	MaxConcurrentVerifications int           `json:"max_concurrent_verifications" yaml:"max_concurrent_verifications"`
	Timeout                    time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConfig returns a configuration that passes Validate.
func DefaultConfig() Config {
	return Config{
		AcceptanceThreshold: 70,
		Risk: RiskThresholds{
			CriticalBelow: 30,
			HighBelow:     50,
			MediumBelow:   70,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		MaxConcurrentVerifications: 8,
		Timeout:                    30 * time.Second,
	}
}

// Validate checks the configuration at construction time so that stages
// can rely on it without re-checking.
func (c Config) Validate() error {
	if c.AcceptanceThreshold < 0 || c.AcceptanceThreshold > 100 {
		return fmt.Errorf("acceptance threshold %.1f outside [0,100]", c.AcceptanceThreshold)
	}
	t := c.Risk
	if !(0 < t.CriticalBelow && t.CriticalBelow < t.HighBelow && t.HighBelow < t.MediumBelow && t.MediumBelow < 100) {
		return fmt.Errorf("risk thresholds %.1f/%.1f/%.1f must be strictly ascending inside (0,100)",
			t.CriticalBelow, t.HighBelow, t.MediumBelow)
	}
	if c.MaxConcurrentVerifications < 1 {
		return fmt.Errorf("max concurrent verifications %d must be at least 1", c.MaxConcurrentVerifications)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout %v must be positive", c.Timeout)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL %v must be positive when caching is enabled", c.Cache.TTL)
	}
	for _, d := range c.CustomDomains {
		if d.Name == "" {
			return fmt.Errorf("custom domain with empty name")
		}
		if len(d.Primary) == 0 && len(d.Secondary) == 0 {
			return fmt.Errorf("custom domain %q has no keywords", d.Name)
		}
	}
	for _, s := range c.Sources.Extra {
		if !ValidSourceType(s.Type) {
			return fmt.Errorf("override source %q has invalid type %q", s.URL, s.Type)
		}
		if s.Credibility < 0 || s.Credibility > 100 {
			return fmt.Errorf("override source %q credibility %.1f outside [0,100]", s.URL, s.Credibility)
		}
	}
	return nil
}
