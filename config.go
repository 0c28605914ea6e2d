package asnval

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is passed uniformly into every validator. The lookup tables
// themselves (state codes, product catalog, trusted roots) are
// read-only package data; Config carries only per-run parameters.
type Config struct {
	VendorID   string `yaml:"vendor_id" json:"vendor_id"`
	ShipmentID string `yaml:"shipment_id" json:"shipment_id"`
	// StateCode is the expected two-digit GSTIN state code.
	StateCode string `yaml:"state_code" json:"state_code"`
	StateName string `yaml:"state_name" json:"state_name"`
	// EnabledValidators selects the pipeline subset. Execution order is
	// always canonical regardless of the order given here.
	EnabledValidators []ValidatorKey `yaml:"enabled_validators" json:"enabled_validators"`
	// DemoCertificates allows the certificate validator to fall back to
	// the built-in sample certificate set when the document carries no
	// CERT segments.
	DemoCertificates bool `yaml:"demo_certificates" json:"demo_certificates"`
}

// DefaultConfig returns a Config with all validators enabled,
// Maharashtra as the expected state, and the sample-certificate
// fallback on.
func DefaultConfig() *Config {
	return &Config{
		StateCode:         "27",
		StateName:         "Maharashtra",
		EnabledValidators: append([]ValidatorKey{}, canonicalValidatorOrder...),
		DemoCertificates:  true,
	}
}

// Enabled reports whether the given validator is selected. An empty
// selection enables nothing.
func (c *Config) Enabled(key ValidatorKey) bool {
	for _, k := range c.EnabledValidators {
		if k == key {
			return true
		}
	}
	return false
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
