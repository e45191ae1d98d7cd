// CUE schema validation plus declarative semantic checks
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	// Read YAML config
	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	yamlFile, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(yamlFile)

	// Read CUE schema
	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	// Merge values with schema
	final := configVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}

	// Validate final structure
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
//
// requireMail is false when the report goes to stdout; mail settings are
// then allowed to be absent. All violations surface before any network
// activity.
func Validate(cfg *Config, requireMail bool) error {
	if cfg.Tor.ControlHost == "" {
		return fmt.Errorf("tor: control_host is required")
	}
	if cfg.Tor.ControlPort < 1 || cfg.Tor.ControlPort > 65535 {
		return fmt.Errorf("tor: control_port %d out of range", cfg.Tor.ControlPort)
	}

	if cfg.Report.MinConnectionsWarn < 0 || cfg.Report.MinConnectionsCrit < 0 {
		return fmt.Errorf(
			"report: connection thresholds must be non-negative (warn=%d crit=%d)",
			cfg.Report.MinConnectionsWarn,
			cfg.Report.MinConnectionsCrit,
		)
	}
	if cfg.Report.MinConnectionsCrit >= cfg.Report.MinConnectionsWarn {
		return fmt.Errorf(
			"report: min_connections_crit (%d) must be below min_connections_warn (%d)",
			cfg.Report.MinConnectionsCrit,
			cfg.Report.MinConnectionsWarn,
		)
	}

	if !requireMail {
		return nil
	}

	if cfg.SMTP.Host == "" {
		return fmt.Errorf("smtp: host is required unless --stdout is set")
	}
	if cfg.SMTP.Port < 1 || cfg.SMTP.Port > 65535 {
		return fmt.Errorf("smtp: port %d out of range", cfg.SMTP.Port)
	}
	if cfg.Email.From == "" {
		return fmt.Errorf("email: from address is required unless --stdout is set")
	}
	if cfg.Email.To == "" {
		return fmt.Errorf("email: to address is required unless --stdout is set")
	}
	return nil
}
