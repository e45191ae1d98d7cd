// YAML config loader with CUE validation and environment overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TorConfig holds control-port connection settings. An empty password
// selects cookie authentication against the local control channel.
type TorConfig struct {
	ControlHost     string `yaml:"control_host"`
	ControlPort     int    `yaml:"control_port"`
	ControlPassword string `yaml:"control_password"`
}

// SMTPConfig holds mail transport settings. UseTLS selects STARTTLS on a
// plaintext connection; when false the connection uses implicit TLS.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	UseTLS   *bool  `yaml:"use_tls"`
}

// EmailConfig holds the report envelope.
type EmailConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ReportConfig holds report presentation and alerting settings.
type ReportConfig struct {
	RelayNickname      string `yaml:"relay_nickname"`
	MinConnectionsWarn int    `yaml:"min_connections_warn"`
	MinConnectionsCrit int    `yaml:"min_connections_crit"`
}

// Config is the root configuration for the reporter.
type Config struct {
	Tor    TorConfig    `yaml:"tor"`
	SMTP   SMTPConfig   `yaml:"smtp"`
	Email  EmailConfig  `yaml:"email"`
	Report ReportConfig `yaml:"report"`
}

// Load reads the YAML config, validates it against a CUE schema, applies
// environment overrides, and fills in defaults. A missing config file is
// not an error; the environment alone may carry the required settings.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Env-only configuration.
	case err != nil:
		return nil, err
	default:
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Tor.ControlHost == "" {
		c.Tor.ControlHost = "127.0.0.1"
	}
	if c.Tor.ControlPort == 0 {
		c.Tor.ControlPort = 9051
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.UseTLS == nil {
		t := true
		c.SMTP.UseTLS = &t
	}
	if c.Report.MinConnectionsWarn == 0 {
		c.Report.MinConnectionsWarn = 100
	}
	if c.Report.MinConnectionsCrit == 0 {
		c.Report.MinConnectionsCrit = 50
	}
}

// applyEnv overrides file values with the flat environment names the
// original configuration surface recognizes.
func (c *Config) applyEnv() error {
	envString("TOR_CONTROL_HOST", &c.Tor.ControlHost)
	envString("TOR_CONTROL_PASSWORD", &c.Tor.ControlPassword)
	envString("SMTP_HOST", &c.SMTP.Host)
	envString("SMTP_USERNAME", &c.SMTP.Username)
	envString("SMTP_PASSWORD", &c.SMTP.Password)
	envString("EMAIL_FROM", &c.Email.From)
	envString("EMAIL_TO", &c.Email.To)
	envString("RELAY_NICKNAME", &c.Report.RelayNickname)

	if err := envInt("TOR_CONTROL_PORT", &c.Tor.ControlPort); err != nil {
		return err
	}
	if err := envInt("SMTP_PORT", &c.SMTP.Port); err != nil {
		return err
	}
	if err := envInt("MIN_CONNECTIONS_WARN", &c.Report.MinConnectionsWarn); err != nil {
		return err
	}
	if err := envInt("MIN_CONNECTIONS_CRIT", &c.Report.MinConnectionsCrit); err != nil {
		return err
	}

	if v, ok := os.LookupEnv("SMTP_USE_TLS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SMTP_USE_TLS: %w", err)
		}
		c.SMTP.UseTLS = &b
	}
	return nil
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
