package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSchema = `
tor?: {
	control_host?:     string
	control_port?:     int & >0 & <65536
	control_password?: string
}
smtp?: {
	host?:     string
	port?:     int & >0 & <65536
	username?: string
	password?: string
	use_tls?:  bool
}
email?: {
	from?: string
	to?:   string
}
report?: {
	relay_nickname?:       string
	min_connections_warn?: int & >=0
	min_connections_crit?: int & >=0
}
`

func writeTestFiles(t *testing.T, yaml string) (configPath, schemaPath string) {
	t.Helper()
	dir := t.TempDir()
	configPath = filepath.Join(dir, "report.yaml")
	schemaPath = filepath.Join(dir, "report.cue")
	if err := os.WriteFile(configPath, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0644); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}
	return configPath, schemaPath
}

func TestLoadConfig_Valid(t *testing.T) {
	configPath, schemaPath := writeTestFiles(t, `
tor:
  control_host: 10.0.0.5
  control_port: 9151
email:
  from: relay@example.org
  to: ops@example.org
report:
  relay_nickname: OnionPie
  min_connections_warn: 200
  min_connections_crit: 80
`)

	cfg, err := Load(configPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Tor.ControlHost != "10.0.0.5" || cfg.Tor.ControlPort != 9151 {
		t.Errorf("unexpected tor config: %+v", cfg.Tor)
	}
	if cfg.Report.MinConnectionsWarn != 200 || cfg.Report.MinConnectionsCrit != 80 {
		t.Errorf("unexpected thresholds: %+v", cfg.Report)
	}
	// Defaults fill in what the file leaves out.
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP port default = %d, want 587", cfg.SMTP.Port)
	}
	if cfg.SMTP.UseTLS == nil || !*cfg.SMTP.UseTLS {
		t.Errorf("use_tls should default to true")
	}
}

func TestLoadConfig_SchemaRejectsBadPort(t *testing.T) {
	configPath, schemaPath := writeTestFiles(t, `
tor:
  control_port: 99999999
`)
	if _, err := Load(configPath, schemaPath); err == nil {
		t.Fatal("Load() should reject an out-of-range port")
	}
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("TOR_CONTROL_HOST", "192.0.2.1")
	t.Setenv("EMAIL_TO", "ops@example.org")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "schemas/report.cue")
	if err != nil {
		t.Fatalf("Load() with absent file returned error: %v", err)
	}
	if cfg.Tor.ControlHost != "192.0.2.1" {
		t.Errorf("env host not applied: %+v", cfg.Tor)
	}
	if cfg.Email.To != "ops@example.org" {
		t.Errorf("env recipient not applied: %+v", cfg.Email)
	}
	if cfg.Tor.ControlPort != 9051 {
		t.Errorf("control port default = %d, want 9051", cfg.Tor.ControlPort)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	configPath, schemaPath := writeTestFiles(t, `
report:
  relay_nickname: FileNick
  min_connections_warn: 100
  min_connections_crit: 50
smtp:
  use_tls: true
`)
	t.Setenv("RELAY_NICKNAME", "EnvNick")
	t.Setenv("MIN_CONNECTIONS_WARN", "300")
	t.Setenv("SMTP_USE_TLS", "false")

	cfg, err := Load(configPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Report.RelayNickname != "EnvNick" {
		t.Errorf("nickname = %q, want env override", cfg.Report.RelayNickname)
	}
	if cfg.Report.MinConnectionsWarn != 300 {
		t.Errorf("warn threshold = %d, want 300", cfg.Report.MinConnectionsWarn)
	}
	if cfg.SMTP.UseTLS == nil || *cfg.SMTP.UseTLS {
		t.Errorf("SMTP_USE_TLS=false should override the file")
	}
}

func TestLoadConfig_BadEnvInteger(t *testing.T) {
	t.Setenv("MIN_CONNECTIONS_CRIT", "plenty")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "schemas/report.cue")
	if err == nil || !strings.Contains(err.Error(), "MIN_CONNECTIONS_CRIT") {
		t.Fatalf("Load() = %v, want MIN_CONNECTIONS_CRIT parse error", err)
	}
}
