// Report builder assembling the fixed-layout relay status text.
package report

import (
	"fmt"
	"strings"
	"time"

	"tor-daily-report/internal/config"
	"tor-daily-report/internal/relay"
)

const (
	headerRule  = "============================================================"
	sectionRule = "----------------------------------------"
	footerRule  = "------------------------------------------------------------"
)

// expectedFlags are the consensus flags every healthy relay should carry.
var expectedFlags = []string{"Running", "Valid"}

// Builder renders a status snapshot into the report text and its subject
// line. It is purely deterministic given its inputs.
type Builder struct {
	cfg      config.ReportConfig
	hostname string
	styles   Styles
}

// NewBuilder returns a Builder for the given report settings and host.
func NewBuilder(cfg config.ReportConfig, hostname string, styles Styles) *Builder {
	return &Builder{cfg: cfg, hostname: hostname, styles: styles}
}

// Nickname resolves the display nickname: the relay's configured one,
// then the configured override, then a placeholder.
func (b *Builder) Nickname(snap *relay.Snapshot) string {
	if snap.Nickname != "" {
		return snap.Nickname
	}
	if b.cfg.RelayNickname != "" {
		return b.cfg.RelayNickname
	}
	return "Unknown"
}

// Subject builds the email subject line for the given alert level.
func (b *Builder) Subject(level AlertLevel, nickname string) string {
	return fmt.Sprintf("%s Tor Relay Report: %s", level.Glyph(), nickname)
}

// Alerts lists threshold and flag warnings for the snapshot. Empty for a
// healthy relay.
func (b *Builder) Alerts(snap *relay.Snapshot, level AlertLevel) []string {
	var alerts []string
	switch level {
	case LevelCritical:
		alerts = append(alerts, fmt.Sprintf(
			"⚠️  CRITICAL: Only %d connections (threshold: %d)",
			snap.ConnectionCount, b.cfg.MinConnectionsCrit))
	case LevelWarning:
		alerts = append(alerts, fmt.Sprintf(
			"⚠️  WARNING: Only %d connections (threshold: %d)",
			snap.ConnectionCount, b.cfg.MinConnectionsWarn))
	}

	if len(snap.Flags) > 0 {
		var missing []string
		for _, f := range expectedFlags {
			if !snap.HasFlag(f) {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			alerts = append(alerts, fmt.Sprintf(
				"⚠️  Missing expected flags: %s", strings.Join(missing, ", ")))
		}
	}
	return alerts
}

// Render assembles the full report text. now supplies the generation
// timestamp and the elapsed interval for the traffic averages.
func (b *Builder) Render(snap *relay.Snapshot, level AlertLevel, now time.Time) string {
	var s strings.Builder

	line := func(text string) {
		s.WriteString(text)
		s.WriteByte('\n')
	}
	field := func(label, value string) {
		line(fmt.Sprintf("  %-15s%s", label+":", value))
	}
	section := func(title string) {
		line(b.styles.Section.Render(title))
		line(b.styles.Rule.Render(sectionRule))
	}

	line(b.styles.Rule.Render(headerRule))
	line(b.styles.Title.Render("  TOR RELAY REPORT: " + b.Nickname(snap)))
	line("  Generated: " + now.Format("2006-01-02 15:04:05"))
	line("  Host: " + b.hostname)
	line(b.styles.Rule.Render(headerRule))
	line("")

	if alerts := b.Alerts(snap, level); len(alerts) > 0 {
		section("ALERTS")
		for _, a := range alerts {
			line(b.styles.Alert.Render(a))
		}
		line("")
	}

	section("STATUS")
	circuits := "✅ Established"
	if !snap.CircuitsEstablished {
		circuits = "⚠️ Not Established"
	}
	field("Circuits", circuits)
	field("Connections", fmt.Sprintf("%d", snap.ConnectionCount))
	field("Uptime", FormatUptime(snap.UptimeSeconds))
	field("Tor Version", snap.Version)
	line("")

	section("RELAY IDENTITY")
	field("Nickname", b.Nickname(snap))
	field("Address", snap.Address+":"+snap.ORPort)
	field("Fingerprint", snap.Fingerprint)
	line("")

	section("CONSENSUS FLAGS")
	if len(snap.Flags) > 0 {
		line("  " + strings.Join(snap.Flags, ", "))
	} else {
		line("  (none)")
	}
	line("")

	elapsed := now.Sub(snap.Restarted).Seconds()
	line(b.styles.Section.Render(fmt.Sprintf(
		"TRAFFIC SINCE RESTART (%s)", snap.Restarted.Format("01/02/2006 15:04"))))
	line(b.styles.Rule.Render(sectionRule))
	field("Read", FormatBytes(float64(snap.BytesRead)))
	field("Written", FormatBytes(float64(snap.BytesWritten)))
	field("Avg Read", FormatRate(snap.BytesRead, elapsed))
	field("Avg Write", FormatRate(snap.BytesWritten, elapsed))
	line("")

	if snap.AccountingEnabled {
		section("ACCOUNTING")
		field("Bytes Left", snap.AccountingBytesLeft)
		field("Interval End", snap.AccountingIntervalEnd)
		line("")
	}

	line(b.styles.Rule.Render(footerRule))
	line("Relay search: https://metrics.torproject.org/rs.html#details/" + snap.Fingerprint)

	return s.String()
}
