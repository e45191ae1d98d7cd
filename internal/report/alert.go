package report

// AlertLevel represents the severity derived from the relay's OR
// connection count.
type AlertLevel string

const (
	LevelOK       AlertLevel = "ok"
	LevelWarning  AlertLevel = "warning"
	LevelCritical AlertLevel = "critical"
)

// Glyph returns the status symbol leading the email subject.
func (l AlertLevel) Glyph() string {
	switch l {
	case LevelCritical:
		return "❌"
	case LevelWarning:
		return "⚠️"
	default:
		return "✅"
	}
}

// ClassifyAlert maps a connection count onto an alert level. Boundaries
// are strict: a count equal to a threshold stays at the less severe
// level. critThreshold must be below warnThreshold (enforced by config
// validation).
func ClassifyAlert(connectionCount, warnThreshold, critThreshold int) AlertLevel {
	switch {
	case connectionCount < critThreshold:
		return LevelCritical
	case connectionCount < warnThreshold:
		return LevelWarning
	default:
		return LevelOK
	}
}
