package relay

import "time"

// Snapshot holds the status values read from the relay at one point in
// time. It is built once per run and never mutated.
type Snapshot struct {
	CircuitsEstablished bool
	ConnectionCount     int
	UptimeSeconds       int64
	Version             string

	Nickname    string
	Address     string
	ORPort      string
	Fingerprint string

	// Consensus flags from the relay's router status entry, e.g.
	// Fast, Guard, Running, Stable, Valid.
	Flags []string

	BytesRead    int64
	BytesWritten int64

	// Restarted is the moment the relay process started, derived from
	// the reported uptime.
	Restarted time.Time

	// Accounting quota, present only when the relay has AccountingMax
	// configured.
	AccountingEnabled     bool
	AccountingBytesLeft   string
	AccountingIntervalEnd string
}

// HasFlag reports whether the consensus assigned the given flag.
func (s *Snapshot) HasFlag(name string) bool {
	for _, f := range s.Flags {
		if f == name {
			return true
		}
	}
	return false
}
