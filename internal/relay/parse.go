package relay

import "strings"

// countORConnEntries counts the entries in an orconn-status reply, one
// connection per non-empty line.
func countORConnEntries(status string) int {
	n := 0
	for _, line := range strings.Split(status, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// parseRouterStatusFlags extracts the consensus flags from a router
// status entry (GETINFO ns/id/<fingerprint>). Flags live on the line
// starting with "s", e.g. "s Fast Guard Running Stable Valid".
func parseRouterStatusFlags(entry string) []string {
	for _, line := range strings.Split(entry, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "s" {
			return fields[1:]
		}
	}
	return nil
}
