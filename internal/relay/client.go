// Control-port client adapter over the bine control library.
package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strconv"
	"time"

	"github.com/cretz/bine/control"

	"tor-daily-report/internal/config"
	"tor-daily-report/internal/logging"
)

// ErrAuthentication marks a rejected control-port authentication
// attempt (bad password or unreadable cookie).
var ErrAuthentication = errors.New("control port authentication rejected")

// Client is a read-only client for a relay's control port. It holds one
// connection, scoped to a single reporting run.
type Client struct {
	conn    *control.Conn
	netConn net.Conn

	// nicknameFallback is used when the relay has no Nickname configured.
	nicknameFallback string
}

// Dial connects to the control port and authenticates. An empty password
// lets the library negotiate cookie authentication via PROTOCOLINFO. The
// returned client must be closed by the caller.
func Dial(ctx context.Context, cfg config.TorConfig, nicknameFallback string) (*Client, error) {
	addr := net.JoinHostPort(cfg.ControlHost, strconv.Itoa(cfg.ControlPort))

	var d net.Dialer
	netConn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect control port %s: %w", addr, err)
	}

	conn := control.NewConn(textproto.NewConn(netConn))
	if err := conn.Authenticate(cfg.ControlPassword); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	logging.FromContext(ctx).Debug("control port authenticated", "addr", addr)

	return &Client{conn: conn, netConn: netConn, nicknameFallback: nicknameFallback}, nil
}

// Close releases the control connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Snapshot performs the read-only query sequence and assembles the status
// snapshot. Any failure on a required key aborts the run.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.netConn.SetDeadline(deadline)
	}

	snap := &Snapshot{}
	var err error

	if snap.Version, err = c.getInfo("version"); err != nil {
		return nil, err
	}
	uptime, err := c.getInfo("uptime")
	if err != nil {
		return nil, err
	}
	if snap.UptimeSeconds, err = strconv.ParseInt(uptime, 10, 64); err != nil {
		return nil, fmt.Errorf("parse uptime %q: %w", uptime, err)
	}
	snap.Restarted = time.Now().Add(-time.Duration(snap.UptimeSeconds) * time.Second)

	read, err := c.getInfo("traffic/read")
	if err != nil {
		return nil, err
	}
	if snap.BytesRead, err = strconv.ParseInt(read, 10, 64); err != nil {
		return nil, fmt.Errorf("parse traffic/read %q: %w", read, err)
	}
	written, err := c.getInfo("traffic/written")
	if err != nil {
		return nil, err
	}
	if snap.BytesWritten, err = strconv.ParseInt(written, 10, 64); err != nil {
		return nil, fmt.Errorf("parse traffic/written %q: %w", written, err)
	}

	if snap.Fingerprint, err = c.getInfo("fingerprint"); err != nil {
		return nil, err
	}
	established, err := c.getInfo("status/circuit-established")
	if err != nil {
		return nil, err
	}
	snap.CircuitsEstablished = established == "1"

	// Optional keys keep their stem-era defaults.
	snap.Address = c.getInfoDefault("address", "unknown")
	snap.ConnectionCount = countORConnEntries(c.getInfoDefault("orconn-status", ""))
	snap.Nickname = c.getConf("Nickname", c.nicknameFallback)
	snap.ORPort = c.getConf("ORPort", "9001")
	snap.Flags = parseRouterStatusFlags(c.getInfoDefault("ns/id/"+snap.Fingerprint, ""))

	if c.getInfoDefault("accounting/enabled", "0") == "1" {
		snap.AccountingEnabled = true
		snap.AccountingBytesLeft = c.getInfoDefault("accounting/bytes-left", "")
		snap.AccountingIntervalEnd = c.getInfoDefault("accounting/interval-end", "")
	}

	logging.FromContext(ctx).Debug("status snapshot collected",
		"fingerprint", snap.Fingerprint,
		"connections", snap.ConnectionCount,
	)
	return snap, nil
}

func (c *Client) getInfo(key string) (string, error) {
	kvs, err := c.conn.GetInfo(key)
	if err != nil {
		return "", fmt.Errorf("GETINFO %s: %w", key, err)
	}
	if len(kvs) == 0 {
		return "", fmt.Errorf("GETINFO %s: empty reply", key)
	}
	return kvs[0].Val, nil
}

func (c *Client) getInfoDefault(key, fallback string) string {
	v, err := c.getInfo(key)
	if err != nil {
		return fallback
	}
	return v
}

func (c *Client) getConf(key, fallback string) string {
	kvs, err := c.conn.GetConf(key)
	if err != nil || len(kvs) == 0 || kvs[0].Val == "" {
		return fallback
	}
	return kvs[0].Val
}
