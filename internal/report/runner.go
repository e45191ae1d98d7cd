// Runner orchestrating one fetch-classify-render-deliver cycle.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tor-daily-report/internal/config"
	"tor-daily-report/internal/relay"
)

// StatusProvider supplies one relay status snapshot per run.
type StatusProvider interface {
	Snapshot(ctx context.Context) (*relay.Snapshot, error)
}

// MailSender delivers a rendered report.
type MailSender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Runner performs a single reporting run: query the relay, classify,
// render, and deliver by mail or to the configured writer.
type Runner struct {
	cfg      *config.Config
	provider StatusProvider
	sender   MailSender
	out      io.Writer
	log      *slog.Logger
	hostname string
	styles   Styles
	now      func() time.Time
}

// NewRunner wires a runner. sender may be nil when the report only goes
// to out. styles apply to stdout delivery only; mail bodies are always
// plain.
func NewRunner(cfg *config.Config, provider StatusProvider, sender MailSender, out io.Writer, log *slog.Logger, hostname string, styles Styles) *Runner {
	return &Runner{
		cfg:      cfg,
		provider: provider,
		sender:   sender,
		out:      out,
		log:      log,
		hostname: hostname,
		styles:   styles,
		now:      time.Now,
	}
}

// Run executes one reporting cycle. With stdout set the mail sender is
// never invoked. A failed mail send still emits the rendered report to
// out before returning the error, so a cron mailer captures it.
func (r *Runner) Run(ctx context.Context, stdout bool) error {
	log := r.log.With("run_id", uuid.NewString())

	snap, err := r.provider.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("query relay status: %w", err)
	}

	level := ClassifyAlert(
		snap.ConnectionCount,
		r.cfg.Report.MinConnectionsWarn,
		r.cfg.Report.MinConnectionsCrit,
	)
	now := r.now()
	log.Info("snapshot collected",
		"nickname", snap.Nickname,
		"connections", snap.ConnectionCount,
		"uptime_s", snap.UptimeSeconds,
		"level", level,
	)

	if stdout {
		b := NewBuilder(r.cfg.Report, r.hostname, r.styles)
		fmt.Fprintln(r.out, b.Render(snap, level, now))
		return nil
	}

	b := NewBuilder(r.cfg.Report, r.hostname, PlainStyles())
	body := b.Render(snap, level, now)
	subject := b.Subject(level, b.Nickname(snap))

	if err := r.sender.Send(ctx, r.cfg.Email.From, r.cfg.Email.To, subject, body); err != nil {
		fmt.Fprintln(r.out, body)
		return fmt.Errorf("send report: %w", err)
	}

	log.Info("report sent", "to", r.cfg.Email.To, "subject", subject)
	return nil
}
