package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tor-daily-report/internal/config"
	"tor-daily-report/internal/logging"
	"tor-daily-report/internal/mail"
	"tor-daily-report/internal/relay"
	"tor-daily-report/internal/report"
)

var (
	flagStdout     bool
	flagColor      bool
	flagConfigPath string
	flagSchemaPath string
)

var rootCmd = &cobra.Command{
	Use:   "tor-daily-report",
	Short: "Tor relay health report",
	Long:  "tor-daily-report queries a relay's control port and emails a status report. Run it from cron.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfigPath, flagSchemaPath)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg, !flagStdout); err != nil {
			return err
		}

		log := logging.New()
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}

		ctx := logging.NewContext(context.Background(), log)
		client, err := relay.Dial(ctx, cfg.Tor, cfg.Report.RelayNickname)
		if err != nil {
			return err
		}
		defer client.Close()

		var sender report.MailSender
		if !flagStdout {
			sender = mail.NewSender(cfg.SMTP)
		}

		styles := report.PlainStyles()
		if flagColor {
			styles = report.ColorStyles()
		}

		runner := report.NewRunner(cfg, client, sender, os.Stdout, log, hostname, styles)
		return runner.Run(ctx, flagStdout)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print the report to STDOUT instead of emailing it")
	rootCmd.Flags().BoolVar(&flagColor, "color", false, "Colorize STDOUT output")
	rootCmd.Flags().StringVar(&flagConfigPath, "config", "config/report.yaml", "Path to report configuration YAML")
	rootCmd.Flags().StringVar(&flagSchemaPath, "schema", "schemas/report.cue", "Path to CUE schema file")
}
