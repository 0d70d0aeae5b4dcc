package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dmelo/ec2console/console"
	"github.com/dmelo/ec2console/internal/config"
	"github.com/dmelo/ec2console/providers/aws"
)

var (
	version    = "0.1.0"
	configPath string
	region     string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "ec2console",
		Short: "Interactive EC2 instance console",
		Long: `ec2console is an interactive menu for managing EC2 instances.

List, create, start, stop, terminate, and tag instances in one region
from a single prompt-driven session. Credentials are read from
AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY (a .env file is honored).`,
		Version:      version,
		SilenceUsage: true,
		RunE:         runConsole,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file path")
	rootCmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (overrides config file)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func runConsole(cmd *cobra.Command, args []string) error {
	logger := newLogger(debug)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if region != "" {
		cfg.Region = region
	}

	// Ctrl-C cancels an in-flight AWS call instead of killing the
	// terminal session uncleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := aws.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	logger.Info().Str("region", cfg.Region).Msg("ec2console starting")

	c := console.New(provider, console.Config{
		Environment: cfg.Tags.Environment,
		Department:  cfg.Tags.Department,
	}, os.Stdin, os.Stdout, logger)

	return c.Run(ctx)
}

func newLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
