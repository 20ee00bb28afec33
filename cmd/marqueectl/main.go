// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main provides marqueectl, an operator CLI that runs the
// recommendation pipeline locally without the HTTP server.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the persistent flags shared by every subcommand.
type cli struct {
	envFile    string
	configPath string
	logLevel   string
	jsonOutput bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "marqueectl",
		Short:         "Inspect and run Marquee daily recommendations",
		Long:          "marqueectl resolves schedule rules, computes selector positions and picks daily movies against the configured catalog.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}
	rootCmd.SetVersionTemplate("marqueectl version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", ".env", "Load environment variables from this file if it exists")
	flags.StringVarP(&c.configPath, "config", "c", "", "Config file (default: $CONFIG_PATH or the standard locations)")
	flags.StringVar(&c.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")
	flags.BoolVar(&c.jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		newPickCmd(c),
		newShortlistCmd(c),
		newResolveCmd(c),
		newIndexCmd(c),
		newPoolCmd(c),
		newScheduleCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads .env, then the configuration, then configures logging.
func (c *cli) setup() error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", c.envFile, err)
		}
	}

	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// The server may hold the badger directory lock.
	c.cfg.Store.Backend = config.StoreMemory

	logCfg := c.cfg.Logging.Options()
	logCfg.Format = "console"
	logCfg.Output = os.Stderr
	if c.logLevel != "" {
		if !logging.ValidLevel(c.logLevel) {
			return fmt.Errorf("invalid --log-level %q", c.logLevel)
		}
		logCfg.Level = c.logLevel
	}
	logging.Init(logCfg)
	return nil
}

// parseDate returns the UTC date for value, or today when value is empty.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if !validation.IsCalendarDate(value) {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return time.Parse(validation.DateLayout, value)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marqueectl %s\n", version)
		},
	}
}
