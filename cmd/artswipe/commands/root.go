// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/artswipe/internal/config"
	"github.com/tomtom215/artswipe/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	root := newRootCmd()
	// main prints the returned error once.
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root.Execute()
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "artswipe",
		Short: "ArtSwipe - swipe-based artwork personalization",
		Long: `ArtSwipe learns what artworks a user likes from swipes and recommends
unseen artworks from a catalogue of precomputed feature vectors.

Users without likes get a random shuffle, users with a few likes are ranked
by similarity to what they liked, and users with enough swipes get their own
classifier.`,
		Version: versionString(),
		// Without a subcommand show help rather than silently succeeding.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	flags.StringVar(&opts.logFormat, "log-format", "", "override the configured log format (json or console)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRecommendCmd(opts),
		newCatalogueCmd(opts),
	)
	return cmd
}

// load reads configuration, applies flag overrides and initializes logging.
// Logs go to logOut so command output on stdout stays machine readable.
func (o *globalOptions) load(logOut io.Writer) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Version:   version,
		Output:    logOut,
	})
	return cfg, nil
}
