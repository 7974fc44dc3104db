/*
Package commands implements the CLI command structure for the ditherfile
tool. It provides the root command and all subcommands for dither file
creation and inspection, with proper flag handling and command
coordination.
*/
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mxhf/pyhetdex/internal/config"
	"github.com/mxhf/pyhetdex/pkg/logger"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config     *config.Config
	Verbose    int
	NoProgress bool
	NoColor    bool
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "ditherfile [command] [flags]",
		Short: "HETDEX dither file creation and inspection tool",
		Long: `Ditherfile writes the dither files consumed by the HETDEX reduction
pipeline. A dither file describes the offset exposures of one IFU: one
row per dither with the exposure basename, the model basename, the
focal-plane shift and the seeing, flux normalisation and airmass of the
exposure.

IFUs are addressed by mounting slot, IFU head serial or spectrograph
serial, resolved through the instrument focal plane file. Files can be
written one at a time or for the whole focal plane in a single run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags that apply to all commands
	rootCmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v",
		"increase verbosity (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&opts.NoProgress, "no-progress", false,
		"disable progress reporting")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false,
		"disable colored output")

	// Add commands
	rootCmd.AddCommand(
		newCreateCommand(opts),
		newInspectCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand performs common initialization for all commands
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	// Initialize logger first
	log := logger.NewLogger(logger.Config{
		Verbosity: opts.Verbose,
	})

	log.WithFields(logger.Fields{
		"verbosity": opts.Verbose,
		"command":   cmd.Name(),
	}).Debug("Initializing command")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Command line flags win over the environment, but only when
	// they were actually given
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if cmd.Flags().Changed("no-progress") {
		cfg.NoProgress = opts.NoProgress
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = opts.NoColor
	}

	opts.Config = &cfg

	return nil
}
