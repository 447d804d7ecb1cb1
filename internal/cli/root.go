// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package cli implements the aggip command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gaissmai/aggip/internal/config"
	"github.com/gaissmai/aggip/internal/metrics"
)

// RootOptions holds global flags and the resolved settings for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string
	ConfigFile string
	EnvFile    string
	LogLevel   string

	// resolved in PersistentPreRunE
	Config  config.Config
	Log     *logrus.Logger
	Metrics *metrics.Recorder
}

// NewRootCommand creates the root command for the aggip CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "aggip",
		Short: "aggip - aggregate IPv4 prefixes",
		Long: `Aggregate IPv4 CIDR blocks into the minimal set of blocks
covering exactly the same addresses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output, same as --log-level debug")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file with AGGIP_* settings")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewAggregateCommand(opts))
	cmd.AddCommand(NewSplitCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// Execute runs the command line and returns the process exit code.
// Errors not yet reported by a command are printed to stderr.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// resolve layers defaults, config file, environment, env file and
// explicitly set flags, then sets up logging and metrics.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}

	if err := cfg.ApplyEnv(config.Environ()); err != nil {
		return errors.Wrap(err, "environment")
	}

	if o.EnvFile != "" {
		env, err := config.ReadEnvFile(o.EnvFile)
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(env); err != nil {
			return errors.Wrap(err, o.EnvFile)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, o.Verbose)
	if err != nil {
		return err
	}

	o.Config = cfg
	o.Log = log
	o.Metrics = metrics.NewRecorder()

	log.WithFields(logrus.Fields{
		"format":  cfg.Format,
		"workers": cfg.Workers,
		"config":  o.ConfigFile,
	}).Debug("settings resolved")

	return nil
}

// formatter returns the OutputFormatter for the resolved format.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Config.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // keep JSON and YAML output clean
	}
}

func newLogger(w io.Writer, level string, verbose bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   false,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
		return log, nil
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	log.SetLevel(lvl)
	return log, nil
}
