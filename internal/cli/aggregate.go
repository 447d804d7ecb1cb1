// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gaissmai/aggip"
	"github.com/gaissmai/aggip/internal/cidrtext"
	"github.com/gaissmai/aggip/internal/config"
)

// AggregateOptions holds the flags of the aggregate command.
type AggregateOptions struct {
	Prefixes    CIDRList
	Output      string
	Workers     int
	SkipInvalid bool
	MetricsFile string
	Ranges      bool
}

// AggregateResult is the output of the aggregate command.
type AggregateResult struct {
	Input     int           `json:"input" yaml:"input"`
	Output    int           `json:"output" yaml:"output"`
	Addresses uint64        `json:"addresses" yaml:"addresses"`
	Blocks    []aggip.Block `json:"blocks" yaml:"blocks"`
	Ranges    []string      `json:"ranges,omitempty" yaml:"ranges,omitempty"`

	withRanges bool
}

func (r AggregateResult) writeText(w io.Writer) error {
	for _, b := range r.Blocks {
		if _, err := fmt.Fprintln(w, cidrtext.Format(b, r.withRanges)); err != nil {
			return err
		}
	}
	return nil
}

// NewAggregateCommand creates the aggregate command.
func NewAggregateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AggregateOptions{}

	cmd := &cobra.Command{
		Use:   "aggregate [FILE...]",
		Short: "Aggregate CIDR blocks",
		Long: `Aggregate CIDR blocks read from files or stdin, one per line.

A FILE of - is stdin, gzip compressed files are detected. Blank lines
and # comments are ignored, host bits are allowed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.apply(rootOpts.Config, cmd.Flags())
			err := runAggregate(rootOpts, opts, cfg, cmd, args)

			// failed runs are recorded too
			rootOpts.Metrics.ObserveRun(err)
			if cfg.MetricsFile == "" {
				return err
			}

			werr := rootOpts.Metrics.WriteFile(cfg.MetricsFile)
			switch {
			case werr == nil:
				rootOpts.Log.WithField("file", cfg.MetricsFile).Debug("metrics written")
			case err == nil:
				return fail(rootOpts.formatter(cmd), ErrCodeIO, werr)
			default:
				// the run error wins, keep the write error in the log
				rootOpts.Log.WithError(werr).Warn("metrics not written")
			}
			return err
		},
	}

	cmd.Flags().Var(&opts.Prefixes, "prefix", "additional CIDR blocks, repeatable and comma separated")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "number of worker goroutines, 0 for sequential")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip invalid lines instead of failing")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.Ranges, "ranges", false, "append the address range to each block")

	return cmd
}

// apply overlays the explicitly set command flags on cfg.
func (o *AggregateOptions) apply(cfg config.Config, flags *pflag.FlagSet) config.Config {
	if flags.Changed("workers") {
		cfg.Workers = o.Workers
	}
	if flags.Changed("skip-invalid") {
		cfg.SkipInvalid = o.SkipInvalid
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.MetricsFile
	}
	return cfg
}

func runAggregate(rootOpts *RootOptions, opts *AggregateOptions, cfg config.Config, cmd *cobra.Command, files []string) error {
	formatter := rootOpts.formatter(cmd)
	log := rootOpts.Log

	if err := cfg.Validate(); err != nil {
		return fail(formatter, ErrCodeGeneric, err)
	}

	blocks, err := rootOpts.readInputs(cmd.InOrStdin(), files, cfg.SkipInvalid)
	if err != nil {
		return fail(formatter, inputErrCode(err), err)
	}
	blocks = append(blocks, opts.Prefixes.Blocks...)

	start := time.Now()
	var result []aggip.Block
	if cfg.Workers > 0 {
		result, err = aggip.AggregateConcurrent(cmd.Context(), blocks, cfg.Workers)
	} else {
		result, err = aggip.Aggregate(blocks)
	}
	if err != nil {
		code := ErrCodeGeneric
		if errors.Is(err, aggip.ErrInvalidPrefixLength) {
			code = ErrCodeInvalidInput
		}
		return fail(formatter, code, err)
	}
	took := time.Since(start)

	// the result is valid, Coverage can't fail
	addrs, _ := aggip.Coverage(result)
	rootOpts.Metrics.ObserveAggregation(len(blocks), len(result), addrs, took)

	log.WithFields(logrus.Fields{
		"input":     len(blocks),
		"output":    len(result),
		"addresses": addrs,
	}).Info("aggregated")
	log.WithField("took", took).Debug("aggregation timing")

	res := AggregateResult{
		Input:      len(blocks),
		Output:     len(result),
		Addresses:  addrs,
		Blocks:     result,
		withRanges: opts.Ranges,
	}
	if res.Blocks == nil {
		res.Blocks = []aggip.Block{}
	}
	if opts.Ranges {
		res.Ranges = make([]string, 0, len(result))
		for _, b := range result {
			first, last := b.Range()
			res.Ranges = append(res.Ranges, first.String()+"-"+last.String())
		}
	}

	if err := writeOutput(formatter, opts.Output, res); err != nil {
		return fail(formatter, ErrCodeIO, err)
	}
	return nil
}

// writeOutput writes data to path, or to the formatter's writer
// if path is empty or "-".
func writeOutput(formatter *OutputFormatter, path string, data any) error {
	if path == "" || path == stdinName {
		return formatter.Success(data)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}

	toFile := *formatter
	toFile.Writer = file
	if err := toFile.Success(data); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(file.Close(), "close %s", path)
}
