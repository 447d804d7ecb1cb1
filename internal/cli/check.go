// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gaissmai/aggip"
)

// CheckResult is the output of the check command.
type CheckResult struct {
	Aggregated bool `json:"aggregated" yaml:"aggregated"`
	Input      int  `json:"input" yaml:"input"`
	Output     int  `json:"output" yaml:"output"`
}

func (r CheckResult) writeText(w io.Writer) error {
	if r.Aggregated {
		_, err := fmt.Fprintf(w, "aggregated: %d blocks\n", r.Input)
		return err
	}
	_, err := fmt.Fprintf(w, "not aggregated: %d blocks, %d after aggregation\n", r.Input, r.Output)
	return err
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var skipInvalid bool

	cmd := &cobra.Command{
		Use:   "check [FILE...]",
		Short: "Check that CIDR blocks are aggregated",
		Long: `Check that the CIDR blocks read from files or stdin are already
aggregated: masked, sorted, disjoint and not mergeable.

Exits with 1 if the input is not aggregated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			if cmd.Flags().Changed("skip-invalid") {
				cfg.SkipInvalid = skipInvalid
			}
			return runCheck(rootOpts, cmd, args, cfg.SkipInvalid)
		},
	}

	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "skip invalid lines instead of failing")

	return cmd
}

func runCheck(rootOpts *RootOptions, cmd *cobra.Command, files []string, skipInvalid bool) error {
	formatter := rootOpts.formatter(cmd)

	blocks, err := rootOpts.readInputs(cmd.InOrStdin(), files, skipInvalid)
	if err != nil {
		return fail(formatter, inputErrCode(err), err)
	}

	// parsed blocks are always valid
	result, err := aggip.Aggregate(blocks)
	if err != nil {
		return fail(formatter, ErrCodeInvalidInput, err)
	}

	res := CheckResult{
		Aggregated: aggip.IsAggregated(blocks),
		Input:      len(blocks),
		Output:     len(result),
	}

	if res.Aggregated {
		if err := formatter.Success(res); err != nil {
			return fail(formatter, ErrCodeIO, err)
		}
		return nil
	}

	const msg = "input is not aggregated"
	rootOpts.Log.WithField("blocks", len(blocks)).Debug(msg)
	if err := formatter.Failure(res, ErrCodeNotAggregated, msg); err != nil {
		return fail(formatter, ErrCodeIO, err)
	}
	return NewExitError(ExitFailure, msg)
}
