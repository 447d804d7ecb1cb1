// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gaissmai/aggip"
	"github.com/gaissmai/aggip/internal/cidrtext"
)

// SplitResult is the output of the split command.
type SplitResult struct {
	First     string        `json:"first" yaml:"first"`
	Last      string        `json:"last" yaml:"last"`
	Addresses uint64        `json:"addresses" yaml:"addresses"`
	Blocks    []aggip.Block `json:"blocks" yaml:"blocks"`
}

func (r SplitResult) writeText(w io.Writer) error {
	for _, b := range r.Blocks {
		if _, err := fmt.Fprintln(w, cidrtext.Format(b, false)); err != nil {
			return err
		}
	}
	return nil
}

// NewSplitCommand creates the split command.
func NewSplitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split FIRST-LAST | split FIRST LAST",
		Short: "Split an address range into CIDR blocks",
		Long: `Split the inclusive IPv4 address range into the minimal list
of aligned CIDR blocks.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(rootOpts, cmd, args)
		},
	}

	return cmd
}

func runSplit(rootOpts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := rootOpts.formatter(cmd)

	var (
		iv  aggip.Interval
		err error
	)
	if len(args) == 1 {
		iv, err = cidrtext.ParseRange(args[0])
	} else {
		iv, err = cidrtext.ParseRangeBounds(args[0], args[1])
	}
	if err != nil {
		return fail(formatter, ErrCodeInvalidInput, err)
	}

	blocks := slices.Collect(aggip.Split(iv))
	rootOpts.Log.WithField("blocks", len(blocks)).Debugf("split %s", iv)

	res := SplitResult{
		First:     iv.First().String(),
		Last:      iv.Last().String(),
		Addresses: iv.Len(),
		Blocks:    blocks,
	}
	if err := formatter.Success(res); err != nil {
		return fail(formatter, ErrCodeIO, err)
	}
	return nil
}
