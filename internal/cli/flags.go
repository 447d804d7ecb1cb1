// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/gaissmai/aggip"
	"github.com/gaissmai/aggip/internal/cidrtext"
)

var _ pflag.Value = (*CIDRList)(nil)

// CIDRList implements pflag.Value for a repeatable flag holding
// comma separated CIDR blocks.
type CIDRList struct {
	Blocks []aggip.Block
	texts  []string
}

// String returns the blocks as given on the command line.
func (cl *CIDRList) String() string {
	return "[" + strings.Join(cl.texts, ",") + "]"
}

// Set parses and appends the comma separated blocks in str.
func (cl *CIDRList) Set(str string) error {
	for text := range strings.SplitSeq(str, ",") {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		b, err := cidrtext.ParseBlock(text)
		if err != nil {
			return errors.Wrap(err, "cidr list")
		}
		cl.Blocks = append(cl.Blocks, b)
		cl.texts = append(cl.texts, text)
	}
	return nil
}

// Type returns the cidrList type.
func (cl *CIDRList) Type() string {
	return "cidrList"
}
