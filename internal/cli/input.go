// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"io"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gaissmai/aggip"
	"github.com/gaissmai/aggip/internal/cidrtext"
)

// stdinName is the file argument for standard input.
const stdinName = "-"

// readInputs parses all blocks from files, stdin if files is empty.
// With skipInvalid, bad lines are logged and counted instead of failing.
func (o *RootOptions) readInputs(stdin io.Reader, files []string, skipInvalid bool) ([]aggip.Block, error) {
	if len(files) == 0 {
		files = []string{stdinName}
	}

	var onInvalid cidrtext.InvalidFunc
	if skipInvalid {
		onInvalid = func(name string, line int, text string, err error) {
			o.Metrics.InvalidLines.Inc()
			o.Log.WithFields(logrus.Fields{
				"file": name,
				"line": line,
				"text": text,
			}).Warnf("skip invalid line: %v", errors.Cause(err))
		}
	}

	var blocks []aggip.Block
	for _, file := range files {
		var (
			part []aggip.Block
			err  error
		)

		if file == stdinName {
			part, err = cidrtext.Read(stdin, "stdin", onInvalid)
		} else {
			part, err = cidrtext.ReadFile(file, onInvalid)
		}
		if err != nil {
			return nil, err
		}

		o.Log.WithFields(logrus.Fields{"file": file, "blocks": len(part)}).Debug("input read")
		blocks = append(blocks, part...)
	}

	return blocks, nil
}

// inputErrCode classifies a read error for the error envelope.
func inputErrCode(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ErrCodeIO
	}
	return ErrCodeInvalidInput
}
