// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cidrtext

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/gaissmai/aggip"
)

// gzipMagic starts every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// InvalidFunc is called for a line that can't be parsed.
// name and line locate the text, err is the parse error.
type InvalidFunc func(name string, line int, text string, err error)

// Read parses one block per line from r. Gzip compressed input is detected
// and decompressed. Empty lines, '#' comments and anything after the first
// whitespace on a line are ignored.
//
// A line that can't be parsed aborts the read with an error wrapping the
// parse error and naming name:line, unless onInvalid is set, then the line
// is reported and skipped.
func Read(r io.Reader, name string, onInvalid InvalidFunc) ([]aggip.Block, error) {
	br := bufio.NewReader(r)

	if magic, err := br.Peek(len(gzipMagic)); err == nil && string(magic) == string(gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrapf(err, "gunzip %s", name)
		}
		defer zr.Close()
		return readLines(zr, name, onInvalid)
	}

	return readLines(br, name, onInvalid)
}

// ReadFile is like [Read] for the named file.
func ReadFile(path string, onInvalid InvalidFunc) ([]aggip.Block, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer file.Close()

	return Read(file, path, onInvalid)
}

func readLines(r io.Reader, name string, onInvalid InvalidFunc) ([]aggip.Block, error) {
	var blocks []aggip.Block

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		b, err := ParseBlock(fields[0])
		if err != nil {
			if onInvalid == nil {
				return nil, errors.Wrapf(err, "%s:%d", name, lineNo)
			}
			onInvalid(name, lineNo, fields[0], err)
			continue
		}
		blocks = append(blocks, b)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return blocks, nil
}
