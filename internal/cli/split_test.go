// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"split_text", []string{"split", "10.0.0.1-10.0.0.6"}},
		{"split_text", []string{"split", "10.0.0.1", "10.0.0.6"}},
		{"split_text", []string{"split", " 10.0.0.1 - 10.0.0.6 "}},
		{"split_json", []string{"split", "--format", "json", "10.0.0.1-10.0.0.6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			require.Equal(t, ExitSuccess, res.code, res.stderr)
			newGoldie(t).Assert(t, tt.name, []byte(res.stdout))
		})
	}
}

func TestSplitWholeSpace(t *testing.T) {
	res := execute(t, "", "split", "0.0.0.0-255.255.255.255")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "0.0.0.0/0\n", res.stdout)

	res = execute(t, "", "split", "0.0.0.1-255.255.255.254")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "64.0.0.0/2\n128.0.0.0/2\n")
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"reversed", []string{"split", "10.0.0.9-10.0.0.1"}, "Error [E002]: range 10.0.0.9-10.0.0.1"},
		{"no dash", []string{"split", "10.0.0.1"}, "missing '-' in range"},
		{"bad start", []string{"split", "foo-10.0.0.1"}, "parse range start"},
		{"bad end", []string{"split", "10.0.0.1", "bar"}, "parse range end"},
		{"ipv6", []string{"split", "::1-::2"}, "Error [E002]"},
		{"no args", []string{"split"}, "Error: accepts between 1 and 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			assert.Equal(t, ExitCommandError, res.code)
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}
