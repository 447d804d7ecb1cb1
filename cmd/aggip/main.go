// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command aggip aggregates IPv4 CIDR blocks.
//
//	aggip aggregate routes.txt.gz --prefix 10.0.0.0/8 --format json
//	aggip split 10.0.0.1-10.0.0.6
//	aggip check routes.txt
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gaissmai/aggip/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
