// SPDX-License-Identifier: MIT

// Package main runs the solver cross-checks against the matrix package and
// reports every disagreement between Solve and Roots.
//
// Usage:
//
//	matcheck --size 16 --trials 100 --seed 7 --log-format json
//
// Exit status is 1 when any check fails.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Check failures are already logged.
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
