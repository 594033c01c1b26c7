// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package io provides small formatted-print helpers used for human-facing
// tracing output, separate from the structured logging in package log.
package io

import "fmt"

// Sf formats according to a format specifier and returns the string, exactly
// like fmt.Sprintf; it exists so formatting call sites read alongside the
// other Pf-family helpers in this package.
func Sf(msg string, args ...interface{}) string {
	return fmt.Sprintf(msg, args...)
}

// Pf prints a formatted message to stdout.
func Pf(msg string, args ...interface{}) {
	fmt.Printf(msg, args...)
}

// PfYel prints a formatted message in yellow.
func PfYel(msg string, args ...interface{}) {
	fmt.Printf("\x1b[33m"+msg+"\x1b[0m", args...)
}

// Pforan prints a formatted message in orange.
func Pforan(msg string, args ...interface{}) {
	fmt.Printf("\x1b[38;5;208m"+msg+"\x1b[0m", args...)
}
