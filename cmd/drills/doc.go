// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for drills.
//
// This package implements the Cobra command hierarchy: the root command
// plus subcommands for running and verifying exercises, watch mode, hints,
// and progress listing.
package cmd
