// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// descriptionStyle renders the per-invocation trace header written to the
// output buffer before a toolchain runs. Presentation only.
var descriptionStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// CargoCmd describes one action against the Rust toolchain, scoped to a
// single exercise binary and target directory.
type CargoCmd struct {
	// Subcommand is the cargo subcommand (build, clippy, test).
	Subcommand string
	// Args are appended after the common scoping arguments.
	Args []string
	// BinName selects the exercise (or solution) binary to operate on.
	BinName string
	// Description is written to the output buffer as a trace header.
	Description string
	// HideWarnings suppresses warning lines from this invocation's output.
	HideWarnings bool
	// TargetDir is cargo's target directory for build artifacts.
	TargetDir string
	// Dev enables the stricter flags used when working inside the tool's
	// own maintenance checkout. Never set in production use.
	Dev bool
	// Program overrides the cargo executable. Empty means "cargo".
	Program string
}

// Run builds the full command line and delegates to the command runner,
// writing the description header to output first.
func (c CargoCmd) Run(output *bytes.Buffer) (bool, error) {
	program := c.Program
	if program == "" {
		program = "cargo"
	}

	args := make([]string, 0, 10+len(c.Args))
	args = append(args, c.Subcommand)
	if c.Dev {
		// Maintenance checkouts keep the exercise crate under dev/.
		args = append(args, "--manifest-path", "dev/Cargo.toml")
	}
	args = append(args, "--color", "always", "-q", "--bin", c.BinName, "--target-dir", c.TargetDir)
	args = append(args, c.Args...)

	fmt.Fprintln(output, descriptionStyle.Render(c.Description))

	return Run(CommandSpec{
		Program:      program,
		Args:         args,
		Description:  c.Description,
		HideWarnings: c.HideWarnings,
	}, output)
}
