// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"fmt"
)

// CircomCmd describes a compile action against the circom circuit toolchain.
type CircomCmd struct {
	// Subcommand is the circom subcommand (compile).
	Subcommand string
	// Args request the artifacts to produce (--r1cs, --wasm, --sym).
	Args []string
	// CircuitName is the circuit's base name; the source file is
	// <CircuitName>.circom under CircuitDir.
	CircuitName string
	// Description is written to the output buffer as a trace header.
	Description string
	// CircuitDir is the directory holding the circuit sources.
	CircuitDir string
	// Program overrides the circom executable. Empty means "circom".
	Program string
}

// Run builds the compile command line and delegates to the command runner.
func (c CircomCmd) Run(output *bytes.Buffer) (bool, error) {
	program := c.Program
	if program == "" {
		program = "circom"
	}

	args := make([]string, 0, 2+len(c.Args))
	args = append(args, c.Subcommand, c.CircuitName+".circom")
	args = append(args, c.Args...)

	fmt.Fprintln(output, descriptionStyle.Render(c.Description))

	return Run(CommandSpec{
		Program:     program,
		Args:        args,
		Dir:         c.CircuitDir,
		Description: c.Description,
	}, output)
}
