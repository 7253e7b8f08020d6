// SPDX-License-Identifier: MPL-2.0

// Package toolchain invokes the external toolchains that verify exercises.
//
// It provides a low-level command runner that captures interleaved
// stdout/stderr into a caller-supplied buffer, plus two invokers that build
// concrete command lines: CargoCmd for the Rust toolchain and CircomCmd for
// the circom circuit compiler. A process that runs and exits non-zero is a
// stage failure (boolean false); a process that cannot be spawned at all is
// an operational error. The two are never conflated.
package toolchain
