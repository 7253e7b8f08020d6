// SPDX-License-Identifier: MPL-2.0

// Package exercise defines exercise descriptors and the verification
// pipeline that reduces a sequence of toolchain stages to one pass/fail
// verdict.
//
// Each exercise kind gets its own pipeline shape: Rust sources run
// build → clippy → (test and/or run-binary), circom sources run
// compile → prove → verify, and Markdown documents run a single interactive
// quiz stage. Stages execute strictly in order, short-circuiting on the
// first required failure, and append their transcript to one shared buffer
// that the caller owns.
package exercise
