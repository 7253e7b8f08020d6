// SPDX-License-Identifier: MPL-2.0

// Package info loads the exercise manifest (info.toml) that catalogs every
// exercise: its name, directory, kind tag, verification flags, and hint.
// Manifest problems are operational errors surfaced at load time, before
// any pipeline runs.
package info
