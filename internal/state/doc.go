// SPDX-License-Identifier: MPL-2.0

// Package state persists exercise completion across sessions in a small
// plain-text file: a do-not-edit banner, the current exercise name, then
// one line per completed exercise. Updates rewrite the file atomically.
package state
