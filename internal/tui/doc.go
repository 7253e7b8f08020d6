// SPDX-License-Identifier: MPL-2.0

// Package tui provides the small amount of terminal presentation the
// trainer needs: glamour-based Markdown rendering for hints and quiz
// questions, and a lipgloss progress bar for the exercise listing.
package tui
