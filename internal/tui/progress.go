// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	progressPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// ProgressBar renders a fixed-width completion bar like
// "[####>------] 4/11". width is the inner bar width in cells; values
// below 1 collapse to a bare counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		return ""
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	if width < 1 {
		return fmt.Sprintf("%d/%d", done, total)
	}

	filled := done * width / total
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(progressDoneStyle.Render(strings.Repeat("#", filled)))
	if filled < width {
		sb.WriteString(progressDoneStyle.Render(">"))
		sb.WriteString(progressPendingStyle.Render(strings.Repeat("-", width-filled-1)))
	}
	sb.WriteByte(']')
	fmt.Fprintf(&sb, " %d/%d", done, total)
	return sb.String()
}
