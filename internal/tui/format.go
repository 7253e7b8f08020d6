// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders Markdown content for terminal display using the
// glamour auto style. width <= 0 disables word wrapping.
func RenderMarkdown(content string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

// RenderCode renders content as a fenced code block with syntax
// highlighting for lang.
func RenderCode(content, lang string, width int) (string, error) {
	return RenderMarkdown("```"+lang+"\n"+content+"\n```", width)
}
