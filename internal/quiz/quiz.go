// SPDX-License-Identifier: MPL-2.0

package quiz

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrMalformedDocument is the sentinel error wrapped by
// MalformedDocumentError.
var ErrMalformedDocument = errors.New("malformed quiz document")

// QuestionAnswer holds the extracted question prompt and canonical answer.
// Both are stored as extracted; callers trim at the point of display or
// comparison.
type QuestionAnswer struct {
	Question string
	Answer   string
}

// MalformedDocumentError is returned when a quiz document lacks a
// heading-led question or a code-block answer.
type MalformedDocumentError struct {
	MissingQuestion bool
	MissingAnswer   bool
}

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	switch {
	case e.MissingQuestion && e.MissingAnswer:
		return "quiz: document has neither a question heading nor an answer code block"
	case e.MissingQuestion:
		return "quiz: document has no question heading"
	default:
		return "quiz: document has no answer code block"
	}
}

// Unwrap returns ErrMalformedDocument so callers can use errors.Is.
func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

// parser is the shared GFM-enabled goldmark instance. Parsing is the only
// capability used; no rendering is performed here.
var parser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Extract walks the document's top-level blocks in order and pulls out the
// question and the canonical answer. The first level-1 heading starts the
// question; while collecting, every paragraph's text runs are appended to
// it. The first code block is recorded as the answer and stops the walk
// immediately. A document missing either part is malformed input.
func Extract(source []byte) (QuestionAnswer, error) {
	doc := parser.Parser().Parse(text.NewReader(source))

	var question, answer strings.Builder
	inQuestion := false
	haveAnswer := false

	for n := doc.FirstChild(); n != nil && !haveAnswer; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 {
				inQuestion = true
				appendInlineText(&question, node, source)
			}
		case *ast.Paragraph:
			if inQuestion {
				appendInlineText(&question, node, source)
			}
		case *ast.FencedCodeBlock:
			writeBlockLines(&answer, node, source)
			haveAnswer = true
		case *ast.CodeBlock:
			writeBlockLines(&answer, node, source)
			haveAnswer = true
		}
	}

	if question.Len() == 0 || strings.TrimSpace(answer.String()) == "" {
		return QuestionAnswer{}, &MalformedDocumentError{
			MissingQuestion: question.Len() == 0,
			MissingAnswer:   strings.TrimSpace(answer.String()) == "",
		}
	}

	return QuestionAnswer{Question: question.String(), Answer: answer.String()}, nil
}

// appendInlineText collects the text runs directly inside a block node.
// Non-text inline nodes (emphasis, links, images) are ignored.
func appendInlineText(sb *strings.Builder, block ast.Node, source []byte) {
	for n := block.FirstChild(); n != nil; n = n.NextSibling() {
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
}

// writeBlockLines copies a code block's literal content.
func writeBlockLines(sb *strings.Builder, block ast.Node, source []byte) {
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
}

// Compare prints the trimmed question to output, prompts the operator on
// prompt, reads one answer line from in, and compares it trimmed against
// the trimmed canonical answer. The verdict and an explanation land in
// output; a failed read is an operational error, not a wrong answer.
func Compare(qa QuestionAnswer, in io.Reader, prompt io.Writer, output *bytes.Buffer) (bool, error) {
	fmt.Fprintln(output, strings.TrimSpace(qa.Question))
	fmt.Fprint(prompt, "Your answer: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("quiz: read answer: %w", err)
	}

	canonical := strings.TrimSpace(qa.Answer)
	if strings.TrimSpace(line) == canonical {
		fmt.Fprintln(output, "Correct!")
		return true, nil
	}
	fmt.Fprintf(output, "Incorrect. The correct answer was: %s\n", canonical)
	return false, nil
}

// Run loads the quiz document at path, extracts its question/answer pair,
// and performs the interactive compare. This is the only pipeline stage
// that suspends on operator input rather than a subprocess.
func Run(path string, in io.Reader, prompt io.Writer, output *bytes.Buffer) (bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("quiz: read document: %w", err)
	}

	qa, err := Extract(source)
	if err != nil {
		return false, err
	}

	return Compare(qa, in, prompt, output)
}
