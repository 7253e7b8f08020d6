// SPDX-License-Identifier: MPL-2.0

// Package quiz verifies question/answer exercises written as Markdown
// documents.
//
// A quiz document follows a structural convention: the first level-1 heading
// opens the question, subsequent paragraphs extend it, and the first code
// block holds the canonical answer. Extraction is a pure walk over the
// goldmark AST; the interactive compare reads one line from the operator and
// checks it byte-for-byte against the trimmed canonical answer.
package quiz
