package htmltext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
)

// wrapper fills lines greedily. Words are separated by whitespace only, so
// hyphenated compounds are never split unless a single word is wider than
// the line.
type wrapper struct {
	width            int
	initialIndent    string
	subsequentIndent string
}

func (w wrapper) wrap(text string) []string {
	chunks := splitChunks(text)
	var lines []string
	var line []string
	for len(chunks) > 0 {
		indent := w.initialIndent
		if len(lines) > 0 {
			indent = w.subsequentIndent
		}
		width := w.width - ansi.PrintableRuneWidth(indent)
		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}
		line = line[:0]
		cur := 0
		for len(chunks) > 0 {
			n := ansi.PrintableRuneWidth(chunks[0])
			if cur+n > width {
				break
			}
			line = append(line, chunks[0])
			cur += n
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && ansi.PrintableRuneWidth(chunks[0]) > width {
			left := width - cur
			if width < 1 {
				left = 1
			}
			head, rest := splitColumns(chunks[0], left, len(line) == 0)
			if head != "" {
				line = append(line, head)
			}
			chunks[0] = rest
			if rest == "" {
				chunks = chunks[1:]
			}
		}
		for len(line) > 0 && isBlank(line[len(line)-1]) {
			line = line[:len(line)-1]
		}
		if len(line) > 0 {
			lines = append(lines, indent+strings.Join(line, ""))
		}
	}
	return lines
}

// splitChunks splits text into alternating word and whitespace runs. Every
// whitespace rune becomes a plain space.
func splitChunks(text string) []string {
	var chunks []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			chunks = append(chunks, normalizeChunk(text[start:i], inSpace))
			start = i
		}
		inSpace = space
	}
	if start < len(text) {
		chunks = append(chunks, normalizeChunk(text[start:], inSpace))
	}
	return chunks
}

func normalizeChunk(chunk string, space bool) string {
	if !space {
		return chunk
	}
	return strings.Repeat(" ", utf8.RuneCountInString(chunk))
}

func isBlank(chunk string) bool {
	return strings.TrimSpace(chunk) == ""
}

// splitColumns cuts s after at most limit display columns. With force set at
// least one rune is taken so a line always makes progress.
func splitColumns(s string, limit int, force bool) (string, string) {
	cols := 0
	for i, r := range s {
		n := ansi.PrintableRuneWidth(string(r))
		if cols+n > limit {
			if i == 0 && force {
				_, size := utf8.DecodeRuneInString(s)
				return s[:size], s[size:]
			}
			return s[:i], s[i:]
		}
		cols += n
	}
	return s, ""
}
