// Package metrics derives cheap local text features used for the
// human-readable summaries handed to the progress sink.
package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextStats holds basic features of a payload string.
type TextStats struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

// Stats computes byte, rune, word, and line counts for s.
func Stats(s string) TextStats {
	return TextStats{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
		Lines: countLines(s),
	}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of
// '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}

// summaryPreviewRunes caps how much payload text a summary repeats.
const summaryPreviewRunes = 80

// SummarizeResult renders a one-line, size-bounded description of a tool
// result for observational sinks. Error payloads keep their message (tools
// already phrase those for humans); success payloads get a preview plus
// size features.
func SummarizeResult(payload string, isError bool) string {
	if isError {
		return "error: " + preview(payload)
	}
	s := Stats(payload)
	return fmt.Sprintf("ok: %s (%d bytes, %d words)", preview(payload), s.Bytes, s.Words)
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= summaryPreviewRunes {
		return s
	}
	return string(r[:summaryPreviewRunes]) + "…"
}
