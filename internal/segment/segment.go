// Package segment splits a raw model response into an ordered stream of typed
// segments: transcribed prose and diagram-recreation source. The marker
// grammar is the pair of literal tokens below; everything between a matched
// pair is diagram source, everything outside is prose.
package segment

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	StartMarker = "[[DIAGRAM_CODE_START]]"
	EndMarker   = "[[DIAGRAM_CODE_END]]"
)

// (?s) so diagram source may span newlines. An unmatched trailing start
// marker never matches and falls through as literal prose.
var diagramBlock = regexp.MustCompile(`(?s)\[\[DIAGRAM_CODE_START\]\](.*?)\[\[DIAGRAM_CODE_END\]\]`)

type Kind int

const (
	Prose Kind = iota
	Diagram
)

type Segment struct {
	Kind Kind
	Text string
}

// Parse walks the response once, preserving reading order. Whitespace-only
// prose spans produce no segment; diagram spans are always kept, even when
// empty after trimming.
func Parse(raw string) []Segment {
	var segs []Segment
	cursor := 0
	for _, loc := range diagramBlock.FindAllStringSubmatchIndex(raw, -1) {
		if prose := strings.TrimSpace(raw[cursor:loc[0]]); prose != "" {
			segs = append(segs, Segment{Kind: Prose, Text: prose})
		}
		segs = append(segs, Segment{Kind: Diagram, Text: stripFences(raw[loc[2]:loc[3]])})
		cursor = loc[1]
	}
	if tail := strings.TrimSpace(raw[cursor:]); tail != "" {
		segs = append(segs, Segment{Kind: Prose, Text: tail})
	}
	return segs
}

// stripFences removes markdown code fences the model sometimes wraps the
// diagram source in.
func stripFences(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, "```python", "")
	code = strings.ReplaceAll(code, "```", "")
	return strings.TrimSpace(code)
}

// SanitizeID reduces an identifier to characters that are safe in a filename:
// letters, digits and underscore. Idempotent.
func SanitizeID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
