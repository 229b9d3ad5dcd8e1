// Package section segments raw syllabus text into named sections using
// heading candidates and heuristic end boundaries. All functions here are
// pure text processing: no I/O, no shared state, safe for concurrent use.
package section

import "strings"

// Locate finds the first heading candidate that occurs in text followed by
// a heading terminator (optional whitespace, then a colon run or a line
// break, then whitespace), and returns the trimmed content from just after
// the terminator up to the resolved end boundary.
//
// With a non-empty boundaries list the end is the earliest line-start
// occurrence of any boundary candidate; otherwise the end is the next line
// that looks like a new heading (uppercase letter followed by lowercase).
// Either way the end falls back to end-of-text.
//
// Candidates are tried in order and the first one that yields non-empty
// content wins; later candidates are never consulted. The second return
// is false when no candidate matched.
func Locate(text string, headings, boundaries []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, heading := range headings {
		start, ok := findHeading(text, lower, heading)
		if !ok {
			continue
		}
		end := resolveEnd(text, lower, start, boundaries)
		content := strings.TrimSpace(text[start:end])
		if content == "" {
			// Heading present but nothing under it; treat as no match
			// so weaker candidates still get a chance.
			continue
		}
		return content, true
	}
	return "", false
}

// findHeading scans for a case-insensitive occurrence of heading followed
// by a heading terminator and returns the offset where the section content
// starts. Occurrences without a terminator (the heading text appearing
// mid-sentence) are skipped.
func findHeading(text, lower, heading string) (int, bool) {
	needle := strings.ToLower(heading)
	if needle == "" {
		return 0, false
	}
	for from := 0; ; {
		i := strings.Index(lower[from:], needle)
		if i < 0 {
			return 0, false
		}
		pos := from + i + len(needle)
		if start, ok := afterTerminator(text, pos); ok {
			return start, true
		}
		from += i + 1
	}
}

// afterTerminator consumes the heading terminator starting at pos:
// optional whitespace, then one contiguous run of colons and line breaks,
// then any whitespace. A line break inside the leading whitespace counts
// as the required run when no colon follows it. Returns the content start
// offset.
func afterTerminator(text string, pos int) (int, bool) {
	n := len(text)
	w := pos
	sawBreak := false
	for w < n && isSpace(text[w]) {
		if text[w] == '\n' {
			sawBreak = true
		}
		w++
	}
	if w < n && text[w] == ':' {
		j := w
		for j < n && (text[j] == ':' || text[j] == '\n') {
			j++
		}
		for j < n && isSpace(text[j]) {
			j++
		}
		return j, true
	}
	if sawBreak {
		return w, true
	}
	return 0, false
}

// resolveEnd computes the end offset of a section starting at start.
// Boundary candidate text matches case-insensitively, while the generic
// next-heading check is case-sensitive on the first two characters of the
// line. The returned offset is never before start.
func resolveEnd(text, lower string, start int, boundaries []string) int {
	if len(boundaries) > 0 {
		return explicitEnd(lower, start, boundaries)
	}
	return genericEnd(text, start)
}

// explicitEnd returns the start of the earliest occurrence, at or after
// start, of any boundary candidate appearing immediately after a line
// break. This is a combined earliest-wins search across all candidates,
// not first-candidate-wins. Falls back to end-of-text.
func explicitEnd(lower string, start int, boundaries []string) int {
	end := len(lower)
	for _, b := range boundaries {
		needle := "\n" + strings.ToLower(b)
		if i := strings.Index(lower[start:], needle); i >= 0 && start+i < end {
			end = start + i
		}
	}
	return end
}

// genericEnd returns the offset of the next line break followed by an
// uppercase ASCII letter and a lowercase ASCII letter, a rough signature
// of a new heading line. Falls back to end-of-text.
//
// Known limitation: body text whose lines begin with capitalized words
// (bullet lists, sentences after hard wraps) triggers this boundary early.
func genericEnd(text string, start int) int {
	for i := start; i+2 < len(text); i++ {
		if text[i] == '\n' && isUpper(text[i+1]) && isLower(text[i+2]) {
			return i
		}
	}
	return len(text)
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
