package section

import "strings"

// FilterLines keeps only the lines of text whose lowercased content
// contains at least one keyword as a substring. Surviving lines are
// trimmed and rejoined in their original order. An empty result means the
// section was located but held no relevant lines, which is distinct from
// the section not being found at all.
func FilterLines(text string, keywords []string) string {
	if len(keywords) == 0 {
		return text
	}
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				kept = append(kept, line)
				break
			}
		}
	}
	return strings.Join(kept, "\n")
}
