package section

// Spec describes one named extraction target. Headings are candidate
// strings marking the start of the section, tried in order. Boundaries,
// when present, are candidate strings whose line-start occurrence marks
// where the section ends; without them the locator falls back to the
// next-heading heuristic. Keywords, when present, restrict the extracted
// text to lines mentioning at least one of them.
type Spec struct {
	Name       string   `json:"name"`
	Headings   []string `json:"headings"`
	Boundaries []string `json:"boundaries,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Filtered reports whether the spec's output passes through the keyword
// line filter.
func (s Spec) Filtered() bool {
	return len(s.Keywords) > 0
}

// DefaultSpecs returns the section configuration for course syllabi.
// The list is built once at startup and treated as read-only; it is safe
// to share across concurrent requests.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			Name:     "Late Policy",
			Headings: []string{"Homework:"},
			Keywords: []string{"late", "penalty"},
		},
		{
			Name:       "Grading Policy",
			Headings:   []string{"Grading Scale:", "Grading Scale"},
			Boundaries: []string{"Attendance", "Course Policies"},
		},
		{
			Name:       "Grading Weights",
			Headings:   []string{"Grade Evaluation:", "Grade Evaluation", "Graded Work:", "Graded Work"},
			Boundaries: []string{"Grading Scale"},
		},
	}
}
