package acquire

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// TextAcquirer handles plain text files. Line endings are normalized so
// the section locator only ever sees \n breaks.
type TextAcquirer struct{}

func (a *TextAcquirer) Acquire(_ context.Context, r io.Reader, _ string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var b strings.Builder
	for scanner.Scan() {
		b.WriteString(strings.TrimRight(scanner.Text(), "\r"))
		b.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", &AcquisitionError{Err: err}
	}
	return b.String(), nil
}
