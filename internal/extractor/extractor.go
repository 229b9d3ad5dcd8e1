// Package extractor drives the per-document workflow: acquire text once,
// then resolve every configured section spec against it independently.
package extractor

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/coursekit/syllex/internal/acquire"
	"github.com/coursekit/syllex/internal/section"
)

// Result maps a section name to its extracted text. A nil entry means the
// section's heading never matched in any form (a valid outcome, not an
// error); an empty non-nil entry means the heading matched but the keyword
// filter kept no lines. Every configured spec has exactly one entry.
type Result map[string]*string

// Dispatch selects the acquirer for a filename.
type Dispatch interface {
	ForFile(filename string) (acquire.Acquirer, error)
}

// Service owns the static section configuration and the acquirer
// dispatch. It holds no per-request state and is safe for concurrent use.
type Service struct {
	dispatch Dispatch
	specs    []section.Spec
	log      zerolog.Logger
}

func New(dispatch Dispatch, specs []section.Spec, log zerolog.Logger) *Service {
	return &Service{dispatch: dispatch, specs: specs, log: log}
}

// Specs returns the configured section specs. Callers must treat the
// slice as read-only.
func (s *Service) Specs() []section.Spec {
	return s.specs
}

// Extract acquires the document's text and resolves every section spec
// against it. Text is acquired exactly once per document regardless of
// how many specs are configured. A spec that resolves to NotFound never
// short-circuits its siblings.
func (s *Service) Extract(ctx context.Context, r io.Reader, filename string) (Result, error) {
	acq, err := s.dispatch.ForFile(filename)
	if err != nil {
		return nil, err
	}

	text, err := acq.Acquire(ctx, r, filename)
	if err != nil {
		return nil, err
	}

	out := make(Result, len(s.specs))
	for _, spec := range s.specs {
		entry := resolve(text, spec)
		if entry == nil {
			s.log.Debug().Str("section", spec.Name).Msg("section not found")
		}
		out[spec.Name] = entry
	}
	return out, nil
}

// resolve runs the two-pass locate policy for one spec: boundary mode
// first when the spec declares boundaries, then the generic next-heading
// heuristic with the identical heading candidates before concluding
// NotFound.
func resolve(text string, spec section.Spec) *string {
	var content string
	var found bool
	if len(spec.Boundaries) > 0 {
		content, found = section.Locate(text, spec.Headings, spec.Boundaries)
		if !found {
			content, found = section.Locate(text, spec.Headings, nil)
		}
	} else {
		content, found = section.Locate(text, spec.Headings, nil)
	}
	if !found {
		return nil
	}
	if spec.Filtered() {
		content = section.FilterLines(content, spec.Keywords)
	}
	return &content
}
