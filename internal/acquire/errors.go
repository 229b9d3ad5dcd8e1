package acquire

import "fmt"

// InputError marks a user-correctable problem with the uploaded document
// (missing file, empty payload, unsupported format). Handlers map it to a
// client error.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// AcquisitionError means no text could be produced for the document: the
// text-layer path yielded nothing usable and the OCR path failed. It is
// fatal for the request; no partial text is ever returned in its place.
type AcquisitionError struct {
	Err error
}

func (e *AcquisitionError) Error() string { return fmt.Sprintf("acquire text: %v", e.Err) }

func (e *AcquisitionError) Unwrap() error { return e.Err }
