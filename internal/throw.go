package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors up and down every stage of the pipeline (and through the
// per-pixel warp field) would add a ton of noise for conditions that are all
// caller mistakes. Instead, fatal conditions panic, and the public API
// recovers to convert them to an error. Non-fatal conditions (a segment that
// cannot be traced) are returned normally.

// Sentinel errors for malformed inputs.
var (
	ErrInvalidRaster     = errors.New("raster: buffer size does not match dimensions")
	ErrSingularTransform = errors.New("transform: matrix is not invertible")
	ErrInvalidParams     = errors.New("params: out of range")
)

// InvalidLoopError reports that the outline segments do not form one closed
// loop. Index is the position in the sorted output where no continuation was
// found, End the dangling endpoint.
type InvalidLoopError struct {
	Index int
	End   Point
}

func (e *InvalidLoopError) Error() string {
	return fmt.Sprintf("invalid loop: no segment starts at (%g,%g) after %d sorted segments", e.End.X, e.End.Y, e.Index+1)
}

// LineCountMismatchError reports destination and source line sets of
// different lengths.
type LineCountMismatchError struct {
	Destination int
	Source      int
}

func (e *LineCountMismatchError) Error() string {
	return fmt.Sprintf("line count mismatch: %d destination lines, %d source lines", e.Destination, e.Source)
}

// DegenerateLineError reports a zero-length destination line handed to the
// warp field.
type DegenerateLineError struct {
	Index int
}

func (e *DegenerateLineError) Error() string {
	return fmt.Sprintf("destination line %d has zero length", e.Index)
}

// DegenerateTraceError describes a segment the boundary tracer gave up on.
// It is never fatal: the segment is kept unsubdivided.
type DegenerateTraceError struct {
	Segment int
	Reason  string
	Steps   int
}

func (e *DegenerateTraceError) Error() string {
	return fmt.Sprintf("trace of segment %d abandoned after %d steps: %s", e.Segment, e.Steps, e.Reason)
}

// morphPanic marks a panic raised by fatal, so that recovery can tell our own
// failures apart from genuine bugs.
type morphPanic struct {
	err error
}

// Panic with err. The public entry points recover this with
// HandleMorphPanicRecover.
func fatal(err error) {
	panic(morphPanic{err})
}

// Panic with a formatted error.
func fatalf(format string, args ...interface{}) {
	fatal(errors.Errorf(format, args...))
}

// HandleMorphPanicRecover converts the value returned by recover() into an
// error. Panics that did not come from fatal are re-raised.
func HandleMorphPanicRecover(r interface{}) error {
	if r != nil {
		if p, ok := r.(morphPanic); ok {
			return p.err
		}
		panic(r)
	}
	return nil
}
