package icns

import (
	"errors"
	"fmt"
)

// ErrorKind classifies encode failures.
type ErrorKind int

const (
	// DestinationUnavailable means the destination could not be opened or created.
	DestinationUnavailable ErrorKind = iota + 1

	// WriteFailed means the container could not be flushed to the destination.
	WriteFailed

	// NoRepresentationsProduced means every size failed to render.
	NoRepresentationsProduced
)

// Sentinel errors matched by errors.Is against an *EncodeError.
var (
	ErrDestinationUnavailable    = errors.New("destination unavailable")
	ErrWriteFailed               = errors.New("write failed")
	ErrNoRepresentationsProduced = errors.New("no representations produced")

	// ErrInvalidSource is wrapped by NoRepresentationsProduced when the
	// source image is nil or has no pixels.
	ErrInvalidSource = errors.New("invalid source image")
)

func (k ErrorKind) String() string {
	switch k {
	case DestinationUnavailable:
		return "destination_unavailable"
	case WriteFailed:
		return "write_failed"
	case NoRepresentationsProduced:
		return "no_representations_produced"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case DestinationUnavailable:
		return ErrDestinationUnavailable
	case WriteFailed:
		return ErrWriteFailed
	case NoRepresentationsProduced:
		return ErrNoRepresentationsProduced
	default:
		return nil
	}
}

// EncodeError is returned by every failing Encode call.
type EncodeError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("failed to encode icns %q: %v", e.Path, e.Kind.sentinel())
	if e.Err != nil {
		msg += "; " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *EncodeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return ee.Kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, path string, err error) *EncodeError {
	return &EncodeError{Kind: kind, Path: path, Err: err}
}
