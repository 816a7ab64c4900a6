package runlog

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnknownLayout      = errors.New("unknown layout")
	ErrLengthMismatch     = errors.New("metric series length does not match epoch count")
)

// MalformedHeaderError reports a stream shorter than the fixed header.
type MalformedHeaderError struct {
	Need int
	Have int
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header: need %d bytes, have %d", e.Need, e.Have)
}

// TruncatedInputError reports a metric region shorter than the header declares.
// Need is -1 when 4 × epochs × width does not fit in an int.
type TruncatedInputError struct {
	Epochs uint64
	Need   int64
	Have   int64
}

func (e *TruncatedInputError) Error() string {
	if e.Need < 0 {
		return fmt.Sprintf("truncated input: %d epochs exceed addressable size, have %d metric bytes", e.Epochs, e.Have)
	}
	return fmt.Sprintf("truncated input: %d epochs need %d metric bytes, have %d", e.Epochs, e.Need, e.Have)
}

// TrailingBytesError reports bytes after the metric region in strict mode.
type TrailingBytesError struct {
	Extra int64
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("%d unexpected trailing bytes after metric region", e.Extra)
}

// IOError wraps a failure to open or read a log file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }
