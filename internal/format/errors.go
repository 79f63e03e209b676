package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrRevision indicates a structure carried a revision we do not understand.
	ErrRevision = errors.New("format: unsupported revision")
	// ErrOverflow indicates an encoded structure would exceed its size field.
	ErrOverflow = errors.New("format: size overflow")
	// ErrTimeRange indicates a time cannot be represented as a FILETIME.
	ErrTimeRange = errors.New("format: time outside FILETIME range")
)
