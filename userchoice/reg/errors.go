package reg

import "errors"

var (
	// ErrNotExist indicates the key or value does not exist.
	ErrNotExist = errors.New("reg: not found")

	// ErrExist indicates a rename target already exists.
	ErrExist = errors.New("reg: already exists")

	// ErrAccessDenied indicates the handle or the key's DACL forbids the operation.
	ErrAccessDenied = errors.New("reg: access denied")

	// ErrHasSubkeys indicates DeleteSubKey was called on a key with children.
	ErrHasSubkeys = errors.New("reg: key has subkeys")

	// ErrInvalidName indicates an empty or malformed key or value name.
	ErrInvalidName = errors.New("reg: invalid name")

	// ErrClosed indicates use of a closed handle.
	ErrClosed = errors.New("reg: handle closed")

	// ErrUnsupported indicates the backend is unavailable on this platform.
	ErrUnsupported = errors.New("reg: unsupported on this platform")
)
