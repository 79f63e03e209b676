package userchoice

import "errors"

var (
	// ErrTimestamp indicates a time that has no FILETIME representation.
	ErrTimestamp = errors.New("userchoice: timestamp out of range")

	// ErrInputTooShort indicates the encoded input is shorter than one
	// 8-byte block.
	ErrInputTooShort = errors.New("userchoice: hash input too short")

	// ErrMinuteBoundary indicates every attempt crossed into the next minute
	// before the write could land.
	ErrMinuteBoundary = errors.New("userchoice: minute boundary crossed on every attempt")

	// ErrLockState indicates a ProtectedLock method was called out of order.
	ErrLockState = errors.New("userchoice: invalid lock state")

	// ErrUnsupportedOS indicates the OS predates Windows 10 1703.
	ErrUnsupportedOS = errors.New("userchoice: unsupported OS version")

	// ErrInvalidAssocID indicates an empty or malformed association id.
	ErrInvalidAssocID = errors.New("userchoice: invalid association id")

	// ErrEmptyProgID indicates no ProgId was supplied.
	ErrEmptyProgID = errors.New("userchoice: empty ProgId")

	// ErrNoUser indicates the user SID could not be resolved.
	ErrNoUser = errors.New("userchoice: no user SID")
)
