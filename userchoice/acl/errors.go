package acl

import "errors"

var (
	// ErrInvalidSID indicates a SID string or buffer could not be decoded.
	ErrInvalidSID = errors.New("acl: invalid SID")

	// ErrInvalidACL indicates an ACL buffer is malformed.
	ErrInvalidACL = errors.New("acl: invalid ACL")

	// ErrInvalidDescriptor indicates a security descriptor buffer is malformed.
	ErrInvalidDescriptor = errors.New("acl: invalid security descriptor")

	// ErrTooLarge indicates an ACL would exceed the 64 KiB AclSize limit.
	ErrTooLarge = errors.New("acl: ACL too large")
)
