package acl

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/userchoice/internal/format"
)

// ACE types this package understands structurally. Any other type is carried
// as raw bytes and re-emitted untouched.
const (
	AccessAllowed = format.ACETypeAccessAllowed
	AccessDenied  = format.ACETypeAccessDenied
)

// Registry access masks referenced by the UserChoice protection.
const (
	KeySetValue  = format.KeySetValue
	KeyAllAccess = format.KeyAllAccess
	KeyRead      = format.KeyRead
)

// ACE is a single access control entry.
//
// For ACCESS_ALLOWED and ACCESS_DENIED entries Mask and SID are decoded; for
// every other type Raw holds the full entry (header included) so it survives a
// decode/encode cycle byte for byte.
type ACE struct {
	Type  byte
	Flags byte
	Mask  uint32
	SID   SID
	Raw   []byte

	pad []byte // bytes between the SID and AceSize
}

// NewDenyACE builds an ACCESS_DENIED ACE for sid with the given mask.
func NewDenyACE(sid SID, mask uint32) ACE {
	return ACE{Type: AccessDenied, Mask: mask, SID: sid}
}

// NewAllowACE builds an ACCESS_ALLOWED ACE for sid with the given mask.
func NewAllowACE(sid SID, mask uint32) ACE {
	return ACE{Type: AccessAllowed, Mask: mask, SID: sid}
}

func (a ACE) basic() bool {
	return a.Raw == nil && (a.Type == AccessAllowed || a.Type == AccessDenied)
}

// Len is the AceSize of the entry.
func (a ACE) Len() int {
	if !a.basic() {
		return len(a.Raw)
	}
	return format.ACESIDOffset + a.SID.Len() + len(a.pad)
}

// Bytes encodes the entry.
func (a ACE) Bytes() []byte {
	if !a.basic() {
		return bytes.Clone(a.Raw)
	}
	b := make([]byte, a.Len())
	b[format.ACETypeOffset] = a.Type
	b[format.ACEFlagsOffset] = a.Flags
	format.PutU16(b, format.ACESizeOffset, uint16(len(b)))
	format.PutU32(b, format.ACEMaskOffset, a.Mask)
	n := copy(b[format.ACESIDOffset:], a.SID.Bytes())
	copy(b[format.ACESIDOffset+n:], a.pad)
	return b
}

// IsDenied reports whether the entry is an ACCESS_DENIED ACE with exactly mask.
func (a ACE) IsDenied(mask uint32) bool {
	return a.basic() && a.Type == AccessDenied && a.Mask == mask
}

func (a ACE) String() string {
	switch {
	case !a.basic():
		return fmt.Sprintf("ace(type=%d, %d bytes)", a.Type, len(a.Raw))
	case a.Type == AccessDenied:
		return fmt.Sprintf("deny(%s, %#x)", a.SID, a.Mask)
	default:
		return fmt.Sprintf("allow(%s, %#x)", a.SID, a.Mask)
	}
}

// decodeACE decodes one entry at the start of b.
func decodeACE(b []byte) (ACE, int, error) {
	if len(b) < format.ACEHeaderSize {
		return ACE{}, 0, fmt.Errorf("%w: truncated ace header", ErrInvalidACL)
	}
	size := int(format.ReadU16(b, format.ACESizeOffset))
	if size < format.ACEHeaderSize || size > len(b) {
		return ACE{}, 0, fmt.Errorf("%w: ace size %d", ErrInvalidACL, size)
	}
	typ := b[format.ACETypeOffset]
	if typ != AccessAllowed && typ != AccessDenied {
		return ACE{Type: typ, Flags: b[format.ACEFlagsOffset], Raw: bytes.Clone(b[:size])}, size, nil
	}
	if size < format.ACEAccessMinSize {
		return ACE{}, 0, fmt.Errorf("%w: access ace size %d", ErrInvalidACL, size)
	}
	sid, n, err := DecodeSID(b[format.ACESIDOffset:size])
	if err != nil {
		return ACE{}, 0, fmt.Errorf("%w: %w", ErrInvalidACL, err)
	}
	ace := ACE{
		Type:  typ,
		Flags: b[format.ACEFlagsOffset],
		Mask:  format.ReadU32(b, format.ACEMaskOffset),
		SID:   sid,
	}
	if end := format.ACESIDOffset + n; end < size {
		ace.pad = bytes.Clone(b[end:size])
	}
	return ace, size, nil
}
