package format

import (
	"fmt"
)

// DescriptorLayout locates the parts of a self-relative security descriptor.
// A zero offset means the component is absent. Lengths are only filled for
// the SIDs and ACLs that are present.
type DescriptorLayout struct {
	Control  uint16
	OwnerOff int
	GroupOff int
	SACLOff  int
	SACLLen  int
	DACLOff  int
	DACLLen  int
}

// DecodeDescriptor validates the header of a SECURITY_DESCRIPTOR_RELATIVE and
// returns where its owner, group, and ACLs live. Registry keys expose their
// security this way, and many tools copy the regions verbatim, so this does
// not parse the ACLs themselves.
func DecodeDescriptor(b []byte) (DescriptorLayout, error) {
	if len(b) < SDHeaderSize {
		return DescriptorLayout{}, fmt.Errorf("descriptor: %w", ErrTruncated)
	}
	if b[SDRevisionOffset] != SDRevision {
		return DescriptorLayout{}, fmt.Errorf("descriptor: revision %d: %w", b[SDRevisionOffset], ErrRevision)
	}
	l := DescriptorLayout{
		Control:  ReadU16(b, SDControlOffset),
		OwnerOff: int(ReadU32(b, SDOwnerOffset)),
		GroupOff: int(ReadU32(b, SDGroupOffset)),
		SACLOff:  int(ReadU32(b, SDSACLOffset)),
		DACLOff:  int(ReadU32(b, SDDACLOffset)),
	}
	for _, off := range []int{l.OwnerOff, l.GroupOff} {
		if off == 0 {
			continue
		}
		if _, err := SIDLen(b, off); err != nil {
			return DescriptorLayout{}, fmt.Errorf("descriptor: %w", err)
		}
	}
	var err error
	if l.Control&SDControlSACLPresent != 0 && l.SACLOff != 0 {
		if l.SACLLen, err = ACLLen(b, l.SACLOff); err != nil {
			return DescriptorLayout{}, fmt.Errorf("descriptor: sacl: %w", err)
		}
	} else {
		l.SACLOff = 0
	}
	if l.Control&SDControlDACLPresent != 0 && l.DACLOff != 0 {
		if l.DACLLen, err = ACLLen(b, l.DACLOff); err != nil {
			return DescriptorLayout{}, fmt.Errorf("descriptor: dacl: %w", err)
		}
	} else {
		// DACL present with a zero offset is a NULL DACL; callers see it as absent.
		l.DACLOff = 0
	}
	return l, nil
}

// SIDLen returns the encoded size of the SID starting at off.
func SIDLen(b []byte, off int) (int, error) {
	if off < 0 || off+SIDHeaderSize > len(b) {
		return 0, fmt.Errorf("sid: %w", ErrTruncated)
	}
	n := SIDHeaderSize + int(b[off+SIDSubCountOffset])*SIDSubAuthoritySize
	if off+n > len(b) {
		return 0, fmt.Errorf("sid: %w", ErrTruncated)
	}
	return n, nil
}

// ACLLen returns the AclSize of the ACL starting at off after checking it
// fits in b.
func ACLLen(b []byte, off int) (int, error) {
	if off < 0 || off+ACLHeaderSize > len(b) {
		return 0, fmt.Errorf("acl: %w", ErrTruncated)
	}
	n := int(ReadU16(b, off+ACLSizeOffset))
	if n < ACLHeaderSize || off+n > len(b) {
		return 0, fmt.Errorf("acl: size %d: %w", n, ErrTruncated)
	}
	return n, nil
}

// EncodeDescriptor assembles a self-relative security descriptor from
// already-encoded parts, laid out header, DACL, owner, group (the order
// Windows itself produces). Nil parts are omitted; a nil dacl yields a
// descriptor without SE_DACL_PRESENT.
func EncodeDescriptor(control uint16, owner, group, dacl []byte) []byte {
	size := SDHeaderSize + len(dacl) + len(owner) + len(group)
	b := make([]byte, size)
	b[SDRevisionOffset] = SDRevision
	control |= SDControlSelfRelative
	if dacl != nil {
		control |= SDControlDACLPresent
	} else {
		control &^= SDControlDACLPresent
	}
	PutU16(b, SDControlOffset, control)

	off := SDHeaderSize
	if dacl != nil {
		PutU32(b, SDDACLOffset, uint32(off))
		off += copy(b[off:], dacl)
	}
	if owner != nil {
		PutU32(b, SDOwnerOffset, uint32(off))
		off += copy(b[off:], owner)
	}
	if group != nil {
		PutU32(b, SDGroupOffset, uint32(off))
		copy(b[off:], group)
	}
	return b
}
