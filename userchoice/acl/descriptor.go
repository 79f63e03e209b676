package acl

import (
	"fmt"

	"github.com/joshuapare/userchoice/internal/format"
)

// Descriptor is a decoded self-relative security descriptor. Only the parts
// the registry backends care about are modelled; the SACL is kept raw.
type Descriptor struct {
	Control uint16
	Owner   *SID
	Group   *SID
	DACL    *ACL
	SACL    []byte
}

// DecodeDescriptor parses a SECURITY_DESCRIPTOR_RELATIVE.
func DecodeDescriptor(b []byte) (*Descriptor, error) {
	l, err := format.DecodeDescriptor(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	d := &Descriptor{Control: l.Control}
	if l.OwnerOff != 0 {
		s, _, err := DecodeSID(b[l.OwnerOff:])
		if err != nil {
			return nil, fmt.Errorf("%w: owner: %w", ErrInvalidDescriptor, err)
		}
		d.Owner = &s
	}
	if l.GroupOff != 0 {
		s, _, err := DecodeSID(b[l.GroupOff:])
		if err != nil {
			return nil, fmt.Errorf("%w: group: %w", ErrInvalidDescriptor, err)
		}
		d.Group = &s
	}
	if l.DACLOff != 0 {
		if d.DACL, err = Decode(b[l.DACLOff : l.DACLOff+l.DACLLen]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
	}
	if l.SACLOff != 0 {
		d.SACL = append([]byte(nil), b[l.SACLOff:l.SACLOff+l.SACLLen]...)
	}
	return d, nil
}

// Bytes encodes the descriptor in self-relative form. A SACL, if any, is
// dropped: registry writers in this module never touch it.
func (d *Descriptor) Bytes() ([]byte, error) {
	var dacl, owner, group []byte
	if d.DACL != nil {
		var err error
		if dacl, err = d.DACL.Bytes(); err != nil {
			return nil, err
		}
	}
	if d.Owner != nil {
		owner = d.Owner.Bytes()
	}
	if d.Group != nil {
		group = d.Group.Bytes()
	}
	return format.EncodeDescriptor(d.Control&^format.SDControlSACLPresent, owner, group, dacl), nil
}

// Protected reports whether the DACL is marked SE_DACL_PROTECTED.
func (d *Descriptor) Protected() bool {
	return d.Control&format.SDControlDACLProtected != 0
}
