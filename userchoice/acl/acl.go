package acl

import (
	"fmt"
	"strings"

	"github.com/joshuapare/userchoice/internal/format"
)

// ACL is a discretionary or system access control list.
//
// A nil *ACL stands for a NULL DACL (no DACL at all), which grants everyone
// full access and is distinct from an empty ACL that grants nothing.
type ACL struct {
	Revision byte
	Entries  []ACE
}

// New returns an empty ACL with the basic revision.
func New(entries ...ACE) *ACL {
	return &ACL{Revision: format.ACLRevision, Entries: entries}
}

// Decode parses an ACL from b. Bytes beyond AclSize are ignored.
func Decode(b []byte) (*ACL, error) {
	size, err := format.ACLLen(b, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidACL, err)
	}
	rev := b[format.ACLRevisionOffset]
	if rev < format.ACLRevision || rev > format.ACLRevisionDS {
		return nil, fmt.Errorf("%w: revision %d", ErrInvalidACL, rev)
	}
	count := int(format.ReadU16(b, format.ACLCountOffset))
	a := &ACL{Revision: rev, Entries: make([]ACE, 0, count)}
	off := format.ACLHeaderSize
	for i := 0; i < count; i++ {
		ace, n, err := decodeACE(b[off:size])
		if err != nil {
			return nil, fmt.Errorf("ace %d: %w", i, err)
		}
		a.Entries = append(a.Entries, ace)
		off += n
	}
	return a, nil
}

// Size is the AclSize the encoded list would carry.
func (a *ACL) Size() int {
	n := format.ACLHeaderSize
	for _, e := range a.Entries {
		n += e.Len()
	}
	return n
}

// Bytes encodes the ACL.
func (a *ACL) Bytes() ([]byte, error) {
	size := a.Size()
	if size > format.ACLMaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	rev := a.Revision
	if rev == 0 {
		rev = format.ACLRevision
	}
	b := make([]byte, size)
	b[format.ACLRevisionOffset] = rev
	format.PutU16(b, format.ACLSizeOffset, uint16(size))
	format.PutU16(b, format.ACLCountOffset, uint16(len(a.Entries)))
	off := format.ACLHeaderSize
	for _, e := range a.Entries {
		off += copy(b[off:], e.Bytes())
	}
	return b, nil
}

// Clone returns a deep copy.
func (a *ACL) Clone() *ACL {
	if a == nil {
		return nil
	}
	out := &ACL{Revision: a.Revision, Entries: make([]ACE, len(a.Entries))}
	for i, e := range a.Entries {
		e.SID.SubAuthorities = append([]uint32(nil), e.SID.SubAuthorities...)
		if e.Raw != nil {
			e.Raw = append([]byte(nil), e.Raw...)
		}
		if e.pad != nil {
			e.pad = append([]byte(nil), e.pad...)
		}
		out.Entries[i] = e
	}
	return out
}

// RemoveDenied deletes every ACCESS_DENIED entry whose mask is exactly mask,
// regardless of which SID it names, scanning from the end the way DeleteAce
// is driven. It returns how many entries were removed.
func (a *ACL) RemoveDenied(mask uint32) int {
	removed := 0
	for i := len(a.Entries) - 1; i >= 0; i-- {
		if a.Entries[i].IsDenied(mask) {
			a.Entries = append(a.Entries[:i], a.Entries[i+1:]...)
			removed++
		}
	}
	return removed
}

// PrependDeny returns a new ACL whose first entry denies mask to sid,
// followed by every existing entry verbatim. The revision is preserved.
func (a *ACL) PrependDeny(sid SID, mask uint32) (*ACL, error) {
	out := &ACL{Revision: a.Revision, Entries: make([]ACE, 0, len(a.Entries)+1)}
	if out.Revision == 0 {
		out.Revision = format.ACLRevision
	}
	out.Entries = append(out.Entries, NewDenyACE(sid, mask))
	out.Entries = append(out.Entries, a.Clone().Entries...)
	if size := out.Size(); size > format.ACLMaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	return out, nil
}

// Denies reports whether any ACCESS_DENIED entry for sid covers any bit of mask.
// This is the part of the access check the registry backends need: a deny
// entry anywhere in the list wins over allows that follow it.
func (a *ACL) Denies(sid SID, mask uint32) bool {
	if a == nil {
		return false
	}
	for _, e := range a.Entries {
		if e.basic() && e.Type == AccessDenied && e.Mask&mask != 0 && e.SID.Equal(sid) {
			return true
		}
	}
	return false
}

// CountDenied counts ACCESS_DENIED entries with exactly mask; a zero SID
// matches any principal.
func (a *ACL) CountDenied(sid SID, mask uint32) int {
	if a == nil {
		return 0
	}
	n := 0
	for _, e := range a.Entries {
		if e.IsDenied(mask) && (sid.IsZero() || e.SID.Equal(sid)) {
			n++
		}
	}
	return n
}

func (a *ACL) String() string {
	if a == nil {
		return "<null dacl>"
	}
	parts := make([]string, len(a.Entries))
	for i, e := range a.Entries {
		parts[i] = e.String()
	}
	return fmt.Sprintf("acl(rev=%d)[%s]", a.Revision, strings.Join(parts, " "))
}
