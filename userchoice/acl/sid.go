package acl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/userchoice/internal/format"
)

// SID is a decoded security identifier.
//
// The zero value is not a valid SID; use ParseSID or DecodeSID.
type SID struct {
	Revision       byte
	Authority      [format.SIDAuthorityLen]byte
	SubAuthorities []uint32
}

// localSystemBytes is S-1-5-18 in its binary form.
var localSystemBytes = []byte{
	0x01, 0x01, 0x00, 0x00, // Revision 1, one sub-authority
	0x00, 0x00, 0x00, 0x05, // SECURITY_NT_AUTHORITY
	0x12, 0x00, 0x00, 0x00, // SECURITY_LOCAL_SYSTEM_RID (18)
}

// LocalSystem is the well-known LocalSystem account, S-1-5-18.
var LocalSystem = mustDecodeSID(localSystemBytes)

func mustDecodeSID(b []byte) SID {
	s, n, err := DecodeSID(b)
	if err != nil || n != len(b) {
		panic(fmt.Sprintf("acl: invalid built-in SID %x: %v", b, err))
	}
	return s
}

// ParseSID parses the string form "S-1-<authority>-<sub1>-...".
func ParseSID(s string) (SID, error) {
	if !strings.HasPrefix(strings.ToUpper(s), format.SIDStringPrefix) {
		return SID{}, fmt.Errorf("%w: %q", ErrInvalidSID, s)
	}
	parts := strings.Split(s[len(format.SIDStringPrefix):], "-")
	if len(parts) < 2 {
		return SID{}, fmt.Errorf("%w: %q", ErrInvalidSID, s)
	}
	rev, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || rev != format.SIDRevision {
		return SID{}, fmt.Errorf("%w: revision in %q", ErrInvalidSID, s)
	}

	var auth uint64
	if a := parts[1]; strings.HasPrefix(a, "0x") || strings.HasPrefix(a, "0X") {
		auth, err = strconv.ParseUint(a[2:], 16, 48)
	} else {
		auth, err = strconv.ParseUint(a, 10, 48)
	}
	if err != nil {
		return SID{}, fmt.Errorf("%w: authority in %q", ErrInvalidSID, s)
	}

	subs := parts[2:]
	if len(subs) > format.SIDMaxSubAuthorities {
		return SID{}, fmt.Errorf("%w: too many sub-authorities in %q", ErrInvalidSID, s)
	}
	out := SID{
		Revision:       byte(rev),
		Authority:      format.PutAuthority(auth),
		SubAuthorities: make([]uint32, len(subs)),
	}
	for i, p := range subs {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return SID{}, fmt.Errorf("%w: sub-authority %q in %q", ErrInvalidSID, p, s)
		}
		out.SubAuthorities[i] = uint32(v)
	}
	return out, nil
}

// MustParseSID is ParseSID for literals known to be valid.
func MustParseSID(s string) SID {
	sid, err := ParseSID(s)
	if err != nil {
		panic(err)
	}
	return sid
}

// DecodeSID decodes a binary SID from the start of b and reports how many
// bytes it occupied.
func DecodeSID(b []byte) (SID, int, error) {
	n, err := format.SIDLen(b, 0)
	if err != nil {
		return SID{}, 0, fmt.Errorf("%w: %w", ErrInvalidSID, err)
	}
	if b[format.SIDRevisionOffset] != format.SIDRevision {
		return SID{}, 0, fmt.Errorf("%w: revision %d", ErrInvalidSID, b[format.SIDRevisionOffset])
	}
	count := int(b[format.SIDSubCountOffset])
	if count > format.SIDMaxSubAuthorities {
		return SID{}, 0, fmt.Errorf("%w: %d sub-authorities", ErrInvalidSID, count)
	}
	s := SID{
		Revision:       b[format.SIDRevisionOffset],
		SubAuthorities: make([]uint32, count),
	}
	copy(s.Authority[:], b[format.SIDAuthorityOffset:format.SIDSubAuthorityOffset])
	for i := range s.SubAuthorities {
		s.SubAuthorities[i] = format.ReadU32(b, format.SIDSubAuthorityOffset+i*format.SIDSubAuthoritySize)
	}
	return s, n, nil
}

// Len is the encoded size of the SID in bytes.
func (s SID) Len() int {
	return format.SIDHeaderSize + len(s.SubAuthorities)*format.SIDSubAuthoritySize
}

// Bytes returns the binary form of the SID.
func (s SID) Bytes() []byte {
	b := make([]byte, s.Len())
	b[format.SIDRevisionOffset] = s.Revision
	b[format.SIDSubCountOffset] = byte(len(s.SubAuthorities))
	copy(b[format.SIDAuthorityOffset:], s.Authority[:])
	for i, v := range s.SubAuthorities {
		format.PutU32(b, format.SIDSubAuthorityOffset+i*format.SIDSubAuthoritySize, v)
	}
	return b
}

// String renders the SID the way ConvertSidToStringSid does.
func (s SID) String() string {
	if s.Revision == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(format.SIDStringPrefix)
	sb.WriteString(strconv.Itoa(int(s.Revision)))
	sb.WriteByte('-')
	auth := format.ReadAuthority(s.Authority)
	if auth >= format.SIDAuthorityHexCutover {
		fmt.Fprintf(&sb, "0x%012X", auth)
	} else {
		sb.WriteString(strconv.FormatUint(auth, 10))
	}
	for _, v := range s.SubAuthorities {
		sb.WriteByte('-')
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// IsZero reports whether s is the zero value.
func (s SID) IsZero() bool {
	return s.Revision == 0 && len(s.SubAuthorities) == 0
}

// Equal reports whether two SIDs are identical (EqualSid).
func (s SID) Equal(o SID) bool {
	if s.Revision != o.Revision || s.Authority != o.Authority || len(s.SubAuthorities) != len(o.SubAuthorities) {
		return false
	}
	for i := range s.SubAuthorities {
		if s.SubAuthorities[i] != o.SubAuthorities[i] {
			return false
		}
	}
	return true
}
