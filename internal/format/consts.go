// Package format houses the binary layout of the Windows security structures
// the association core reads and writes: SIDs, ACEs, ACLs, and self-relative
// security descriptors, plus the FILETIME and little-endian helpers used by
// both the descriptor codec and the UserChoice hash.
package format

// ============================================================================
// SID Layout
// ============================================================================
//
//	Offset  Size  Description
//	0x00    1     Revision (always 1)
//	0x01    1     SubAuthorityCount
//	0x02    6     IdentifierAuthority (big-endian 48-bit)
//	0x08    4*n   SubAuthority[n] (little-endian uint32 each)
const (
	SIDRevisionOffset      = 0x00
	SIDSubCountOffset      = 0x01
	SIDAuthorityOffset     = 0x02
	SIDSubAuthorityOffset  = 0x08
	SIDAuthorityLen        = SIDSubAuthorityOffset - SIDAuthorityOffset // 0x06
	SIDHeaderSize          = SIDSubAuthorityOffset                      // 0x08
	SIDSubAuthoritySize    = 4
	SIDRevision            = 1
	SIDMaxSubAuthorities   = 15
	SIDMaxSize             = SIDHeaderSize + SIDMaxSubAuthorities*SIDSubAuthoritySize
	SIDStringPrefix        = "S-"
	SIDAuthorityHexCutover = 1 << 32 // authorities at or above this render as hex
)

// ============================================================================
// ACL Layout
// ============================================================================
//
//	Offset  Size  Description
//	0x00    1     AclRevision
//	0x01    1     Sbz1
//	0x02    2     AclSize (header + all ACEs, bytes)
//	0x04    2     AceCount
//	0x06    2     Sbz2
//	0x08    ...   ACEs
const (
	ACLRevisionOffset = 0x00
	ACLSizeOffset     = 0x02
	ACLCountOffset    = 0x04
	ACLHeaderSize     = 0x08

	// ACLRevision is the revision for ACLs holding only basic ACE types.
	ACLRevision = 2
	// ACLRevisionDS is the revision for ACLs holding object ACEs.
	ACLRevisionDS = 4

	// ACLMaxSize is the largest ACL the 16-bit AclSize field can describe.
	ACLMaxSize = 0xFFFF
)

// ============================================================================
// ACE Layout
// ============================================================================
//
//	Offset  Size  Description
//	0x00    1     AceType
//	0x01    1     AceFlags
//	0x02    2     AceSize (bytes, including header)
//	0x04    4     Mask            (ACCESS_ALLOWED_ACE / ACCESS_DENIED_ACE)
//	0x08    ...   SidStart
const (
	ACETypeOffset    = 0x00
	ACEFlagsOffset   = 0x01
	ACESizeOffset    = 0x02
	ACEHeaderSize    = 0x04
	ACEMaskOffset    = 0x04
	ACESIDOffset     = 0x08
	ACEAccessMinSize = ACESIDOffset + SIDHeaderSize

	ACETypeAccessAllowed = 0x00
	ACETypeAccessDenied  = 0x01
	ACETypeSystemAudit   = 0x02

	ACEFlagObjectInherit    = 0x01
	ACEFlagContainerInherit = 0x02
	ACEFlagInherited        = 0x10
)

// ============================================================================
// Security Descriptor Layout (SECURITY_DESCRIPTOR_RELATIVE)
// ============================================================================
//
//	Offset  Size  Description
//	0x00    1     Revision (1)
//	0x01    1     Sbz1
//	0x02    2     Control
//	0x04    4     OffsetOwner
//	0x08    4     OffsetGroup
//	0x0C    4     OffsetSacl
//	0x10    4     OffsetDacl
const (
	SDRevisionOffset = 0x00
	SDControlOffset  = 0x02
	SDOwnerOffset    = 0x04
	SDGroupOffset    = 0x08
	SDSACLOffset     = 0x0C
	SDDACLOffset     = 0x10
	SDHeaderSize     = 0x14
	SDRevision       = 1

	SDControlDACLPresent       = 0x0004
	SDControlSACLPresent       = 0x0010
	SDControlDACLAutoInherited = 0x0400
	SDControlDACLProtected     = 0x1000
	SDControlSelfRelative      = 0x8000
)

// ============================================================================
// Registry Key Access Rights
// ============================================================================
// See: https://learn.microsoft.com/windows/win32/sysinfo/registry-key-security-and-access-rights
const (
	KeyQueryValue       uint32 = 0x0001
	KeySetValue         uint32 = 0x0002
	KeyCreateSubKey     uint32 = 0x0004
	KeyEnumerateSubKeys uint32 = 0x0008
	KeyNotify           uint32 = 0x0010
	Delete              uint32 = 0x00010000
	ReadControl         uint32 = 0x00020000
	WriteDAC            uint32 = 0x00040000
	WriteOwner          uint32 = 0x00080000

	KeyRead      = ReadControl | KeyQueryValue | KeyEnumerateSubKeys | KeyNotify
	KeyWrite     = ReadControl | KeySetValue | KeyCreateSubKey
	KeyAllAccess = 0x000F003F
)

// ============================================================================
// FILETIME
// ============================================================================
const (
	// FiletimeSize is the on-disk size of a FILETIME (two DWORDs).
	FiletimeSize = 8

	// FiletimeHalfBits is the width of dwHighDateTime / dwLowDateTime.
	FiletimeHalfBits = 32
)
