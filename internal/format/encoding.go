package format

import "encoding/binary"

// Little-endian accessors for the security structures. Windows lays out
// every multi-byte ACL, ACE, and SID field little-endian except the 48-bit
// SID identifier authority, which is big-endian (see ReadAuthority).

// PutU16 writes a uint16 value to the buffer at the specified offset in little-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in little-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadAuthority decodes the big-endian 48-bit SID identifier authority.
func ReadAuthority(a [SIDAuthorityLen]byte) uint64 {
	var v uint64
	for _, x := range a {
		v = v<<8 | uint64(x)
	}
	return v
}

// PutAuthority encodes v as a big-endian 48-bit SID identifier authority.
func PutAuthority(v uint64) [SIDAuthorityLen]byte {
	var a [SIDAuthorityLen]byte
	for i := SIDAuthorityLen - 1; i >= 0; i-- {
		a[i] = byte(v)
		v >>= 8
	}
	return a
}
