package userchoice

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/bits"
	"time"

	"golang.org/x/text/encoding/unicode"
)

const blockSize = 8

// Per-lane multipliers. Index 0 of each row is replaced by the MD5 seed.
var (
	lane0 = [2][5]uint32{
		{0, 0xCF98B111, 0x87085B9F, 0x12CEB96D, 0x257E1D83},
		{0, 0xA27416F5, 0xD38396FF, 0x7C932B89, 0xBFA49F69},
	}
	lane1 = [2][5]uint32{
		{0, 0xEF0569FB, 0x689B6B9F, 0x79F8A395, 0xC3EFEA97},
		{0, 0xC31713DB, 0xDDCD1F0F, 0x59C3AF2D, 0x35BD1EC9},
	}
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeInput returns s as UTF-16LE followed by a NUL code unit. The
// terminator is part of the hashed data.
func EncodeInput(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("userchoice: encode input: %w", err)
	}
	return append(b, 0, 0), nil
}

// HashInput hashes a canonical input string (see FormatInput).
func HashInput(s string) (string, error) {
	data, err := EncodeInput(s)
	if err != nil {
		return "", err
	}
	if len(data) < blockSize {
		return "", fmt.Errorf("%w: %d bytes", ErrInputTooShort, len(data))
	}

	sum := md5.Sum(data)
	seed0 := binary.LittleEndian.Uint32(sum[0:4]) | 1
	seed1 := binary.LittleEndian.Uint32(sum[4:8]) | 1

	lo, hi := scramble(data, seed0, seed1)
	var out [blockSize]byte
	binary.LittleEndian.PutUint32(out[0:4], lo)
	binary.LittleEndian.PutUint32(out[4:8], hi)
	return base64.StdEncoding.EncodeToString(out[:]), nil
}

// ComputeHash formats and hashes one association record.
func ComputeHash(assocID, userSID, progID string, ts time.Time) (string, error) {
	s, err := FormatInput(assocID, userSID, progID, ts)
	if err != nil {
		return "", err
	}
	return HashInput(s)
}

func swapHalves(v uint32) uint32 {
	return bits.RotateLeft32(v, 16)
}

// scramble runs both lanes over every whole 8-byte block of data and returns
// (h0^h1, acc0^acc1). A trailing partial block is ignored.
func scramble(data []byte, seed0, seed1 uint32) (uint32, uint32) {
	c0, c1 := lane0, lane1
	c0[0][0], c0[1][0] = seed0, seed1
	c1[0][0], c1[1][0] = seed0, seed1

	var h0, h1, acc0, acc1 uint32
	blocks := len(data) / blockSize
	for i := 0; i < blocks; i++ {
		for j := 0; j < 2; j++ {
			w := binary.LittleEndian.Uint32(data[i*blockSize+j*4:])
			k0, k1 := &c0[j], &c1[j]

			h0 += w
			h0 *= k0[0]
			h0 = swapHalves(h0) * k0[1]
			h0 = swapHalves(h0) * k0[2]
			h0 = swapHalves(h0) * k0[3]
			h0 = swapHalves(h0) * k0[4]
			acc0 += h0

			h1 += w
			h1 = swapHalves(h1)*k1[1] + h1*k1[0]
			h1 = (h1>>16)*k1[2] + h1*k1[3]
			h1 = swapHalves(h1)*k1[4] + h1
			acc1 += h1
		}
	}
	return h0 ^ h1, acc0 ^ acc1
}
