package userchoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/userchoice/internal/testutil"
)

func TestFormatInput(t *testing.T) {
	s, err := FormatInput(".foo", testutil.TestUserSID, "FooApp.Document", testutil.TestTime)
	require.NoError(t, err)
	assert.Equal(t,
		".foos-1-5-21-1180699209-877415012-3182924384-1001fooapp.document01da6bc1516fea00"+
			"user choice set via windows user experience {d18b6dd5-6124-4341-9318-804003bafa0b}",
		s)

	data, err := EncodeInput(s)
	require.NoError(t, err)
	assert.Len(t, data, 2*len(s)+2)
	assert.Equal(t, []byte{0, 0}, data[len(data)-2:])
}

func TestFormatInputRejectsBadTime(t *testing.T) {
	for _, ts := range []time.Time{
		{},
		time.Date(1600, time.December, 31, 23, 59, 0, 0, time.UTC),
	} {
		_, err := FormatInput(".foo", testutil.TestUserSID, "x", ts)
		assert.ErrorIs(t, err, ErrTimestamp, ts.String())
	}
}

func TestComputeHash(t *testing.T) {
	tests := []struct {
		name   string
		assoc  string
		progID string
		ts     time.Time
		want   string
	}{
		{
			name:   "extension",
			assoc:  ".foo",
			progID: "FooApp.Document",
			ts:     testutil.TestTime,
			want:   "64Tu1JFwxcY=",
		},
		{
			name:   "seconds ignored",
			assoc:  ".foo",
			progID: "FooApp.Document",
			ts:     testutil.TestTime.Add(42*time.Second + 123*time.Millisecond),
			want:   "64Tu1JFwxcY=",
		},
		{
			name:   "next minute",
			assoc:  ".foo",
			progID: "FooApp.Document",
			ts:     testutil.TestTime.Add(time.Minute),
			want:   "y22V0AB9fbM=",
		},
		{
			name:   "scheme",
			assoc:  "http",
			progID: "ChromeHTML",
			ts:     testutil.TestTime,
			want:   "PDsmT2z6ag0=",
		},
		{
			name:   "txt",
			assoc:  ".txt",
			progID: "txtfile",
			ts:     time.Date(2021, time.June, 15, 8, 30, 0, 0, time.UTC),
			want:   "yYJkLsJdirw=",
		},
		{
			name:   "local zone",
			assoc:  ".foo",
			progID: "FooApp.Document",
			ts:     testutil.TestTime.In(time.FixedZone("UTC+2", 2*60*60)),
			want:   "64Tu1JFwxcY=",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeHash(tt.assoc, testutil.TestUserSID, tt.progID, tt.ts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeHashDeterministic(t *testing.T) {
	a, err := ComputeHash(".foo", testutil.TestUserSID, "FooApp.Document", testutil.TestTime)
	require.NoError(t, err)
	b, err := ComputeHash(".foo", testutil.TestUserSID, "FooApp.Document", testutil.TestTime)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeHashCaseInsensitive(t *testing.T) {
	lower, err := ComputeHash(".txt", testutil.TestUserSID, "txtfile", testutil.TestTime)
	require.NoError(t, err)
	upper, err := ComputeHash(".TXT", "s-1-5-21-1180699209-877415012-3182924384-1001", "TXTFILE", testutil.TestTime)
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func TestHashInput(t *testing.T) {
	_, err := HashInput("")
	assert.ErrorIs(t, err, ErrInputTooShort)
	_, err = HashInput("a")
	assert.ErrorIs(t, err, ErrInputTooShort)

	// "abc" plus the terminator is exactly one block.
	got, err := HashInput("abc")
	require.NoError(t, err)
	assert.Equal(t, "S0uiSASHgHM=", got)
}

func TestScramble(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	const seed0, seed1 = 0x12345679, 0x9abcdef1

	lo, hi := scramble(data, seed0, seed1)
	assert.Equal(t, uint32(0x4513c4a2), lo)
	assert.Equal(t, uint32(0x9326617c), hi)

	t.Run("trailing partial block ignored", func(t *testing.T) {
		padded := append(append([]byte{}, data...), 0xff, 0xee, 0xdd)
		plo, phi := scramble(padded, seed0, seed1)
		assert.Equal(t, lo, plo)
		assert.Equal(t, hi, phi)
	})

	t.Run("single block", func(t *testing.T) {
		blo, bhi := scramble(data[:8], seed0, seed1)
		assert.Equal(t, uint32(0x0b96dd3c), blo)
		assert.Equal(t, uint32(0x7437c7dd), bhi)
	})

	t.Run("zero input", func(t *testing.T) {
		zlo, zhi := scramble(make([]byte, 8), 1, 1)
		assert.Zero(t, zlo)
		assert.Zero(t, zhi)
	})
}
