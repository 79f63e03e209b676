package osver

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportsUserChoiceHash(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
		w10  bool
	}{
		{"zero", Info{}, false, false},
		{"windows 8.1", Info{6, 3, 9600}, false, false},
		{"windows 10 1607", Info{10, 0, 14393}, false, true},
		{"windows 10 1703", Info{10, 0, 15063}, true, true},
		{"windows 10 22H2", Info{10, 0, 19045}, true, true},
		{"windows 11", Info{10, 0, 22631}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.SupportsUserChoiceHash())
			assert.Equal(t, tt.w10, tt.info.IsWindows10OrLater())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "unknown", Info{}.String())
	assert.Equal(t, "10.0.19045", Info{10, 0, 19045}.String())
}

func TestCurrentIsCached(t *testing.T) {
	first := Current()
	assert.Equal(t, first, Current())
	if runtime.GOOS != "windows" {
		assert.Equal(t, Info{}, first)
	}
}
