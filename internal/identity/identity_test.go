package identity

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	sid, err := CurrentString()
	if runtime.GOOS != "windows" {
		assert.ErrorIs(t, err, ErrUnsupported)
		return
	}
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sid, "S-1-"), sid)
}
