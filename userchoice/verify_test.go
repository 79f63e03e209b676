package userchoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/userchoice/internal/testutil"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

func TestVerify(t *testing.T) {
	t.Run("tampered hash", func(t *testing.T) {
		w, r, _ := newTestWriter(t)
		require.NoError(t, w.Set(".foo", "FooApp.Document"))

		base := openBase(t, r)
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueHash, "AAAAAAAAAAA="))

		res, err := Verify(r, ".foo", testutil.TestUserSID)
		require.NoError(t, err)
		assert.Equal(t, VerifyMismatch, res)
	})

	t.Run("rewritten in a later minute", func(t *testing.T) {
		w, r, clock := newTestWriter(t)
		require.NoError(t, w.Set(".foo", "FooApp.Document"))

		clock.Advance(time.Minute)
		base := openBase(t, r)
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueProgID, "FooApp.Document"))

		res, err := Verify(r, ".foo", testutil.TestUserSID)
		require.NoError(t, err)
		assert.Equal(t, VerifyMismatch, res)
	})

	t.Run("other user", func(t *testing.T) {
		w, r, _ := newTestWriter(t)
		require.NoError(t, w.Set(".foo", "FooApp.Document"))

		res, err := Verify(r, ".foo", testutil.TestOtherSID)
		require.NoError(t, err)
		assert.Equal(t, VerifyMismatch, res)
	})

	t.Run("no record", func(t *testing.T) {
		r, _ := testutil.SetupRegistry(t)
		res, err := Verify(r, ".foo", testutil.TestUserSID)
		assert.ErrorIs(t, err, reg.ErrNotExist)
		assert.Equal(t, VerifyError, res)
	})
}

func TestVerifyResultString(t *testing.T) {
	assert.Equal(t, "match", VerifyMatch.String())
	assert.Equal(t, "mismatch", VerifyMismatch.String())
	assert.Equal(t, "error", VerifyError.String())
}
