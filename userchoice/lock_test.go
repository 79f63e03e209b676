package userchoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/userchoice/internal/testutil"
	"github.com/joshuapare/userchoice/userchoice/acl"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

const testBase = `SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\FileExts\.foo`

func openBase(t *testing.T, r reg.Registry) reg.Key {
	t.Helper()
	k, err := r.Root(reg.CurrentUser).CreateSubKey(testBase, reg.AccessAll)
	require.NoError(t, err)
	t.Cleanup(func() { k.Close() })
	return k
}

func choiceDACL(t *testing.T, r reg.Registry) *acl.ACL {
	t.Helper()
	k, err := r.Root(reg.CurrentUser).OpenSubKey(testBase+`\UserChoice`, reg.AccessReadControl)
	require.NoError(t, err)
	defer k.Close()
	d, err := k.DACL()
	require.NoError(t, err)
	return d
}

func TestProtectedLockDiscipline(t *testing.T) {
	r, _ := testutil.SetupRegistry(t)
	base := openBase(t, r)
	testutil.LockUserChoice(t, r, testBase, testutil.TestUser)
	testutil.LockUserChoice(t, r, testBase, acl.MustParseSID(testutil.TestOtherSID))

	before := choiceDACL(t, r)
	require.Equal(t, 2, before.CountDenied(acl.SID{}, acl.KeySetValue))
	allows := before.Clone()
	allows.RemoveDenied(acl.KeySetValue)

	l, err := NewProtectedLock(base, testutil.TestUser)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Unlock())
	unlocked := choiceDACL(t, r)
	assert.Zero(t, unlocked.CountDenied(acl.SID{}, acl.KeySetValue))
	assert.Equal(t, allows.Entries, unlocked.Entries)

	require.NoError(t, base.SetStringValue(UserChoiceKey, ValueProgID, "FooApp.Document"))

	require.NoError(t, l.Lock())
	assert.Empty(t, l.Skipped())
	locked := choiceDACL(t, r)
	require.Len(t, locked.Entries, len(allows.Entries)+1)
	first := locked.Entries[0]
	assert.Equal(t, byte(acl.AccessDenied), first.Type)
	assert.Equal(t, uint32(acl.KeySetValue), first.Mask)
	assert.True(t, first.SID.Equal(testutil.TestUser))
	assert.Equal(t, 1, locked.CountDenied(acl.SID{}, acl.KeySetValue))
	assert.Equal(t, allows.Entries, locked.Entries[1:])
	assert.Equal(t, before.Revision, locked.Revision)

	err = base.SetStringValue(UserChoiceKey, ValueProgID, "Other")
	assert.ErrorIs(t, err, reg.ErrAccessDenied)
}

func TestProtectedLockProtectionBit(t *testing.T) {
	r, _ := testutil.SetupRegistry(t)
	base := openBase(t, r)
	testutil.LockUserChoice(t, r, testBase, testutil.TestUser)

	k, err := r.Root(reg.CurrentUser).OpenSubKey(testBase+`\UserChoice`, reg.AccessReadControl|reg.AccessWriteDAC)
	require.NoError(t, err)
	d, err := k.DACL()
	require.NoError(t, err)
	require.NoError(t, k.SetDACL(d, reg.ProtectionOn))
	require.NoError(t, k.Close())

	l, err := NewProtectedLock(base, testutil.TestUser)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Unlock())
	protected, err := r.Protected(reg.CurrentUser, testBase+`\UserChoice`)
	require.NoError(t, err)
	assert.True(t, protected, "unlock must leave the protection bit alone")

	require.NoError(t, l.Lock())
	protected, err = r.Protected(reg.CurrentUser, testBase+`\UserChoice`)
	require.NoError(t, err)
	assert.False(t, protected)
}

func TestProtectedLockStates(t *testing.T) {
	r, _ := testutil.SetupRegistry(t)
	base := openBase(t, r)

	l, err := NewProtectedLock(base, testutil.TestUser)
	require.NoError(t, err)

	assert.ErrorIs(t, l.Lock(), ErrLockState)
	require.NoError(t, l.Unlock())
	assert.ErrorIs(t, l.Unlock(), ErrLockState)
	require.NoError(t, l.Lock())
	assert.ErrorIs(t, l.Lock(), ErrLockState)

	// Unlock again after a completed cycle.
	require.NoError(t, l.Unlock())
	require.NoError(t, l.Lock())

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Unlock(), ErrLockState)

	_, err = NewProtectedLock(base, acl.SID{})
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestProtectedLockLocalSystem(t *testing.T) {
	r, _ := testutil.SetupRegistry(t)
	base := openBase(t, r)
	testutil.LockUserChoice(t, r, testBase, acl.LocalSystem)

	l, err := NewProtectedLock(base, acl.LocalSystem)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Unlock())
	require.NoError(t, l.Lock())
	assert.Equal(t, "local system", l.Skipped())
	assert.Zero(t, choiceDACL(t, r).CountDenied(acl.SID{}, acl.KeySetValue))
}

func TestProtectedLockNullDACL(t *testing.T) {
	r := reg.NewMemory(reg.MemoryOptions{})
	base := openBase(t, r)

	l, err := NewProtectedLock(base, testutil.TestUser)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Unlock())
	require.NoError(t, l.Lock())
	assert.Equal(t, "null DACL", l.Skipped())
	assert.Nil(t, choiceDACL(t, r))
}

func TestSetProtectedValue(t *testing.T) {
	r, _ := testutil.SetupRegistry(t)
	base := openBase(t, r)
	testutil.LockUserChoice(t, r, testBase, testutil.TestUser)

	require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueProgID, "FooApp.Document"))

	v, err := base.GetStringValue(UserChoiceKey, ValueProgID)
	require.NoError(t, err)
	assert.Equal(t, "FooApp.Document", v)
	assert.Equal(t, 1, choiceDACL(t, r).CountDenied(testutil.TestUser, acl.KeySetValue))
}

func TestDeleteProtectedValues(t *testing.T) {
	t.Run("missing subkey", func(t *testing.T) {
		r, _ := testutil.SetupRegistry(t)
		base := openBase(t, r)
		require.NoError(t, DeleteProtectedValues(base, testutil.TestUser, true, ValueProgID, ValueHash))
	})

	t.Run("prune empty subkey", func(t *testing.T) {
		r, _ := testutil.SetupRegistry(t)
		base := openBase(t, r)
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueProgID, "a"))
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueHash, "b"))

		require.NoError(t, DeleteProtectedValues(base, testutil.TestUser, true, ValueProgID, ValueHash))
		_, err := base.OpenSubKey(UserChoiceKey, reg.AccessRead)
		assert.ErrorIs(t, err, reg.ErrNotExist)
	})

	t.Run("keep without prune", func(t *testing.T) {
		r, _ := testutil.SetupRegistry(t)
		base := openBase(t, r)
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueProgID, "a"))

		require.NoError(t, DeleteProtectedValues(base, testutil.TestUser, false, ValueProgID, ValueHash))
		_, err := base.GetStringValue(UserChoiceKey, ValueProgID)
		assert.ErrorIs(t, err, reg.ErrNotExist)
		assert.Equal(t, 1, choiceDACL(t, r).CountDenied(testutil.TestUser, acl.KeySetValue))
	})

	t.Run("prune keeps non-empty subkey", func(t *testing.T) {
		r, _ := testutil.SetupRegistry(t)
		base := openBase(t, r)
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, ValueProgID, "a"))
		require.NoError(t, SetProtectedValue(base, testutil.TestUser, "Extra", "c"))

		require.NoError(t, DeleteProtectedValues(base, testutil.TestUser, true, ValueProgID))
		v, err := base.GetStringValue(UserChoiceKey, "Extra")
		require.NoError(t, err)
		assert.Equal(t, "c", v)
		assert.Equal(t, 1, choiceDACL(t, r).CountDenied(testutil.TestUser, acl.KeySetValue))
	})
}
