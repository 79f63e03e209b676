package userchoice

import (
	"errors"
	"fmt"

	"github.com/joshuapare/userchoice/userchoice/acl"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

type lockState int

const (
	lockUninitialized lockState = iota
	lockInitialized
	lockUnlocked
	lockLocked
	lockClosed
)

func (s lockState) String() string {
	switch s {
	case lockUninitialized:
		return "uninitialized"
	case lockInitialized:
		return "initialized"
	case lockUnlocked:
		return "unlocked"
	case lockLocked:
		return "locked"
	case lockClosed:
		return "closed"
	default:
		return fmt.Sprintf("lockState(%d)", int(s))
	}
}

// ProtectedLock holds the UserChoice subkey open with READ_CONTROL and
// WRITE_DAC so its KEY_SET_VALUE deny entry can be lifted and restored.
//
// Valid sequences are Unlock, Lock, Close; Unlock may follow Lock again.
// Close is always allowed and idempotent.
type ProtectedLock struct {
	key   reg.Key
	user  acl.SID
	state lockState

	// skipped records why Lock left the DACL alone.
	skipped string
}

const lockAccess = reg.AccessReadControl | reg.AccessWriteDAC

// NewProtectedLock creates or opens parent\UserChoice for DACL editing on
// behalf of user.
func NewProtectedLock(parent reg.Key, user acl.SID) (*ProtectedLock, error) {
	return openLock(parent, user, true)
}

func openLock(parent reg.Key, user acl.SID, create bool) (*ProtectedLock, error) {
	if user.IsZero() {
		return nil, ErrNoUser
	}
	l := &ProtectedLock{user: user}
	var err error
	if create {
		l.key, err = parent.CreateSubKey(UserChoiceKey, lockAccess)
	} else {
		l.key, err = parent.OpenSubKey(UserChoiceKey, lockAccess)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s for DACL edit: %w", UserChoiceKey, err)
	}
	l.state = lockInitialized
	return l, nil
}

// Unlock removes every ACCESS_DENIED entry whose mask is exactly
// KEY_SET_VALUE, whichever SID it names. The DACL is only written back when
// something was removed.
func (l *ProtectedLock) Unlock() error {
	if l.state != lockInitialized && l.state != lockLocked {
		return fmt.Errorf("%w: unlock while %s", ErrLockState, l.state)
	}
	d, err := l.key.DACL()
	if err != nil {
		return fmt.Errorf("read DACL: %w", err)
	}
	if d != nil && d.RemoveDenied(acl.KeySetValue) > 0 {
		if err := l.key.SetDACL(d, reg.ProtectionKeep); err != nil {
			return fmt.Errorf("write DACL: %w", err)
		}
	}
	l.state = lockUnlocked
	return nil
}

// Lock installs a DACL whose first entry denies KEY_SET_VALUE to the user,
// followed by the existing entries. Nothing is written for LocalSystem or
// when the key has a NULL DACL.
func (l *ProtectedLock) Lock() error {
	if l.state != lockUnlocked {
		return fmt.Errorf("%w: lock while %s", ErrLockState, l.state)
	}
	l.skipped = ""
	if l.user.Equal(acl.LocalSystem) {
		l.skipped = "local system"
		l.state = lockLocked
		return nil
	}
	d, err := l.key.DACL()
	if err != nil {
		return fmt.Errorf("read DACL: %w", err)
	}
	if d == nil {
		l.skipped = "null DACL"
		l.state = lockLocked
		return nil
	}
	locked, err := d.PrependDeny(l.user, acl.KeySetValue)
	if err != nil {
		return fmt.Errorf("build DACL: %w", err)
	}
	if err := l.key.SetDACL(locked, reg.ProtectionOff); err != nil {
		return fmt.Errorf("write DACL: %w", err)
	}
	l.state = lockLocked
	return nil
}

// Skipped reports why the last Lock wrote nothing, or "".
func (l *ProtectedLock) Skipped() string { return l.skipped }

// Close releases the key handle.
func (l *ProtectedLock) Close() error {
	if l.state == lockClosed {
		return nil
	}
	l.state = lockClosed
	if l.key == nil {
		return nil
	}
	return l.key.Close()
}

// SetProtectedValue writes parent\UserChoice\name through an unlock, write,
// relock cycle.
func SetProtectedValue(parent reg.Key, user acl.SID, name, value string) (err error) {
	l, err := NewProtectedLock(parent, user)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := l.Unlock(); err != nil {
		return err
	}
	if err := parent.SetStringValue(UserChoiceKey, name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return l.Lock()
}

// DeleteProtectedValues removes the named values from parent\UserChoice.
// A missing subkey or value is not an error. With prune, a subkey left with
// no values and no subkeys is deleted instead of relocked.
func DeleteProtectedValues(parent reg.Key, user acl.SID, prune bool, names ...string) (err error) {
	l, err := openLock(parent, user, false)
	if errors.Is(err, reg.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := l.Unlock(); err != nil {
		return err
	}
	for _, name := range names {
		err := parent.DeleteValue(UserChoiceKey, name)
		if err != nil && !errors.Is(err, reg.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}

	if prune {
		empty, err := isEmptyKey(parent, UserChoiceKey)
		if err != nil {
			return err
		}
		if empty {
			if err := l.Close(); err != nil {
				return err
			}
			if err := parent.DeleteSubKey(UserChoiceKey); err != nil {
				return fmt.Errorf("delete %s: %w", UserChoiceKey, err)
			}
			return nil
		}
	}
	return l.Lock()
}

func isEmptyKey(parent reg.Key, path string) (bool, error) {
	k, err := parent.OpenSubKey(path, reg.AccessQueryValue)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer k.Close()
	info, err := k.Info()
	if err != nil {
		return false, fmt.Errorf("query %s: %w", path, err)
	}
	return info.SubKeys == 0 && info.Values == 0, nil
}
