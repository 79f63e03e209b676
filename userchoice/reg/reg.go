// Package reg is the registry surface the association core runs on.
//
// Two backends implement it: Memory, an in-process tree that tracks
// last-write times and enforces ACCESS_DENIED entries the way the
// configuration manager does for the calls we make, and (on Windows) System,
// which wraps the live registry through golang.org/x/sys/windows.
//
// Paths are backslash separated and matched case-insensitively. Handles must
// be closed; predefined roots ignore Close.
package reg

import (
	"time"

	"github.com/joshuapare/userchoice/internal/format"
	"github.com/joshuapare/userchoice/userchoice/acl"
)

// Access is a registry key access mask (REGSAM).
type Access uint32

// Access rights used by this module.
const (
	AccessQueryValue  = Access(format.KeyQueryValue)
	AccessSetValue    = Access(format.KeySetValue)
	AccessCreateSub   = Access(format.KeyCreateSubKey)
	AccessEnumerate   = Access(format.KeyEnumerateSubKeys)
	AccessReadControl = Access(format.ReadControl)
	AccessWriteDAC    = Access(format.WriteDAC)
	AccessDelete      = Access(format.Delete)
	AccessRead        = Access(format.KeyRead)
	AccessWrite       = Access(format.KeyWrite)
	AccessAll         = Access(format.KeyAllAccess)
)

// Root names a predefined key.
type Root int

const (
	CurrentUser Root = iota
	ClassesRoot
)

func (r Root) String() string {
	switch r {
	case CurrentUser:
		return "HKEY_CURRENT_USER"
	case ClassesRoot:
		return "HKEY_CLASSES_ROOT"
	default:
		return "HKEY_UNKNOWN"
	}
}

// KeyInfo is the subset of RegQueryInfoKey the core needs.
type KeyInfo struct {
	SubKeys   int
	Values    int
	LastWrite time.Time
}

// Protection selects how SetDACL treats the DACL's inheritance protection.
type Protection int

const (
	// ProtectionKeep writes the DACL and leaves the protection bit alone
	// (plain DACL_SECURITY_INFORMATION).
	ProtectionKeep Protection = iota
	// ProtectionOff clears it (UNPROTECTED_DACL_SECURITY_INFORMATION).
	ProtectionOff
	// ProtectionOn sets it (PROTECTED_DACL_SECURITY_INFORMATION).
	ProtectionOn
)

// Registry hands out predefined root keys.
type Registry interface {
	Root(r Root) Key
}

// Key is an open registry key handle.
//
// Value operations take an optional subKey, like SHSetValue / RegGetValue:
// an empty subKey addresses the key itself, otherwise the subkey is opened
// for just the duration of the call with the rights the operation needs, so
// access checks apply to the subkey's own DACL.
type Key interface {
	// CreateSubKey opens path below the key, creating missing components.
	CreateSubKey(path string, access Access) (Key, error)
	// OpenSubKey opens an existing path below the key.
	OpenSubKey(path string, access Access) (Key, error)
	// DeleteSubKey removes an empty subkey.
	DeleteSubKey(path string) error
	// Rename changes the last component of this key's own name (RegRenameKey
	// with a nil subkey).
	Rename(newName string) error

	SetStringValue(subKey, name, value string) error
	GetStringValue(subKey, name string) (string, error)
	DeleteValue(subKey, name string) error

	// Info reports counts and the last-write time.
	Info() (KeyInfo, error)

	// DACL returns the key's discretionary ACL; nil means a NULL DACL.
	// Requires AccessReadControl.
	DACL() (*acl.ACL, error)
	// SetDACL replaces the DACL. Requires AccessWriteDAC.
	SetDACL(d *acl.ACL, p Protection) error

	Close() error
}
