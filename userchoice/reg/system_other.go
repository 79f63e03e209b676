//go:build !windows

package reg

import "github.com/joshuapare/userchoice/userchoice/acl"

type system struct{}

// System returns the live registry. Off Windows every operation reports
// ErrUnsupported; use Memory instead.
func System() Registry { return system{} }

func (system) Root(Root) Key { return unsupportedKey{} }

type unsupportedKey struct{}

func (unsupportedKey) CreateSubKey(string, Access) (Key, error) { return nil, ErrUnsupported }

func (unsupportedKey) OpenSubKey(string, Access) (Key, error) { return nil, ErrUnsupported }

func (unsupportedKey) DeleteSubKey(string) error { return ErrUnsupported }

func (unsupportedKey) Rename(string) error { return ErrUnsupported }

func (unsupportedKey) SetStringValue(_, _, _ string) error { return ErrUnsupported }

func (unsupportedKey) GetStringValue(_, _ string) (string, error) { return "", ErrUnsupported }

func (unsupportedKey) DeleteValue(_, _ string) error { return ErrUnsupported }

func (unsupportedKey) Info() (KeyInfo, error) { return KeyInfo{}, ErrUnsupported }

func (unsupportedKey) DACL() (*acl.ACL, error) { return nil, ErrUnsupported }

func (unsupportedKey) SetDACL(*acl.ACL, Protection) error { return ErrUnsupported }

func (unsupportedKey) Close() error { return nil }
