//go:build windows

package reg

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/userchoice/userchoice/acl"
)

var (
	modadvapi32      = windows.NewLazySystemDLL("advapi32.dll")
	procRegRenameKey = modadvapi32.NewProc("RegRenameKey")
)

type system struct{}

// System returns the live registry of the calling user.
func System() Registry { return system{} }

func (system) Root(r Root) Key {
	switch r {
	case CurrentUser:
		return &winKey{k: registry.CURRENT_USER, root: true}
	case ClassesRoot:
		return &winKey{k: registry.CLASSES_ROOT, root: true}
	default:
		return &winKey{closed: true}
	}
}

type winKey struct {
	k      registry.Key
	root   bool
	closed bool
}

// mapErr folds Win32 status codes onto the package sentinels while keeping
// the original error in the chain.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
			return fmt.Errorf("%s: %w: %w", op, ErrNotExist, err)
		case windows.ERROR_ACCESS_DENIED:
			return fmt.Errorf("%s: %w: %w", op, ErrAccessDenied, err)
		case windows.ERROR_ALREADY_EXISTS:
			return fmt.Errorf("%s: %w: %w", op, ErrExist, err)
		}
	}
	if errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("%s: %w: %w", op, ErrNotExist, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (w *winKey) live() error {
	if w.closed {
		return ErrClosed
	}
	return nil
}

func (w *winKey) CreateSubKey(path string, access Access) (Key, error) {
	if err := w.live(); err != nil {
		return nil, err
	}
	k, _, err := registry.CreateKey(w.k, path, uint32(access))
	if err != nil {
		return nil, mapErr("RegCreateKeyEx", err)
	}
	return &winKey{k: k}, nil
}

func (w *winKey) OpenSubKey(path string, access Access) (Key, error) {
	if err := w.live(); err != nil {
		return nil, err
	}
	k, err := registry.OpenKey(w.k, path, uint32(access))
	if err != nil {
		return nil, mapErr("RegOpenKeyEx", err)
	}
	return &winKey{k: k}, nil
}

func (w *winKey) DeleteSubKey(path string) error {
	if err := w.live(); err != nil {
		return err
	}
	return mapErr("RegDeleteKey", registry.DeleteKey(w.k, path))
}

func (w *winKey) Rename(newName string) error {
	if err := w.live(); err != nil {
		return err
	}
	name, err := windows.UTF16PtrFromString(newName)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}
	if err := procRegRenameKey.Find(); err != nil {
		return fmt.Errorf("RegRenameKey: %w", err)
	}
	r, _, _ := procRegRenameKey.Call(uintptr(w.k), 0, uintptr(unsafe.Pointer(name)))
	if r != 0 {
		return mapErr("RegRenameKey", syscall.Errno(r))
	}
	return nil
}

// withValueKey runs fn against the key itself or a transiently opened subkey.
func (w *winKey) withValueKey(subKey string, access Access, fn func(registry.Key) error) error {
	if err := w.live(); err != nil {
		return err
	}
	if subKey == "" {
		return fn(w.k)
	}
	k, err := registry.OpenKey(w.k, subKey, uint32(access))
	if err != nil {
		return mapErr("RegOpenKeyEx", err)
	}
	defer k.Close()
	return fn(k)
}

func (w *winKey) SetStringValue(subKey, name, value string) error {
	return w.withValueKey(subKey, AccessSetValue, func(k registry.Key) error {
		return mapErr("RegSetValueEx", k.SetStringValue(name, value))
	})
}

func (w *winKey) GetStringValue(subKey, name string) (string, error) {
	var out string
	err := w.withValueKey(subKey, AccessQueryValue, func(k registry.Key) error {
		v, _, err := k.GetStringValue(name)
		if err != nil {
			return mapErr("RegQueryValueEx", err)
		}
		out = v
		return nil
	})
	return out, err
}

func (w *winKey) DeleteValue(subKey, name string) error {
	return w.withValueKey(subKey, AccessSetValue, func(k registry.Key) error {
		return mapErr("RegDeleteValue", k.DeleteValue(name))
	})
}

func (w *winKey) Info() (KeyInfo, error) {
	if err := w.live(); err != nil {
		return KeyInfo{}, err
	}
	st, err := w.k.Stat()
	if err != nil {
		return KeyInfo{}, mapErr("RegQueryInfoKey", err)
	}
	return KeyInfo{
		SubKeys:   int(st.SubKeyCount),
		Values:    int(st.ValueCount),
		LastWrite: st.ModTime().UTC(),
	}, nil
}

func (w *winKey) DACL() (*acl.ACL, error) {
	if err := w.live(); err != nil {
		return nil, err
	}
	sd, err := windows.GetSecurityInfo(windows.Handle(w.k), windows.SE_REGISTRY_KEY, windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return nil, mapErr("GetSecurityInfo", err)
	}
	// GetSecurityInfo hands back a self-relative copy in Go memory.
	raw := unsafe.Slice((*byte)(unsafe.Pointer(sd)), sd.Length())
	d, err := acl.DecodeDescriptor(raw)
	if err != nil {
		return nil, err
	}
	return d.DACL, nil
}

func (w *winKey) SetDACL(d *acl.ACL, p Protection) error {
	if err := w.live(); err != nil {
		return err
	}
	info := windows.SECURITY_INFORMATION(windows.DACL_SECURITY_INFORMATION)
	switch p {
	case ProtectionOn:
		info |= windows.PROTECTED_DACL_SECURITY_INFORMATION
	case ProtectionOff:
		info |= windows.UNPROTECTED_DACL_SECURITY_INFORMATION
	}
	var dacl *windows.ACL
	if d != nil {
		b, err := d.Bytes()
		if err != nil {
			return err
		}
		dacl = (*windows.ACL)(unsafe.Pointer(&b[0]))
	}
	return mapErr("SetSecurityInfo", windows.SetSecurityInfo(windows.Handle(w.k), windows.SE_REGISTRY_KEY, info, nil, nil, dacl, nil))
}

func (w *winKey) Close() error {
	if w.root || w.closed {
		return nil
	}
	w.closed = true
	return mapErr("RegCloseKey", w.k.Close())
}
