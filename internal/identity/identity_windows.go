//go:build windows

package identity

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/joshuapare/userchoice/userchoice/acl"
)

// Current returns the user SID of the thread token when the thread is
// impersonating, otherwise that of the process token.
func Current() (acl.SID, error) {
	var tok windows.Token
	err := windows.OpenThreadToken(windows.CurrentThread(), windows.TOKEN_QUERY, true, &tok)
	if errors.Is(err, windows.ERROR_NO_TOKEN) {
		err = windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &tok)
	}
	if err != nil {
		return acl.SID{}, fmt.Errorf("identity: open token: %w", err)
	}
	defer tok.Close()

	tu, err := tok.GetTokenUser()
	if err != nil {
		return acl.SID{}, fmt.Errorf("identity: query token user: %w", err)
	}
	n := windows.GetLengthSid(tu.User.Sid)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(tu.User.Sid)), n)
	sid, _, err := acl.DecodeSID(raw)
	if err != nil {
		return acl.SID{}, fmt.Errorf("identity: %w", err)
	}
	return sid, nil
}
