//go:build !windows

package identity

import "github.com/joshuapare/userchoice/userchoice/acl"

// Current is only implemented on Windows.
func Current() (acl.SID, error) {
	return acl.SID{}, ErrUnsupported
}
