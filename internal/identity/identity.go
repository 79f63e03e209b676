// Package identity resolves the SID the calling thread acts as.
package identity

import "errors"

// ErrUnsupported is returned off Windows.
var ErrUnsupported = errors.New("identity: not supported on this platform")

// CurrentString returns Current in S-1-... form.
func CurrentString() (string, error) {
	sid, err := Current()
	if err != nil {
		return "", err
	}
	return sid.String(), nil
}
