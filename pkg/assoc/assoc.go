package assoc

import (
	"errors"
	"time"

	"github.com/joshuapare/userchoice/internal/identity"
	"github.com/joshuapare/userchoice/userchoice"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

// SetResult is the outcome of SetAssociationAndHash.
type SetResult int

const (
	SetFail SetResult = iota
	SetOK
	SetUnsupportedOS
)

func (r SetResult) String() string {
	switch r {
	case SetOK:
		return "ok"
	case SetUnsupportedOS:
		return "unsupported-os"
	default:
		return "fail"
	}
}

// VerifyResult is the outcome of VerifyStoredAssociationHash.
type VerifyResult = userchoice.VerifyResult

const (
	VerifyError    = userchoice.VerifyError
	VerifyMatch    = userchoice.VerifyMatch
	VerifyMismatch = userchoice.VerifyMismatch
)

// Choice is a stored UserChoice record.
type Choice = userchoice.Choice

// ComputeAssociationHash returns the Hash value for the given record.
func ComputeAssociationHash(assocID, userSID, progID string, ts time.Time) (string, error) {
	return userchoice.ComputeHash(assocID, userSID, progID, ts)
}

// ComputeAssociationKeyRegistryPath returns the association key below
// HKEY_CURRENT_USER.
func ComputeAssociationKeyRegistryPath(assocID string, isURI bool) string {
	return userchoice.KeyPath(assocID, isURI)
}

// SetAssociationAndHash makes progID the current user's handler for assocID.
func SetAssociationAndHash(assocID, progID string, opts *Options) (SetResult, error) {
	err := opts.writer().Set(assocID, progID)
	switch {
	case err == nil:
		return SetOK, nil
	case errors.Is(err, userchoice.ErrUnsupportedOS):
		return SetUnsupportedOS, err
	default:
		return SetFail, err
	}
}

// VerifyStoredAssociationHash recomputes the stored hash for assocID. An
// empty userSID selects the current user.
func VerifyStoredAssociationHash(assocID, userSID string, opts *Options) (VerifyResult, error) {
	if userSID == "" {
		sid, err := opts.user()()
		if err != nil {
			return VerifyError, err
		}
		userSID = sid.String()
	}
	return userchoice.Verify(opts.registry(), assocID, userSID)
}

// ReadChoice returns the stored record for assocID.
func ReadChoice(assocID string, opts *Options) (Choice, error) {
	return userchoice.ReadChoice(opts.registry(), assocID)
}

// CheckProgIDExists reports whether progID is registered under
// HKEY_CLASSES_ROOT.
func CheckProgIDExists(progID string, opts *Options) (bool, error) {
	return userchoice.ProgIDExists(opts.registry().Root(reg.ClassesRoot), progID)
}

// CurrentUserSID returns the calling thread's user SID in S-1-... form.
func CurrentUserSID() (string, error) {
	return identity.CurrentString()
}
