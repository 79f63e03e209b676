package userchoice

import (
	"fmt"

	"github.com/joshuapare/userchoice/userchoice/reg"
)

// VerifyResult is the outcome of Verify.
type VerifyResult int

const (
	VerifyError VerifyResult = iota
	VerifyMatch
	VerifyMismatch
)

func (r VerifyResult) String() string {
	switch r {
	case VerifyMatch:
		return "match"
	case VerifyMismatch:
		return "mismatch"
	default:
		return "error"
	}
}

// Verify recomputes the stored record's hash from its ProgId and the
// UserChoice subkey's last-write time, the way the shell does, and compares
// it with the stored Hash.
func Verify(r reg.Registry, assocID, userSID string) (VerifyResult, error) {
	c, err := ReadChoice(r, assocID)
	if err != nil {
		return VerifyError, err
	}
	want, err := ComputeHash(assocID, userSID, c.ProgID, c.LastWrite)
	if err != nil {
		return VerifyError, fmt.Errorf("recompute: %w", err)
	}
	if want != c.Hash {
		return VerifyMismatch, nil
	}
	return VerifyMatch, nil
}
