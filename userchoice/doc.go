// Package userchoice computes and writes the per-user default association
// record Windows keeps under a UserChoice subkey.
//
// A record is a ProgId string plus a Hash string. The hash is derived from
// the association id, the user's SID, the ProgId and the minute the record
// was written; the shell recomputes it from the subkey's last-write time and
// ignores the record when the two disagree. The subkey also carries an
// ACCESS_DENIED entry for KEY_SET_VALUE, so writes go through an
// unlock, write, relock cycle (see ProtectedLock).
//
// Only the scheme introduced with Windows 10 1703 is implemented.
//
// Basic usage:
//
//	w := &userchoice.Writer{
//	    Registry: reg.System(),
//	    User:     identity.Current,
//	}
//	if err := w.Set(".txt", "txtfile"); err != nil {
//	    return err
//	}
//
//	res, err := userchoice.Verify(reg.System(), ".txt", sid)
package userchoice
