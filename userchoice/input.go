package userchoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/joshuapare/userchoice/internal/format"
)

// UserExperience is the fixed suffix of every hash input.
const UserExperience = "User Choice set via Windows User Experience {D18B6DD5-6124-4341-9318-804003BAFA0B}"

// FormatInput builds the canonical hash input for one association record:
// assocID, userSID, progID, the FILETIME of ts truncated to the minute as
// two %08x words (high then low), and UserExperience, all lowercased.
func FormatInput(assocID, userSID, progID string, ts time.Time) (string, error) {
	ft, err := format.TimeToFiletime(format.MinuteFloor(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTimestamp, err)
	}
	hi, lo := format.SplitFiletime(ft)

	var b strings.Builder
	b.Grow(len(assocID) + len(userSID) + len(progID) + 16 + len(UserExperience))
	b.WriteString(assocID)
	b.WriteString(userSID)
	b.WriteString(progID)
	fmt.Fprintf(&b, "%08x%08x", hi, lo)
	b.WriteString(UserExperience)
	return strings.ToLower(b.String()), nil
}
