package testutil

import (
	"time"

	"github.com/joshuapare/userchoice/userchoice/acl"
)

// Fixture values shared by tests.
// These constants should be used instead of hardcoding them in test files.
const (
	// TestUserSID is a domain-style user SID.
	TestUserSID = "S-1-5-21-1180699209-877415012-3182924384-1001"

	// TestOtherSID is a second user used for foreign deny entries.
	TestOtherSID = "S-1-5-21-1180699209-877415012-3182924384-1002"
)

// TestUser is TestUserSID parsed.
var TestUser = acl.MustParseSID(TestUserSID)

// TestTime is the start of a minute, 2024-03-01T10:15:00Z.
var TestTime = time.Date(2024, time.March, 1, 10, 15, 0, 0, time.UTC)
