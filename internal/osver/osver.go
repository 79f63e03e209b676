// Package osver reports the running Windows version. The value is read once
// per process.
package osver

import (
	"fmt"
	"sync"
)

// Build1703 is the Creators Update build, the first with the hashed
// UserChoice scheme.
const Build1703 = 15063

// Info is a Windows version triple. The zero value means "not Windows".
type Info struct {
	Major uint32
	Minor uint32
	Build uint32
}

var (
	once    sync.Once
	current Info
)

// Current returns the cached version of the running OS.
func Current() Info {
	once.Do(func() { current = query() })
	return current
}

// IsWindows10OrLater reports major version 10 or newer.
func (i Info) IsWindows10OrLater() bool {
	return i.Major >= 10
}

// SupportsUserChoiceHash reports Windows 10 1703 or newer.
func (i Info) SupportsUserChoiceHash() bool {
	return i.Major > 10 || (i.Major == 10 && i.Build >= Build1703)
}

func (i Info) String() string {
	if i == (Info{}) {
		return "unknown"
	}
	return fmt.Sprintf("%d.%d.%d", i.Major, i.Minor, i.Build)
}
