//go:build windows

package osver

import "golang.org/x/sys/windows"

// query uses RtlGetVersion, which is not subject to manifest-based version
// lying the way GetVersionEx is.
func query() Info {
	v := windows.RtlGetVersion()
	return Info{Major: v.MajorVersion, Minor: v.MinorVersion, Build: v.BuildNumber}
}
