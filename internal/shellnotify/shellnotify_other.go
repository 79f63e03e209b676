//go:build !windows

package shellnotify

// AssocChanged does nothing off Windows.
func AssocChanged() {}
