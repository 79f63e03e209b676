// Package shellnotify tells Explorer that file associations changed.
package shellnotify

// SHChangeNotify arguments.
const (
	shcneAssocChanged = 0x08000000
	shcnfIDList       = 0x0000
)
