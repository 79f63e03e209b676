//go:build windows

package shellnotify

import "golang.org/x/sys/windows"

var (
	modshell32         = windows.NewLazySystemDLL("shell32.dll")
	procSHChangeNotify = modshell32.NewProc("SHChangeNotify")
)

// AssocChanged broadcasts SHCNE_ASSOCCHANGED. There is no result to report.
func AssocChanged() {
	if procSHChangeNotify.Find() != nil {
		return
	}
	procSHChangeNotify.Call(shcneAssocChanged, shcnfIDList, 0, 0)
}
