/*
Package assoc sets and checks per-user default file and protocol handlers on
Windows 10 1703 and later.

# Quick Start

Make txtfile the handler for .txt:

	res, err := assoc.SetAssociationAndHash(".txt", "txtfile", nil)

Check that the stored record would be accepted by the shell:

	sid, _ := assoc.CurrentUserSID()
	res, err := assoc.VerifyStoredAssociationHash(".txt", sid, nil)

# Results

Operations return a discrete result next to the error so callers can branch
without inspecting error chains:

	switch res {
	case assoc.SetOK:
	case assoc.SetUnsupportedOS:
	    // pre-1703: nothing was attempted
	case assoc.SetFail:
	    log.Print(err)
	}

# Testing

Every entry point takes *Options. Pass a reg.Memory registry, a fixed clock
and a fixed user to exercise the full write path off Windows.
*/
package assoc
