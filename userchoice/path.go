package userchoice

import (
	"fmt"
	"strings"
)

// Registry layout under HKEY_CURRENT_USER.
const (
	FileExtsPath        = `SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\FileExts`
	UrlAssociationsPath = `SOFTWARE\Microsoft\Windows\Shell\Associations\UrlAssociations`

	UserChoiceKey = "UserChoice"
	ValueProgID   = "ProgId"
	ValueHash     = "Hash"
)

// KeyPath returns the association's base key below HKEY_CURRENT_USER. The id
// is kept verbatim; only the hash input is case folded.
func KeyPath(assocID string, isURI bool) string {
	if isURI {
		return UrlAssociationsPath + `\` + assocID
	}
	return FileExtsPath + `\` + assocID
}

// ChoicePath returns the path of the association's UserChoice subkey.
func ChoicePath(assocID string) string {
	return KeyPath(assocID, !IsExtension(assocID)) + `\` + UserChoiceKey
}

// IsExtension reports whether assocID names a file extension (leading dot)
// rather than a URI scheme.
func IsExtension(assocID string) bool {
	return strings.HasPrefix(assocID, ".")
}

// ValidateAssocID rejects ids that cannot be used as a single key name.
func ValidateAssocID(assocID string) error {
	switch {
	case assocID == "", assocID == ".":
		return fmt.Errorf("%w: %q", ErrInvalidAssocID, assocID)
	case strings.ContainsAny(assocID, "\\\x00"):
		return fmt.Errorf("%w: %q contains a separator", ErrInvalidAssocID, assocID)
	}
	return nil
}

// AssocIDFromPath is the inverse of KeyPath and ChoicePath: it recovers the
// association id from a path below HKEY_CURRENT_USER.
func AssocIDFromPath(path string) (assocID string, isURI bool, ok bool) {
	p := strings.TrimSuffix(path, `\`)
	suffix := `\` + UserChoiceKey
	if len(p) > len(suffix) && strings.EqualFold(p[len(p)-len(suffix):], suffix) {
		p = p[:len(p)-len(suffix)]
	}
	for _, base := range []struct {
		prefix string
		uri    bool
	}{
		{FileExtsPath, false},
		{UrlAssociationsPath, true},
	} {
		n := len(base.prefix)
		if len(p) <= n+1 || !strings.EqualFold(p[:n], base.prefix) || p[n] != '\\' {
			continue
		}
		id := p[n+1:]
		if ValidateAssocID(id) != nil {
			return "", false, false
		}
		return id, base.uri, true
	}
	return "", false, false
}
