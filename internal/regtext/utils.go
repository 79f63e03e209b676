package regtext

import (
	"strings"
)

// unescapeRegString unescapes a string from .reg format.
// .reg files escape backslashes as \\ and quotes as \"
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// findClosingQuote finds the position of the closing quote in a line,
// accounting for escaped quotes (preceded by an odd number of backslashes).
// Returns -1 if no valid closing quote is found.
// The search starts at position 1 (assuming the opening quote is at position 0).
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] == '"' {
			// Count consecutive backslashes before this quote
			numBackslashes := 0
			for j := i - 1; j >= 1 && line[j] == '\\'; j-- {
				numBackslashes++
			}
			// If odd number of backslashes, the quote is escaped
			if numBackslashes%2 == 1 {
				continue
			}
			return i
		}
	}
	return -1
}

// detectValueType determines the registry value type from the value data string.
func detectValueType(data string) string {
	switch {
	case data == DeleteValueToken:
		return ValueTypeDelete
	case strings.HasPrefix(data, Quote):
		return ValueTypeString
	case strings.HasPrefix(data, DWORDPrefix):
		return ValueTypeDWORD
	case strings.HasPrefix(data, "hex("):
		// Return the full type string like "hex(2)", "hex(7)"
		if end := strings.Index(data, ")"); end > 4 {
			return data[:end+1]
		}
		return ValueTypeUnknown
	case strings.HasPrefix(data, HexPrefix):
		return ValueTypeBinary
	default:
		return ValueTypeUnknown
	}
}

// SplitRoot separates the predefined root from a key path, expanding the
// HKCU and HKCR abbreviations. ok is false for any other root.
func SplitRoot(path string) (root, rest string, ok bool) {
	root, rest, _ = strings.Cut(path, Backslash)
	switch strings.ToUpper(root) {
	case HKEYCurrentUser, HKEYCurrentUserShort:
		return HKEYCurrentUser, rest, true
	case HKEYClassesRoot, HKEYClassesRootShort:
		return HKEYClassesRoot, rest, true
	default:
		return root, rest, false
	}
}
