package regtext

const (
	// ============================================================================
	// .reg File Format Tokens
	// ============================================================================

	// RegFileHeader is the required header line for .reg files version 5.00
	RegFileHeader = "Windows Registry Editor Version 5.00"

	// RegFileHeaderV4 is the header of ANSI .reg files written by REGEDIT4
	RegFileHeaderV4 = "REGEDIT4"

	// ============================================================================
	// Delimiters and Structural Tokens
	// ============================================================================

	// KeyOpenBracket marks the start of a registry key path
	KeyOpenBracket = "["

	// KeyCloseBracket marks the end of a registry key path
	KeyCloseBracket = "]"

	// DeleteKeyPrefix marks a key for deletion (e.g., [-HKEY_CURRENT_USER\...])
	DeleteKeyPrefix = "-"

	// ValueAssignment separates value names from their data
	ValueAssignment = "="

	// DefaultValuePrefix marks the default (unnamed) value
	DefaultValuePrefix = "@="

	// CommentPrefix marks a comment line
	CommentPrefix = ";"

	// ============================================================================
	// Quote and Escape Characters
	// ============================================================================

	// Quote is the double-quote character for value names and string data
	Quote = "\""

	// Backslash is used for escaping and path separators
	Backslash = "\\"

	// EscapedQuote is the escaped double-quote sequence
	EscapedQuote = "\\\""

	// EscapedBackslash is the escaped backslash sequence
	EscapedBackslash = "\\\\"

	// CRLF is the Windows line ending (carriage return + line feed)
	CRLF = "\r\n"

	// ============================================================================
	// Value Type Prefixes
	// ============================================================================

	// DWORDPrefix identifies a DWORD value in .reg format
	DWORDPrefix = "dword:"

	// HexPrefix identifies binary data in .reg format
	HexPrefix = "hex:"

	// ============================================================================
	// Encoding Names
	// ============================================================================

	// EncodingUTF8 is the identifier for UTF-8 encoding
	EncodingUTF8 = "UTF-8"

	// EncodingUTF16LE is the identifier for UTF-16 little-endian encoding
	EncodingUTF16LE = "UTF-16LE"

	// ============================================================================
	// Registry Root Names
	// ============================================================================

	HKEYClassesRoot      = "HKEY_CLASSES_ROOT"
	HKEYClassesRootShort = "HKCR"

	HKEYCurrentUser      = "HKEY_CURRENT_USER"
	HKEYCurrentUserShort = "HKCU"

	// ============================================================================
	// Value Type Detection Strings
	// ============================================================================

	// ValueTypeString identifies string values in .reg format
	ValueTypeString = "string"

	// ValueTypeDWORD identifies DWORD values
	ValueTypeDWORD = "dword"

	// ValueTypeBinary identifies binary values
	ValueTypeBinary = "binary"

	// ValueTypeDelete marks a value for deletion ("Name"=-)
	ValueTypeDelete = "delete"

	// ValueTypeUnknown is used for unrecognized value types
	ValueTypeUnknown = "unknown"

	// DeleteValueToken marks a value for deletion
	DeleteValueToken = "-"

	// ============================================================================
	// Buffer and Parsing Sizes
	// ============================================================================

	// ScannerInitialBufferSize is the initial buffer size for the .reg file scanner
	ScannerInitialBufferSize = 64 * 1024 // 64KB

	// ScannerMaxLineSize is the maximum line size for the .reg file scanner
	ScannerMaxLineSize = 1024 * 1024 // 1MB
)
