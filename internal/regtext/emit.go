package regtext

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

// Key is one key section of a .reg file.
type Key struct {
	Path    string  // Full key path, root name included
	Delete  bool    // [-Path]
	Comment string  // Emitted as a ; line above the key
	Values  []Value // In file order
}

// Value is a value line. Only string values are written; any type is read.
type Value struct {
	Name string // "" for the default value @
	Type string // ValueTypeString, ValueTypeDelete, ...
	Data string // Unescaped text for strings, raw text otherwise
}

// ExportOptions controls .reg export behavior.
type ExportOptions struct {
	// Encoding specifies output encoding.
	// Supported values: "UTF-16LE" (Windows default), "UTF-8"
	// Default: "UTF-16LE"
	Encoding string

	// NoBOM omits the byte-order mark regedit expects on UTF-16LE files.
	NoBOM bool
}

// Export renders keys as a version 5.00 .reg file.
func Export(keys []Key, opts ExportOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(RegFileHeader + CRLF + CRLF)
	for _, k := range keys {
		if err := emitKey(&buf, k); err != nil {
			return nil, err
		}
	}

	switch strings.ToUpper(opts.Encoding) {
	case "", EncodingUTF16LE:
		bom := unicode.UseBOM
		if opts.NoBOM {
			bom = unicode.IgnoreBOM
		}
		return unicode.UTF16(unicode.LittleEndian, bom).NewEncoder().Bytes(buf.Bytes())
	case EncodingUTF8:
		return buf.Bytes(), nil
	default:
		return nil, errUnsupportedEncoding
	}
}

func emitKey(buf *bytes.Buffer, k Key) error {
	if k.Path == "" {
		return errors.New("regtext: empty key path")
	}
	if k.Comment != "" {
		for _, line := range strings.Split(k.Comment, "\n") {
			buf.WriteString(CommentPrefix + " " + strings.TrimSpace(line) + CRLF)
		}
	}
	buf.WriteString(KeyOpenBracket)
	if k.Delete {
		buf.WriteString(DeleteKeyPrefix)
	}
	buf.WriteString(k.Path)
	buf.WriteString(KeyCloseBracket + CRLF)

	for _, v := range k.Values {
		if err := emitValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteString(CRLF)
	return nil
}

func emitValue(buf *bytes.Buffer, v Value) error {
	if v.Name == "" {
		buf.WriteString(DefaultValuePrefix)
	} else {
		buf.WriteString(Quote)
		buf.WriteString(escapeString(v.Name))
		buf.WriteString(Quote + ValueAssignment)
	}

	switch v.Type {
	case "", ValueTypeString:
		buf.WriteString(Quote)
		buf.WriteString(escapeString(v.Data))
		buf.WriteString(Quote)
	case ValueTypeDelete:
		buf.WriteString(DeleteValueToken)
	default:
		return errors.New("regtext: cannot emit value type " + v.Type)
	}
	buf.WriteString(CRLF)
	return nil
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, Backslash, EscapedBackslash)
	s = strings.ReplaceAll(s, Quote, EscapedQuote)
	return s
}
