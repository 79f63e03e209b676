package regtext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMissingHeader indicates the input does not start with a .reg header.
var ErrMissingHeader = errors.New("regtext: missing header")

// ErrUnterminatedContinuation indicates the input ended inside a value
// continued with a trailing backslash.
var ErrUnterminatedContinuation = errors.New("regtext: input ends in a line continuation")

// ParseOptions controls .reg parsing.
type ParseOptions struct {
	// ANSI decodes BOM-less input as Windows-1252, as REGEDIT4 files are.
	// Otherwise BOM-less input is read as UTF-8. A BOM always wins.
	ANSI bool
}

// Parse reads a .reg file.
// .reg format:
//   - Lines starting with [ are keys: [HKEY_CURRENT_USER\Path\To\Key]
//   - Lines with = are values: "ValueName"=...
//   - Lines with @= are default values: @=...
//   - A trailing backslash continues hex data on the next line
func Parse(r io.Reader, opts ParseOptions) ([]Key, error) {
	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if opts.ANSI {
		fallback = charmap.Windows1252.NewDecoder()
	}
	utf8Reader := transform.NewReader(r, unicode.BOMOverride(fallback))

	scanner := bufio.NewScanner(utf8Reader)
	// Increase buffer size for long lines (some .reg files have huge binary values)
	buf := make([]byte, 0, ScannerInitialBufferSize)
	scanner.Buffer(buf, ScannerMaxLineSize)

	var (
		keys       []Key
		current    *Key
		seenHeader bool
		pending    strings.Builder
		lineNo     int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if pending.Len() > 0 {
			if strings.HasSuffix(line, Backslash) {
				pending.WriteString(strings.TrimSuffix(line, Backslash))
				continue
			}
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		if !seenHeader {
			if line != RegFileHeader && line != RegFileHeaderV4 {
				return nil, fmt.Errorf("%w: %q", ErrMissingHeader, line)
			}
			seenHeader = true
			continue
		}

		// Key: [Path] or [-Path]
		if strings.HasPrefix(line, KeyOpenBracket) && strings.HasSuffix(line, KeyCloseBracket) {
			keyPath := strings.TrimSuffix(strings.TrimPrefix(line, KeyOpenBracket), KeyCloseBracket)
			k := Key{}
			if strings.HasPrefix(keyPath, DeleteKeyPrefix) {
				k.Delete = true
				keyPath = keyPath[len(DeleteKeyPrefix):]
			}
			k.Path = keyPath
			keys = append(keys, k)
			current = &keys[len(keys)-1]
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("regtext: line %d: value outside a key", lineNo)
		}

		// Hex data continued on the next line
		if !strings.HasSuffix(line, Quote) && strings.HasSuffix(line, Backslash) {
			pending.WriteString(strings.TrimSuffix(line, Backslash))
			continue
		}

		value, err := parseRegValue(line)
		if err != nil {
			return nil, fmt.Errorf("regtext: line %d: %w", lineNo, err)
		}
		current.Values = append(current.Values, value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning .reg file: %w", err)
	}
	if pending.Len() > 0 {
		return nil, fmt.Errorf("%w: line %d", ErrUnterminatedContinuation, lineNo)
	}
	if !seenHeader {
		return nil, ErrMissingHeader
	}
	return keys, nil
}

// parseRegValue parses a single value line from a .reg file
func parseRegValue(line string) (Value, error) {
	var v Value
	var data string

	switch {
	case strings.HasPrefix(line, DefaultValuePrefix):
		data = strings.TrimPrefix(line, DefaultValuePrefix)
	case strings.HasPrefix(line, Quote):
		// Find the closing quote (accounting for escaped quotes)
		end := findClosingQuote(line)
		if end == -1 || end+1 >= len(line) || line[end+1:end+2] != ValueAssignment {
			return Value{}, fmt.Errorf("malformed value line %q", line)
		}
		v.Name = unescapeRegString(line[1:end])
		data = line[end+2:]
	default:
		return Value{}, fmt.Errorf("malformed value line %q", line)
	}

	v.Type = detectValueType(data)
	switch v.Type {
	case ValueTypeString:
		end := findClosingQuote(data)
		if end != len(data)-1 {
			return Value{}, fmt.Errorf("unterminated string in %q", line)
		}
		v.Data = unescapeRegString(data[1:end])
	case ValueTypeDelete:
	default:
		v.Data = data
	}
	return v, nil
}
