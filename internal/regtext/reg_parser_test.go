package regtext

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `Windows Registry Editor Version 5.00

; exported choice
[HKEY_CURRENT_USER\SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\FileExts\.foo\UserChoice]
"ProgId"="FooApp.Document"
"Hash"="64Tu1JFwxcY="
@="default"

[-HKEY_CURRENT_USER\Software\Old]

[HKCU\Software\Mixed]
"Gone"=-
"Count"=dword:00000001
"Blob"=hex:01,02,\
  03,04
`

	keys, err := Parse(strings.NewReader(input), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}

	k := keys[0]
	if !strings.HasSuffix(k.Path, `\.foo\UserChoice`) {
		t.Errorf("Path: got %q", k.Path)
	}
	want := []Value{
		{Name: "ProgId", Type: ValueTypeString, Data: "FooApp.Document"},
		{Name: "Hash", Type: ValueTypeString, Data: "64Tu1JFwxcY="},
		{Name: "", Type: ValueTypeString, Data: "default"},
	}
	if len(k.Values) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(k.Values))
	}
	for i := range want {
		if k.Values[i] != want[i] {
			t.Errorf("Value %d: expected %+v, got %+v", i, want[i], k.Values[i])
		}
	}

	if !keys[1].Delete || keys[1].Path != `HKEY_CURRENT_USER\Software\Old` {
		t.Errorf("Delete key: got %+v", keys[1])
	}

	mixed := keys[2].Values
	if len(mixed) != 3 {
		t.Fatalf("Expected 3 mixed values, got %d", len(mixed))
	}
	if mixed[0].Type != ValueTypeDelete {
		t.Errorf("Gone: expected delete, got %q", mixed[0].Type)
	}
	if mixed[1].Type != ValueTypeDWORD || mixed[1].Data != "dword:00000001" {
		t.Errorf("Count: got %+v", mixed[1])
	}
	if mixed[2].Type != ValueTypeBinary || mixed[2].Data != "hex:01,02,03,04" {
		t.Errorf("Blob: got %+v", mixed[2])
	}
}

func TestParseRegValue_BackslashEscaping(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		expectedName string
		expectedType string
		expectedData string
	}{
		{
			name:         "Value name ending with backslash",
			line:         `"C:\\"="x"`,
			expectedName: `C:\`,
			expectedType: ValueTypeString,
			expectedData: "x",
		},
		{
			name:         "Value name with escaped quote",
			line:         `"Test\"Quote"=dword:00000001`,
			expectedName: `Test"Quote`,
			expectedType: ValueTypeDWORD,
			expectedData: "dword:00000001",
		},
		{
			name:         "Data with backslash then escaped quote",
			line:         `"Path"="a\\\"b"`,
			expectedName: "Path",
			expectedType: ValueTypeString,
			expectedData: `a\"b`,
		},
		{
			name:         "Data ending with backslash",
			line:         `"Dir"="C:\\Temp\\"`,
			expectedName: "Dir",
			expectedType: ValueTypeString,
			expectedData: `C:\Temp\`,
		},
		{
			name:         "Typed hex",
			line:         `"Multi"=hex(7):61,00,00,00`,
			expectedName: "Multi",
			expectedType: "hex(7)",
			expectedData: "hex(7):61,00,00,00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseRegValue(tt.line)
			if err != nil {
				t.Fatalf("parseRegValue failed: %v", err)
			}
			if v.Name != tt.expectedName {
				t.Errorf("Name: expected %q, got %q", tt.expectedName, v.Name)
			}
			if v.Type != tt.expectedType {
				t.Errorf("Type: expected %q, got %q", tt.expectedType, v.Type)
			}
			if v.Data != tt.expectedData {
				t.Errorf("Data: expected %q, got %q", tt.expectedData, v.Data)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no header", "[HKEY_CURRENT_USER\\x]\r\n"},
		{"empty", ""},
		{"value before key", RegFileHeader + "\r\n\"a\"=\"b\"\r\n"},
		{"unterminated string", RegFileHeader + "\r\n[HKCU\\x]\r\n\"a\"=\"b\r\n"},
		{"bad name", RegFileHeader + "\r\n[HKCU\\x]\r\n\"a\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input), ParseOptions{}); err == nil {
				t.Error("expected an error")
			}
		})
	}

	_, err := Parse(strings.NewReader("nope\r\n"), ParseOptions{})
	if !errors.Is(err, ErrMissingHeader) {
		t.Errorf("expected ErrMissingHeader, got %v", err)
	}

	truncated := RegFileHeader + "\r\n[HKCU\\x]\r\n\"Blob\"=hex:01,02,\\\r\n  03,\\\r\n"
	_, err = Parse(strings.NewReader(truncated), ParseOptions{})
	if !errors.Is(err, ErrUnterminatedContinuation) {
		t.Errorf("expected ErrUnterminatedContinuation, got %v", err)
	}
}

func TestParseANSI(t *testing.T) {
	// 0xE9 is é in Windows-1252.
	input := []byte(RegFileHeaderV4 + "\r\n\r\n[HKCU\\x]\r\n\"Name\"=\"caf\xe9\"\r\n")
	keys, err := Parse(bytes.NewReader(input), ParseOptions{ANSI: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := keys[0].Values[0].Data; got != "café" {
		t.Errorf("Data: expected %q, got %q", "café", got)
	}
}

func TestSplitRoot(t *testing.T) {
	tests := []struct {
		path string
		root string
		rest string
		ok   bool
	}{
		{`HKEY_CURRENT_USER\SOFTWARE\X`, HKEYCurrentUser, `SOFTWARE\X`, true},
		{`hkcu\SOFTWARE`, HKEYCurrentUser, "SOFTWARE", true},
		{`HKCR\txtfile`, HKEYClassesRoot, "txtfile", true},
		{`HKEY_LOCAL_MACHINE\SOFTWARE`, "HKEY_LOCAL_MACHINE", "SOFTWARE", false},
	}
	for _, tt := range tests {
		root, rest, ok := SplitRoot(tt.path)
		if root != tt.root || rest != tt.rest || ok != tt.ok {
			t.Errorf("SplitRoot(%q) = %q, %q, %v", tt.path, root, rest, ok)
		}
	}
}
