package main

import (
	"testing"

	"github.com/joshuapare/userchoice/internal/testutil"
)

func TestHashCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		time        string
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "extension",
			args:        []string{".foo", "FooApp.Document"},
			time:        "2024-03-01T10:15:42Z",
			wantContain: []string{"64Tu1JFwxcY="},
		},
		{
			name:        "scheme as JSON",
			args:        []string{"http", "ChromeHTML"},
			time:        "2024-03-01T10:15:00Z",
			wantJSON:    true,
			wantContain: []string{"PDsmT2z6ag0=", `"minute": "2024-03-01T10:15:00Z"`},
		},
		{
			name:    "bad time",
			args:    []string{".foo", "FooApp.Document"},
			time:    "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useMemoryRegistry(t)
			jsonOut = tt.wantJSON
			hashSID = testutil.TestUserSID
			hashTime = tt.time
			t.Cleanup(func() { hashSID, hashTime = "", "" })

			output, err := captureOutput(t, func() error {
				return runHash(tt.args)
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestPathCommand(t *testing.T) {
	useMemoryRegistry(t)

	output, err := captureOutput(t, func() error {
		return runPath([]string{".txt"})
	})
	if err != nil {
		t.Fatalf("runPath() error = %v", err)
	}
	assertContains(t, output, []string{`HKEY_CURRENT_USER\SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\FileExts\.txt`})

	if _, err := captureOutput(t, func() error { return runPath([]string{`a\b`}) }); err == nil {
		t.Error("runPath() accepted an id with a backslash")
	}
}
