package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/userchoice/internal/testutil"
	"github.com/joshuapare/userchoice/pkg/assoc"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

// useMemoryRegistry points every command at an in-memory registry for the
// duration of the test and resets the global flags.
func useMemoryRegistry(t *testing.T) (*reg.Memory, *testutil.FakeClock) {
	t.Helper()
	r, clock := testutil.SetupRegistry(t)
	orig := newOptions
	newOptions = func() *assoc.Options {
		return &assoc.Options{
			Registry:         r,
			Clock:            clock,
			User:             testutil.StaticUser(testutil.TestUser),
			SkipVersionCheck: true,
			DisableNotify:    true,
		}
	}
	t.Cleanup(func() { newOptions = orig })

	quiet = false
	verbose = false
	jsonOut = false
	setCheckProgID = false
	setNoNotify = false
	setSkipVersion = false
	setThreshold = 0
	setMaxAttempts = 0
	verifySID = ""
	exportUTF8 = false
	return r, clock
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
