package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/joshuapare/userchoice/userchoice/acl"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

// FakeClock is a manual clock. Each Now call returns the current time and
// then advances it by Step.
type FakeClock struct {
	mu    sync.Mutex
	t     time.Time
	Step  time.Duration
	calls int
}

// NewFakeClock returns a clock stopped at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	c.calls++
	return now
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Calls reports how many times Now was called.
func (c *FakeClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Peek returns the current time without advancing.
func (c *FakeClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// SetupRegistry returns an in-memory registry acting as TestUser whose
// last-write times come from a FakeClock stopped at TestTime.
//
// Example:
//
//	r, clock := testutil.SetupRegistry(t)
//	clock.Advance(30 * time.Second)
func SetupRegistry(t *testing.T) (*reg.Memory, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(TestTime)
	r := reg.NewMemory(reg.MemoryOptions{Now: clock.Peek, User: TestUser})
	return r, clock
}

// StaticUser returns a User func for Writer that always yields sid.
func StaticUser(sid acl.SID) func() (acl.SID, error) {
	return func() (acl.SID, error) { return sid, nil }
}

// LockUserChoice creates root\path\UserChoice carrying a KEY_SET_VALUE deny
// entry for sid, the way the shell leaves it.
func LockUserChoice(t *testing.T, r reg.Registry, path string, sid acl.SID) {
	t.Helper()
	k, err := r.Root(reg.CurrentUser).CreateSubKey(path+`\UserChoice`, reg.AccessReadControl|reg.AccessWriteDAC)
	if err != nil {
		t.Fatalf("create UserChoice: %v", err)
	}
	defer k.Close()
	d, err := k.DACL()
	if err != nil {
		t.Fatalf("read DACL: %v", err)
	}
	locked, err := d.PrependDeny(sid, acl.KeySetValue)
	if err != nil {
		t.Fatalf("build DACL: %v", err)
	}
	if err := k.SetDACL(locked, reg.ProtectionOff); err != nil {
		t.Fatalf("write DACL: %v", err)
	}
}
