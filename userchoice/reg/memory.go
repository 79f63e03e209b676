package reg

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joshuapare/userchoice/userchoice/acl"
)

// MemoryOptions configures a Memory registry.
type MemoryOptions struct {
	// Now supplies last-write timestamps. Default: time.Now in UTC.
	Now func() time.Time

	// User is the principal every access check runs as. When zero, keys are
	// created with a NULL DACL and no deny entry is ever enforced.
	User acl.SID
}

// Memory is an in-process registry. It is safe for concurrent use, though
// the association core never relies on that.
type Memory struct {
	mu    sync.Mutex
	now   func() time.Time
	user  acl.SID
	roots map[Root]*memNode
}

type memNode struct {
	name      string
	parent    *memNode
	children  map[string]*memNode // keyed by normalized name
	values    map[string]memValue // keyed by normalized name
	lastWrite time.Time
	dacl      *acl.ACL
	protected bool
	deleted   bool
}

type memValue struct {
	name string
	data string
}

// NewMemory returns an empty registry with CurrentUser and ClassesRoot roots.
func NewMemory(opts MemoryOptions) *Memory {
	m := &Memory{now: opts.Now, user: opts.User, roots: make(map[Root]*memNode)}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().UTC() }
	}
	for _, r := range []Root{CurrentUser, ClassesRoot} {
		m.roots[r] = m.newNode(r.String(), nil)
	}
	return m
}

// Root implements Registry.
func (m *Memory) Root(r Root) Key {
	n, ok := m.roots[r]
	if !ok {
		return &memKey{m: m, closed: true}
	}
	return &memKey{m: m, n: n, access: AccessAll, root: true}
}

// User reports the principal access checks run as.
func (m *Memory) User() acl.SID { return m.user }

func (m *Memory) newNode(name string, parent *memNode) *memNode {
	n := &memNode{
		name:      name,
		parent:    parent,
		children:  make(map[string]*memNode),
		values:    make(map[string]memValue),
		lastWrite: m.now(),
	}
	if !m.user.IsZero() {
		n.dacl = acl.New(
			acl.NewAllowACE(m.user, acl.KeyAllAccess),
			acl.NewAllowACE(acl.LocalSystem, acl.KeyAllAccess),
		)
	}
	return n
}

func normalizeName(name string) string {
	return strings.ToLower(name)
}

func splitPath(path string) ([]string, error) {
	path = strings.Trim(path, `\`)
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, `\`)
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, path)
		}
	}
	return parts, nil
}

func (m *Memory) touch(n *memNode) {
	n.lastWrite = m.now()
}

// denied runs the DACL half of an access check for the configured user.
func (m *Memory) denied(n *memNode, want Access) bool {
	if m.user.IsZero() {
		return false
	}
	return n.dacl.Denies(m.user, uint32(want))
}

type memKey struct {
	m      *Memory
	n      *memNode
	access Access
	root   bool
	closed bool
}

func (k *memKey) live() error {
	if k.closed || k.n == nil {
		return ErrClosed
	}
	if k.n.deleted {
		return fmt.Errorf("%w: key deleted", ErrNotExist)
	}
	return nil
}

func (k *memKey) walk(path string, create bool) (*memNode, error) {
	parts, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	n := k.n
	for _, p := range parts {
		c, ok := n.children[normalizeName(p)]
		if !ok {
			if !create {
				return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
			}
			c = k.m.newNode(p, n)
			n.children[normalizeName(p)] = c
			k.m.touch(n)
		}
		n = c
	}
	return n, nil
}

func (k *memKey) open(path string, access Access, create bool) (Key, error) {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if err := k.live(); err != nil {
		return nil, err
	}
	n, err := k.walk(path, create)
	if err != nil {
		return nil, err
	}
	if k.m.denied(n, access) {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
	}
	return &memKey{m: k.m, n: n, access: access}, nil
}

func (k *memKey) CreateSubKey(path string, access Access) (Key, error) {
	return k.open(path, access, true)
}

func (k *memKey) OpenSubKey(path string, access Access) (Key, error) {
	return k.open(path, access, false)
}

func (k *memKey) DeleteSubKey(path string) error {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if err := k.live(); err != nil {
		return err
	}
	if strings.Trim(path, `\`) == "" {
		return fmt.Errorf("%w: empty subkey", ErrInvalidName)
	}
	n, err := k.walk(path, false)
	if err != nil {
		return err
	}
	if len(n.children) > 0 {
		return fmt.Errorf("%w: %s", ErrHasSubkeys, path)
	}
	if k.m.denied(n, AccessDelete) {
		return fmt.Errorf("%w: %s", ErrAccessDenied, path)
	}
	delete(n.parent.children, normalizeName(n.name))
	n.deleted = true
	k.m.touch(n.parent)
	return nil
}

func (k *memKey) Rename(newName string) error {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if err := k.live(); err != nil {
		return err
	}
	if k.root || k.n.parent == nil {
		return fmt.Errorf("%w: cannot rename a root key", ErrInvalidName)
	}
	if newName == "" || strings.Contains(newName, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}
	siblings := k.n.parent.children
	if other, ok := siblings[normalizeName(newName)]; ok && other != k.n {
		return fmt.Errorf("%w: %s", ErrExist, newName)
	}
	delete(siblings, normalizeName(k.n.name))
	k.n.name = newName
	siblings[normalizeName(newName)] = k.n
	return nil
}

// target resolves the key a value operation addresses. For the handle's own
// key the handle rights decide; for a subkey the subkey's DACL does.
func (k *memKey) target(subKey string, want Access) (*memNode, error) {
	if err := k.live(); err != nil {
		return nil, err
	}
	if subKey == "" {
		if k.access&want != want {
			return nil, fmt.Errorf("%w: handle lacks %#x", ErrAccessDenied, uint32(want))
		}
		return k.n, nil
	}
	n, err := k.walk(subKey, false)
	if err != nil {
		return nil, err
	}
	if k.m.denied(n, want) {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, subKey)
	}
	return n, nil
}

func (k *memKey) SetStringValue(subKey, name, value string) error {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	n, err := k.target(subKey, AccessSetValue)
	if err != nil {
		return err
	}
	n.values[normalizeName(name)] = memValue{name: name, data: value}
	k.m.touch(n)
	return nil
}

func (k *memKey) GetStringValue(subKey, name string) (string, error) {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	n, err := k.target(subKey, AccessQueryValue)
	if err != nil {
		return "", err
	}
	v, ok := n.values[normalizeName(name)]
	if !ok {
		return "", fmt.Errorf("%w: value %q", ErrNotExist, name)
	}
	return v.data, nil
}

func (k *memKey) DeleteValue(subKey, name string) error {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	n, err := k.target(subKey, AccessSetValue)
	if err != nil {
		return err
	}
	if _, ok := n.values[normalizeName(name)]; !ok {
		return fmt.Errorf("%w: value %q", ErrNotExist, name)
	}
	delete(n.values, normalizeName(name))
	k.m.touch(n)
	return nil
}

func (k *memKey) Info() (KeyInfo, error) {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if err := k.live(); err != nil {
		return KeyInfo{}, err
	}
	return KeyInfo{
		SubKeys:   len(k.n.children),
		Values:    len(k.n.values),
		LastWrite: k.n.lastWrite,
	}, nil
}

func (k *memKey) DACL() (*acl.ACL, error) {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if err := k.live(); err != nil {
		return nil, err
	}
	if k.access&AccessReadControl == 0 {
		return nil, fmt.Errorf("%w: handle lacks READ_CONTROL", ErrAccessDenied)
	}
	return k.n.dacl.Clone(), nil
}

func (k *memKey) SetDACL(d *acl.ACL, p Protection) error {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if err := k.live(); err != nil {
		return err
	}
	if k.access&AccessWriteDAC == 0 {
		return fmt.Errorf("%w: handle lacks WRITE_DAC", ErrAccessDenied)
	}
	if d != nil {
		// Encoding enforces the AclSize limit the real call would.
		if _, err := d.Bytes(); err != nil {
			return err
		}
	}
	k.n.dacl = d.Clone()
	switch p {
	case ProtectionOff:
		k.n.protected = false
	case ProtectionOn:
		k.n.protected = true
	}
	return nil
}

func (k *memKey) Close() error {
	if k.root {
		return nil
	}
	k.m.mu.Lock()
	k.closed = true
	k.m.mu.Unlock()
	return nil
}

// Name returns the key's current last path component.
func (k *memKey) Name() string {
	k.m.mu.Lock()
	defer k.m.mu.Unlock()
	if k.n == nil {
		return ""
	}
	return k.n.name
}

// SubKeyNames lists the immediate children of root\path in sorted order.
func (m *Memory) SubKeyNames(r Root, path string) ([]string, error) {
	k := m.Root(r).(*memKey)
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := k.walk(path, false)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(n.children))
	for _, c := range n.children {
		names = append(names, c.name)
	}
	sort.Strings(names)
	return names, nil
}

// Protected reports whether root\path has a protected DACL.
func (m *Memory) Protected(r Root, path string) (bool, error) {
	k := m.Root(r).(*memKey)
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := k.walk(path, false)
	if err != nil {
		return false, err
	}
	return n.protected, nil
}
