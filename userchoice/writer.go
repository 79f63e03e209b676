package userchoice

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/userchoice/internal/osver"
	"github.com/joshuapare/userchoice/userchoice/acl"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

// Notifier is told once a record has been written.
type Notifier interface {
	AssocChanged()
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func()

func (f NotifyFunc) AssocChanged() { f() }

// Writer writes UserChoice records.
type Writer struct {
	// Registry is required.
	Registry reg.Registry

	// User resolves the SID the record is written for. Required.
	User func() (acl.SID, error)

	// Guard controls hash timing; its zero value uses the system clock and
	// the default threshold and attempt count.
	Guard Guard

	// Version gates Set on Windows 10 1703. Nil disables the check.
	Version func() osver.Info

	// Notifier is called after a successful write. Optional.
	Notifier Notifier

	// TempName names the key while the record is written. Default: a braced
	// upper-case random UUID.
	TempName func() string

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Choice is a stored UserChoice record.
type Choice struct {
	ProgID    string
	Hash      string
	LastWrite time.Time
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.Logger
}

// NewTempName returns a name like {0F1E2D3C-...}.
func NewTempName() string {
	return "{" + strings.ToUpper(uuid.NewString()) + "}"
}

func (w *Writer) tempName() string {
	if w.TempName == nil {
		return NewTempName()
	}
	return w.TempName()
}

// Set makes progID the handler for assocID for the current user.
//
// The sequence is: hash under the Guard, open the association key, clear an
// old extension record, rename the key to a temporary name, write ProgId and
// Hash through ProtectedLock, rename back, notify. A failure after the
// rename leaves the key under its temporary name; nothing is rolled back.
func (w *Writer) Set(assocID, progID string) error {
	if err := ValidateAssocID(assocID); err != nil {
		return err
	}
	if progID == "" {
		return ErrEmptyProgID
	}
	if w.Version != nil {
		if v := w.Version(); !v.SupportsUserChoiceHash() {
			return fmt.Errorf("%w: %s", ErrUnsupportedOS, v)
		}
	}
	if w.User == nil {
		return ErrNoUser
	}
	user, err := w.User()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoUser, err)
	}

	log := w.logger().With("assoc", assocID, "progid", progID)

	g := w.Guard
	if g.Logger == nil {
		g.Logger = log
	}
	hash, ts, err := g.Generate(func(t time.Time) (string, error) {
		return ComputeHash(assocID, user.String(), progID, t)
	})
	if err != nil {
		return fmt.Errorf("generate hash: %w", err)
	}
	log.Debug("hash generated", "hash", hash, "minute", ts.Truncate(time.Minute))

	path := KeyPath(assocID, !IsExtension(assocID))
	base, err := w.Registry.Root(reg.CurrentUser).CreateSubKey(path, reg.AccessAll)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer base.Close()

	if IsExtension(assocID) {
		if err := DeleteProtectedValues(base, user, true, ValueProgID, ValueHash); err != nil {
			return fmt.Errorf("clear old choice: %w", err)
		}
	}

	tmp := w.tempName()
	if err := base.Rename(tmp); err != nil {
		return fmt.Errorf("rename %s to %s: %w", assocID, tmp, err)
	}
	log.Debug("key renamed", "temp", tmp)

	if err := w.writeChoice(base, user, progID, hash); err != nil {
		log.Error("write failed; key left under temporary name", "temp", tmp, "error", err)
		return err
	}

	if err := base.Rename(assocID); err != nil {
		log.Error("rename back failed", "temp", tmp, "error", err)
		return fmt.Errorf("rename %s to %s: %w", tmp, assocID, err)
	}

	if w.Notifier != nil {
		w.Notifier.AssocChanged()
	}
	log.Info("association set", "hash", hash)
	return nil
}

func (w *Writer) writeChoice(base reg.Key, user acl.SID, progID, hash string) error {
	if err := SetProtectedValue(base, user, ValueProgID, progID); err != nil {
		return fmt.Errorf("write %s: %w", ValueProgID, err)
	}
	if err := SetProtectedValue(base, user, ValueHash, hash); err != nil {
		return fmt.Errorf("write %s: %w", ValueHash, err)
	}
	return nil
}

// Current reads the stored record for assocID.
func (w *Writer) Current(assocID string) (Choice, error) {
	return ReadChoice(w.Registry, assocID)
}

// ReadChoice reads ProgId, Hash and the last-write time of assocID's
// UserChoice subkey.
func ReadChoice(r reg.Registry, assocID string) (Choice, error) {
	if err := ValidateAssocID(assocID); err != nil {
		return Choice{}, err
	}
	path := ChoicePath(assocID)
	k, err := r.Root(reg.CurrentUser).OpenSubKey(path, reg.AccessRead)
	if err != nil {
		return Choice{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer k.Close()

	var c Choice
	if c.ProgID, err = k.GetStringValue("", ValueProgID); err != nil {
		return Choice{}, err
	}
	if c.Hash, err = k.GetStringValue("", ValueHash); err != nil {
		return Choice{}, err
	}
	info, err := k.Info()
	if err != nil {
		return Choice{}, err
	}
	c.LastWrite = info.LastWrite
	return c, nil
}

// ProgIDExists reports whether progID is registered under classes
// (normally HKEY_CLASSES_ROOT). The check is advisory; Set does not make it.
func ProgIDExists(classes reg.Key, progID string) (bool, error) {
	if progID == "" {
		return false, ErrEmptyProgID
	}
	k, err := classes.OpenSubKey(progID, reg.AccessQueryValue)
	if errors.Is(err, reg.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, k.Close()
}
