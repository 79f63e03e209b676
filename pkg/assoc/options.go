package assoc

import (
	"io"
	"log/slog"
	"time"

	"github.com/joshuapare/userchoice/internal/identity"
	"github.com/joshuapare/userchoice/internal/osver"
	"github.com/joshuapare/userchoice/internal/shellnotify"
	"github.com/joshuapare/userchoice/userchoice"
	"github.com/joshuapare/userchoice/userchoice/acl"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

// Options controls how operations reach the registry.
// A nil *Options uses the live registry, the system clock and the calling
// thread's user.
type Options struct {
	// Registry to operate on.
	// If nil, reg.System() is used.
	Registry reg.Registry

	// Clock supplies the hash timestamp.
	// If nil, the system clock is used.
	Clock userchoice.Clock

	// User resolves the SID records are written for.
	// If nil, the thread token (or process token) user is used.
	User func() (acl.SID, error)

	// Logger receives Debug records for every attempt, rename and lock step.
	// If nil, output is discarded.
	Logger *slog.Logger

	// WriteThreshold is the time that must be left in the minute after the
	// hash is generated. Default: 1s
	WriteThreshold time.Duration

	// MaxAttempts bounds the minute-boundary retry. Default: 3
	MaxAttempts int

	// SkipVersionCheck writes even when the OS is older than 1703.
	SkipVersionCheck bool

	// DisableNotify suppresses the SHCNE_ASSOCCHANGED broadcast.
	DisableNotify bool

	// Notifier replaces the shell broadcast. Ignored when DisableNotify is set.
	Notifier userchoice.Notifier
}

func (o *Options) registry() reg.Registry {
	if o == nil || o.Registry == nil {
		return reg.System()
	}
	return o.Registry
}

func (o *Options) user() func() (acl.SID, error) {
	if o == nil || o.User == nil {
		return identity.Current
	}
	return o.User
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o *Options) writer() *userchoice.Writer {
	if o == nil {
		o = &Options{}
	}
	w := &userchoice.Writer{
		Registry: o.registry(),
		User:     o.user(),
		Guard: userchoice.Guard{
			Clock:          o.Clock,
			WriteThreshold: o.WriteThreshold,
			MaxAttempts:    o.MaxAttempts,
		},
		Logger: o.logger(),
	}
	if !o.SkipVersionCheck {
		w.Version = osver.Current
	}
	switch {
	case o.DisableNotify:
	case o.Notifier != nil:
		w.Notifier = o.Notifier
	default:
		w.Notifier = userchoice.NotifyFunc(shellnotify.AssocChanged)
	}
	return w
}
