package userchoice

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joshuapare/userchoice/internal/format"
)

const (
	// DefaultWriteThreshold is the time left in the minute a hash must have
	// after generation for the write to be attempted.
	DefaultWriteThreshold = time.Second

	// DefaultMaxAttempts bounds Guard.Generate.
	DefaultMaxAttempts = 3

	// NoWriteMargin makes Guard accept any result whose generation and check
	// times share a minute.
	NoWriteMargin time.Duration = -1
)

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// TimeToNextMinute reports how much of start's minute is left at now. It is
// zero once now has left that minute in either direction.
func TimeToNextMinute(start, now time.Time) time.Duration {
	floor := format.MinuteFloor(start)
	next := floor.Add(time.Minute)
	if now.Before(floor) || !now.Before(next) {
		return 0
	}
	return next.Sub(now)
}

// Guard keeps hash generation and the registry write inside one minute.
type Guard struct {
	// Clock defaults to SystemClock.
	Clock Clock

	// WriteThreshold is the minimum time that must remain in the generation
	// minute after hashing. Zero selects DefaultWriteThreshold; NoWriteMargin
	// only requires both readings to fall in the same minute.
	WriteThreshold time.Duration

	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int

	// Logger receives one Debug record per rejected attempt.
	Logger *slog.Logger
}

func (g Guard) clock() Clock {
	if g.Clock == nil {
		return SystemClock{}
	}
	return g.Clock
}

func (g Guard) threshold() time.Duration {
	switch {
	case g.WriteThreshold == 0:
		return DefaultWriteThreshold
	case g.WriteThreshold < 0:
		return 0
	default:
		return g.WriteThreshold
	}
}

func (g Guard) attempts() int {
	if g.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return g.MaxAttempts
}

func (g Guard) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

// Generate calls fn with the current time and accepts its result only if
// more than the write threshold is left in that minute once fn returns. It
// returns the hash and the time it was generated for. Errors from fn are
// returned as is, without retrying.
func (g Guard) Generate(fn func(time.Time) (string, error)) (string, time.Time, error) {
	clock, threshold, log := g.clock(), g.threshold(), g.logger()
	for attempt := 1; attempt <= g.attempts(); attempt++ {
		t0 := clock.Now()
		hash, err := fn(t0)
		if err != nil {
			return "", time.Time{}, err
		}
		t1 := clock.Now()
		left := TimeToNextMinute(t0, t1)
		if left > threshold {
			return hash, t0, nil
		}
		log.Debug("hash too close to minute boundary",
			"attempt", attempt, "generated", t0, "checked", t1, "left", left)
	}
	return "", time.Time{}, fmt.Errorf("%w (%d attempts)", ErrMinuteBoundary, g.attempts())
}
