package format

import (
	"time"
)

const (
	filetimeUnit           = 100        // FILETIME units are 100ns
	filetimeTicksPerSecond = 10_000_000 // 100ns ticks per second
)

// filetimeEpoch is 1601-01-01T00:00:00Z, the zero FILETIME.
var filetimeEpoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// FiletimeToTime converts a Windows FILETIME value to time.Time.
func FiletimeToTime(v uint64) time.Time {
	secs := int64(v / filetimeTicksPerSecond)
	nsec := int64(v%filetimeTicksPerSecond) * filetimeUnit
	return time.Unix(secs+filetimeEpoch.Unix(), nsec).UTC()
}

// TimeToFiletime converts a time.Time to a Windows FILETIME value.
//
// Unlike a raw UnixNano conversion this works for the whole FILETIME range the
// registry can record; times before 1601 report ErrTimeRange.
func TimeToFiletime(t time.Time) (uint64, error) {
	t = t.UTC()
	if t.Before(filetimeEpoch) {
		return 0, ErrTimeRange
	}
	secs := t.Unix() - filetimeEpoch.Unix()
	if secs < 0 || uint64(secs) > (1<<63)/filetimeTicksPerSecond {
		return 0, ErrTimeRange
	}
	return uint64(secs)*filetimeTicksPerSecond + uint64(t.Nanosecond())/filetimeUnit, nil
}

// SplitFiletime returns the dwHighDateTime and dwLowDateTime halves.
func SplitFiletime(v uint64) (hi, lo uint32) {
	return uint32(v >> FiletimeHalfBits), uint32(v)
}

// MinuteFloor zeroes the seconds and sub-second part of t, in UTC.
func MinuteFloor(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
