package format

import (
	"errors"
	"testing"
	"time"
)

func TestTimeToFiletime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want uint64
	}{
		{"epoch", time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"unix epoch", time.Unix(0, 0), 116444736000000000},
		{"minute", time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), 0x01da6bc1516fea00},
		{"sub-tick dropped", time.Date(2024, 3, 1, 10, 15, 0, 99, time.UTC), 0x01da6bc1516fea00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToFiletime(tt.in)
			if err != nil {
				t.Fatalf("TimeToFiletime: %v", err)
			}
			if got != tt.want {
				t.Fatalf("TimeToFiletime(%v) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeToFiletimeRange(t *testing.T) {
	_, err := TimeToFiletime(time.Date(1600, 12, 31, 23, 59, 59, 0, time.UTC))
	if !errors.Is(err, ErrTimeRange) {
		t.Fatalf("expected ErrTimeRange, got %v", err)
	}
	if _, err := TimeToFiletime(time.Time{}); !errors.Is(err, ErrTimeRange) {
		t.Fatalf("zero time: expected ErrTimeRange, got %v", err)
	}
}

func TestFiletimeRoundTrip(t *testing.T) {
	in := time.Date(2021, 6, 15, 8, 30, 12, 345600, time.UTC)
	ft, err := TimeToFiletime(in)
	if err != nil {
		t.Fatalf("TimeToFiletime: %v", err)
	}
	if got := FiletimeToTime(ft); !got.Equal(in) {
		t.Fatalf("round trip = %v, want %v", got, in)
	}
	if got := FiletimeToTime(0); !got.Equal(filetimeEpoch) {
		t.Fatalf("FiletimeToTime(0) = %v", got)
	}
}

func TestSplitFiletime(t *testing.T) {
	hi, lo := SplitFiletime(0x01da6bc1516fea00)
	if hi != 0x01da6bc1 || lo != 0x516fea00 {
		t.Fatalf("SplitFiletime = %#x %#x", hi, lo)
	}
}

func TestMinuteFloor(t *testing.T) {
	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	in := time.Date(2024, 3, 1, 15, 45, 42, 123456789, loc)
	want := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	if got := MinuteFloor(in); !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("MinuteFloor = %v, want %v", got, want)
	}
}
