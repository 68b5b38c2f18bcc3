package pomodoro

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{754, "12:34"},
		{6000, "100:00"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestClampEstimate(t *testing.T) {
	tests := []struct {
		estimated, delta, want int
	}{
		{1, -1, 1},
		{5, -1, 4},
		{5, 1, 6},
		{0, 1, 1},
		{0, -1, 1},
		{3, -10, 1},
	}

	for _, tt := range tests {
		if got := ClampEstimate(tt.estimated, tt.delta); got != tt.want {
			t.Errorf("ClampEstimate(%d, %d) = %d, want %d", tt.estimated, tt.delta, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Work.String() != "work" || Break.String() != "break" {
		t.Errorf("unexpected phase names %q %q", Work, Break)
	}
}
