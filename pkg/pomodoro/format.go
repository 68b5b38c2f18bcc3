package pomodoro

import "fmt"

// CompletedGlyph replaces the countdown once the bound task is complete.
const CompletedGlyph = "✓"

// FormatClock renders seconds as MM:SS. Minutes are not capped at 59.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
