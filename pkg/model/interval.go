package model

import "time"

// Interval is a finished work interval, as logged to the calendar. ID is
// assigned once when the interval ends and stays stable across retries.
type Interval struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Label     string    `json:"label"`
	Project   string    `json:"project,omitempty"`
	Number    int       `json:"number"`    // completed count after this interval
	Estimated int       `json:"estimated"` // estimate at the time it finished
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}
