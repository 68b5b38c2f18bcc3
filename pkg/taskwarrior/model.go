package taskwarrior

// PENDING is the status of tasks that can still be worked on.
const PENDING = "pending"

// UDA names holding interval counts. Both must be declared numeric:
//
//	uda.pomodone.type=numeric
//	uda.pomoest.type=numeric
const (
	UDADone     = "pomodone"
	UDAEstimate = "pomoest"
)

type Task struct {
	UUID        string `json:"uuid"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Project     string `json:"project,omitempty"`
	// Est is the optional ISO 8601 estimate UDA (uda.estimate.label=est).
	Est string `json:"est,omitempty"`
	// Interval counts. Taskwarrior exports numeric UDAs as JSON numbers.
	// PomoEst is nil when the UDA was never set, which lets an Est duration
	// stand in for it.
	PomoDone int  `json:"pomodone,omitempty"`
	PomoEst  *int `json:"pomoest,omitempty"`
}
