package race

import "time"

// Result is the official top six of one event. TopSix[0] is the winner.
type Result struct {
	EventID    string
	TopSix     []string
	RecordedAt time.Time
}

// Position returns the zero-based finishing index of a driver, or -1 when the
// driver is not in the top six.
func (r Result) Position(driverID string) int {
	for idx, item := range r.TopSix {
		if item == driverID {
			return idx
		}
	}
	return -1
}
