package scoring

import (
	"strings"
	"time"
)

// LateJoinerHandicapID is a synthetic score document that is not tied to any race.
const LateJoinerHandicapID = "late-joiner-handicap"

// Record is a persisted score for one team and one event.
type Record struct {
	ID           string
	UserID       string
	EventID      string
	TeamKey      string
	TotalPoints  int
	Breakdown    string
	CalculatedAt time.Time
}

func RecordID(eventID, teamKey string) string {
	return eventID + "_" + teamKey
}

// SplitRecordID recovers the team key from a score id. eventID is the raw
// event id stored alongside the record and may differ in case from the id prefix.
func SplitRecordID(id, eventID string) string {
	prefix := eventID + "_"
	if eventID != "" && len(id) > len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
		return id[len(prefix):]
	}
	if idx := strings.Index(id, "_"); idx >= 0 {
		return id[idx+1:]
	}
	return ""
}
