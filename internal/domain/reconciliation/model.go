package reconciliation

import "time"

const ReportTypeFullCrossCheck = "FULL_CROSS_CHECK"

// Classification is the outcome of checking one stored score.
type Classification string

const (
	ClassSkipped      Classification = "skipped"
	ClassNoResult     Classification = "no_result"
	ClassNoPrediction Classification = "no_prediction"
	ClassInvalid      Classification = "invalid"
	ClassMatch        Classification = "match"
	ClassMismatch     Classification = "mismatch"
)

// Mismatch is a stored score whose total disagrees with the recomputed one.
type Mismatch struct {
	ScoreID           string `json:"scoreId"`
	EventID           string `json:"eventId"`
	TeamKey           string `json:"teamKey"`
	Stored            int    `json:"stored"`
	Computed          int    `json:"computed"`
	Ambiguous         bool   `json:"ambiguous"`
	CandidateCount    int    `json:"candidateCount"`
	StoredBreakdown   string `json:"storedBreakdown,omitempty"`
	ComputedBreakdown string `json:"computedBreakdown,omitempty"`
}

func (m Mismatch) Delta() int {
	return m.Computed - m.Stored
}

type Summary struct {
	TotalScores    int `json:"totalScores"`
	Skipped        int `json:"skipped"`
	NoResult       int `json:"noResult"`
	NoPrediction   int `json:"noPrediction"`
	MatchCount     int `json:"matchCount"`
	MismatchCount  int `json:"mismatchCount"`
	AmbiguousCount int `json:"ambiguousCount"`
	InvalidCount   int `json:"invalidCount"`
}

// Add counts one classified record. Ambiguity is tracked on top of the
// match/mismatch outcome.
func (s *Summary) Add(class Classification, ambiguous bool) {
	s.TotalScores++
	switch class {
	case ClassSkipped:
		s.Skipped++
	case ClassNoResult:
		s.NoResult++
	case ClassNoPrediction:
		s.NoPrediction++
	case ClassInvalid:
		s.InvalidCount++
	case ClassMatch:
		s.MatchCount++
	case ClassMismatch:
		s.MismatchCount++
	}
	if ambiguous {
		s.AmbiguousCount++
	}
}

type Report struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Summary    Summary    `json:"summary"`
	Mismatches []Mismatch `json:"mismatches"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Capped returns a copy of the report holding at most limit mismatches.
// A non-positive limit keeps every mismatch.
func (r Report) Capped(limit int) Report {
	out := r
	if limit <= 0 || len(r.Mismatches) <= limit {
		out.Mismatches = append([]Mismatch(nil), r.Mismatches...)
		return out
	}
	out.Mismatches = append([]Mismatch(nil), r.Mismatches[:limit]...)
	return out
}
