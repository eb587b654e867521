package prediction

import "github.com/riskibarqy/prix-six/internal/domain/race"

// GroupForEvent collects each team's candidates for one event. Predictions
// tagged with the event's session are preferred; predictions without a session
// only stand in for teams that have nothing tagged for it. An event id without
// a session is the grand prix.
func GroupForEvent(predictions []Prediction, eventID string) (map[TeamKey][]Prediction, error) {
	target, err := race.Parse(eventID)
	if err != nil {
		return nil, err
	}
	want := sessionOrGrandPrix(target.Session)

	tagged := make(map[TeamKey][]Prediction)
	untagged := make(map[TeamKey][]Prediction)
	for _, item := range predictions {
		if !race.SameEvent(item.EventID, eventID) {
			continue
		}
		parsed, err := race.Parse(item.EventID)
		if err != nil {
			continue
		}
		switch {
		case parsed.Session == race.SessionNone:
			untagged[item.Team] = append(untagged[item.Team], item)
		case parsed.Session == want:
			tagged[item.Team] = append(tagged[item.Team], item)
		}
	}

	for team, items := range untagged {
		if _, ok := tagged[team]; !ok {
			tagged[team] = items
		}
	}
	return tagged, nil
}

func sessionOrGrandPrix(session race.Session) race.Session {
	if session == race.SessionNone {
		return race.SessionGrandPrix
	}
	return session
}
