package prediction

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidTeamKey = errors.New("invalid team key")

// TeamRole distinguishes the two entries a single account may own.
type TeamRole string

const (
	RolePrimary   TeamRole = "primary"
	RoleSecondary TeamRole = "secondary"

	secondarySuffix = "-secondary"
)

// TeamKey identifies one participant entry. Its string form is the account id,
// suffixed with "-secondary" for the second entry of a dual-entry account.
type TeamKey struct {
	UserID string
	Role   TeamRole
}

func PrimaryTeam(userID string) TeamKey {
	return TeamKey{UserID: userID, Role: RolePrimary}
}

func SecondaryTeam(userID string) TeamKey {
	return TeamKey{UserID: userID, Role: RoleSecondary}
}

func (k TeamKey) String() string {
	if k.Role == RoleSecondary {
		return k.UserID + secondarySuffix
	}
	return k.UserID
}

func (k TeamKey) IsSecondary() bool {
	return k.Role == RoleSecondary
}

func ParseTeamKey(raw string) (TeamKey, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return TeamKey{}, ErrInvalidTeamKey
	}
	if userID, ok := strings.CutSuffix(value, secondarySuffix); ok {
		if userID == "" {
			return TeamKey{}, ErrInvalidTeamKey
		}
		return SecondaryTeam(userID), nil
	}
	return PrimaryTeam(value), nil
}

// Account is the owner of one or two team entries.
type Account struct {
	UserID            string
	TeamName          string
	SecondaryTeamName string
}

// Submission is a prediction document as written under its owning account.
// Edits append new submissions rather than replacing old ones.
type Submission struct {
	ID             string
	RaceID         string
	TeamID         string
	TeamName       string
	Predictions    []string
	SubmittedAt    time.Time
	IsCarryForward bool
}

type Prediction struct {
	ID             string
	Team           TeamKey
	TeamName       string
	EventID        string
	Order          []string
	SubmittedAt    time.Time
	IsCarryForward bool
}

// DeriveTeamKey decides which of an account's entries a submission belongs to.
// A team name matching the account's secondary team name, or an explicit
// secondary team id owned by the account, makes it the secondary entry.
// Everything else is the primary entry.
func DeriveTeamKey(account Account, teamID, teamName string) TeamKey {
	secondaryName := strings.TrimSpace(account.SecondaryTeamName)
	if secondaryName != "" && strings.EqualFold(strings.TrimSpace(teamName), secondaryName) {
		return SecondaryTeam(account.UserID)
	}
	if key, err := ParseTeamKey(teamID); err == nil && key.UserID == account.UserID && key.IsSecondary() {
		return key
	}
	return PrimaryTeam(account.UserID)
}

func FromSubmission(account Account, item Submission) Prediction {
	order := make([]string, len(item.Predictions))
	copy(order, item.Predictions)

	return Prediction{
		ID:             item.ID,
		Team:           DeriveTeamKey(account, item.TeamID, item.TeamName),
		TeamName:       item.TeamName,
		EventID:        item.RaceID,
		Order:          order,
		SubmittedAt:    item.SubmittedAt,
		IsCarryForward: item.IsCarryForward,
	}
}
