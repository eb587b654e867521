package prediction

import (
	"errors"
	"testing"
	"time"
)

func TestTeamKeyRoundTrip(t *testing.T) {
	cases := []struct {
		raw  string
		want TeamKey
	}{
		{raw: "u1", want: PrimaryTeam("u1")},
		{raw: "u1-secondary", want: SecondaryTeam("u1")},
		{raw: "  u2-secondary ", want: SecondaryTeam("u2")},
	}

	for _, tc := range cases {
		got, err := ParseTeamKey(tc.raw)
		if err != nil {
			t.Fatalf("ParseTeamKey(%q) error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTeamKey(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
		if got.String() != tc.want.String() {
			t.Fatalf("String() = %q, want %q", got.String(), tc.want.String())
		}
	}
}

func TestParseTeamKeyInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "-secondary"} {
		if _, err := ParseTeamKey(raw); !errors.Is(err, ErrInvalidTeamKey) {
			t.Fatalf("ParseTeamKey(%q) error = %v, want ErrInvalidTeamKey", raw, err)
		}
	}
}

func TestDeriveTeamKey(t *testing.T) {
	account := Account{UserID: "u1", TeamName: "Box Box", SecondaryTeamName: "Undercut"}

	cases := []struct {
		name     string
		teamID   string
		teamName string
		want     string
	}{
		{name: "explicit secondary id", teamID: "u1-secondary", want: "u1-secondary"},
		{name: "explicit primary id", teamID: "u1", teamName: "Box Box", want: "u1"},
		{name: "secondary name beats primary id", teamID: "u1", teamName: "Undercut", want: "u1-secondary"},
		{name: "secondary id with primary name", teamID: "u1-secondary", teamName: "Box Box", want: "u1-secondary"},
		{name: "secondary name match", teamName: "undercut ", want: "u1-secondary"},
		{name: "primary name", teamName: "Box Box", want: "u1"},
		{name: "foreign team id ignored", teamID: "u9-secondary", teamName: "Box Box", want: "u1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTeamKey(account, tc.teamID, tc.teamName)
			if got.String() != tc.want {
				t.Fatalf("DeriveTeamKey = %q, want %q", got.String(), tc.want)
			}
		})
	}
}

func TestDeriveTeamKeyWithoutSecondaryName(t *testing.T) {
	got := DeriveTeamKey(Account{UserID: "u1"}, "", "")
	if got != PrimaryTeam("u1") {
		t.Fatalf("DeriveTeamKey = %+v, want primary", got)
	}
}

func TestFromSubmissionCopiesOrder(t *testing.T) {
	account := Account{UserID: "u1", SecondaryTeamName: "Undercut"}
	order := []string{"a", "b", "c", "d", "e", "f"}
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	got := FromSubmission(account, Submission{
		ID:          "p1",
		RaceID:      "Australian-Grand-Prix",
		TeamName:    "Undercut",
		Predictions: order,
		SubmittedAt: at,
	})
	order[0] = "z"

	if got.Order[0] != "a" {
		t.Fatalf("expected order to be copied, got %v", got.Order)
	}
	if got.Team != SecondaryTeam("u1") {
		t.Fatalf("unexpected team %+v", got.Team)
	}
	if got.EventID != "Australian-Grand-Prix" || !got.SubmittedAt.Equal(at) {
		t.Fatalf("unexpected prediction %+v", got)
	}
}
