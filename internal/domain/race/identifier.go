package race

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidIdentifier = errors.New("invalid event identifier")

// Session tags which part of a race weekend an event id refers to.
type Session string

const (
	SessionNone      Session = ""
	SessionGrandPrix Session = "GP"
	SessionSprint    Session = "Sprint"
)

// ID is a parsed event identifier. Base is the comparison form shared by every
// session of the same weekend.
type ID struct {
	Base    string
	Session Session
}

var upperTokens = map[string]string{
	"ii":  "II",
	"iii": "III",
	"iv":  "IV",
	"gp":  "GP",
}

// Normalize returns the lower-case hyphen-separated comparison form of an
// event id with any trailing -GP/-Sprint suffix removed.
func Normalize(id string) (string, error) {
	parsed, err := Parse(id)
	if err != nil {
		return "", err
	}
	return parsed.Base, nil
}

func Parse(id string) (ID, error) {
	tokens := tokenize(id)
	if len(tokens) == 0 {
		return ID{}, ErrInvalidIdentifier
	}

	session := SessionNone
	for len(tokens) > 1 {
		tail := sessionOf(tokens[len(tokens)-1])
		if tail == SessionNone {
			break
		}
		if session == SessionNone {
			session = tail
		}
		tokens = tokens[:len(tokens)-1]
	}

	return ID{
		Base:    strings.Join(tokens, "-"),
		Session: session,
	}, nil
}

// Canonical renders the Title-Case-With-Hyphens display form, keeping the
// session suffix.
func Canonical(id string) (string, error) {
	tokens := tokenize(id)
	if len(tokens) == 0 {
		return "", ErrInvalidIdentifier
	}

	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if upper, ok := upperTokens[token]; ok {
			out = append(out, upper)
			continue
		}
		out = append(out, titleCase(token))
	}
	return strings.Join(out, "-"), nil
}

// SameEvent reports whether two ids refer to the same race weekend.
func SameEvent(a, b string) bool {
	left, err := Normalize(a)
	if err != nil {
		return false
	}
	right, err := Normalize(b)
	if err != nil {
		return false
	}
	return left == right
}

func sessionOf(token string) Session {
	switch token {
	case "gp":
		return SessionGrandPrix
	case "sprint":
		return SessionSprint
	default:
		return SessionNone
	}
}

func tokenize(id string) []string {
	return strings.FieldsFunc(strings.ToLower(strings.TrimSpace(id)), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
}

func titleCase(token string) string {
	runes := []rune(token)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
