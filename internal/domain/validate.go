package domain

import (
	"errors"
	"strings"
)

var (
	// ErrScoreOutOfRange is returned when a score falls outside [0, 5].
	ErrScoreOutOfRange = errors.New("score must be between 0 and 5")

	// ErrDuplicateDay is returned when an entry already exists for the local calendar day.
	ErrDuplicateDay = errors.New("an entry already exists for today")

	// ErrEntryNotFound is returned when no entry matches the given id.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrPasswordNotConfigured is returned by the access gate when no secret is set.
	ErrPasswordNotConfigured = errors.New("password not configured")
)

// Validate checks an entry's content and returns its normalized form.
// Only the score has a hard constraint; notes are trimmed (empty after trim
// means absent) and nil label slices become empty ones so downstream
// aggregation never branches on missing collections. Validating an already
// normalized input returns it unchanged.
func Validate(in EntryInput) (EntryInput, error) {
	if in.Score < 0 || in.Score > 5 {
		return EntryInput{}, ErrScoreOutOfRange
	}

	in.Notes = strings.TrimSpace(in.Notes)
	if in.PotentialCauses == nil {
		in.PotentialCauses = []string{}
	}
	if in.Locations == nil {
		in.Locations = []string{}
	}

	return in, nil
}
