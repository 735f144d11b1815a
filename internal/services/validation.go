package services

import (
	"fmt"
	"unicode/utf8"

	"watchlist/internal/models"
)

// Field limits. Lengths are counted in characters, not bytes.
const (
	MaxTitleLength = 60
	YearLength     = 4
	MaxNameLength  = 20

	MaxUsernameLength = 20
)

// ValidateMovieInput checks the fields of a create or edit form.
// Both paths share the same rule: a non-empty title of at most 60
// characters and a year of exactly 4 characters.
func ValidateMovieInput(in models.MovieInput) error {
	if in.Title == "" || in.Year == "" {
		return fmt.Errorf("%w: title and year are required", ErrValidation)
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", ErrValidation, MaxTitleLength)
	}
	if utf8.RuneCountInString(in.Year) != YearLength {
		return fmt.Errorf("%w: year must be %d characters", ErrValidation, YearLength)
	}
	return nil
}

// ValidateName checks the display name submitted on the settings page.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrValidation, MaxNameLength)
	}
	return nil
}

// ValidateCredentials checks that both login fields are present.
func ValidateCredentials(creds models.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	return nil
}

// ValidateUsername checks the username set by the admin command.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username longer than %d characters", ErrValidation, MaxUsernameLength)
	}
	return nil
}
