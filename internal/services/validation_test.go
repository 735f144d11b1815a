package services

import (
	"strings"
	"testing"

	"watchlist/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateMovieInput(t *testing.T) {
	tests := []struct {
		name  string
		input models.MovieInput
		ok    bool
	}{
		{"valid", models.MovieInput{Title: "New Movie", Year: "2019"}, true},
		{"empty title", models.MovieInput{Title: "", Year: "2019"}, false},
		{"empty year", models.MovieInput{Title: "New Movie", Year: ""}, false},
		{"year too long", models.MovieInput{Title: "New Movie", Year: "20190"}, false},
		{"year too short", models.MovieInput{Title: "New Movie", Year: "201"}, false},
		{"title at limit", models.MovieInput{Title: strings.Repeat("a", 60), Year: "2019"}, true},
		{"title too long", models.MovieInput{Title: strings.Repeat("a", 61), Year: "2019"}, false},
		{"multibyte title at limit", models.MovieInput{Title: strings.Repeat("龍", 60), Year: "2019"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMovieInput(tc.input)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("xinbo"))
	assert.NoError(t, ValidateName(strings.Repeat("n", 20)))
	assert.ErrorIs(t, ValidateName(""), ErrValidation)
	assert.ErrorIs(t, ValidateName(strings.Repeat("n", 21)), ErrValidation)
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials(models.Credentials{Username: "test", Password: "123"}))
	assert.ErrorIs(t, ValidateCredentials(models.Credentials{Username: "", Password: "123"}), ErrValidation)
	assert.ErrorIs(t, ValidateCredentials(models.Credentials{Username: "test", Password: ""}), ErrValidation)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername(strings.Repeat("u", 20)))
	assert.NoError(t, ValidateUsername(strings.Repeat("龍", 20)))
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("u", 21)), ErrValidation)
}
