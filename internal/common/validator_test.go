package common

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorFirstFailureWins(t *testing.T) {
	v := NewValidator()
	v.Check(true, "title", "must be provided")
	v.Check(false, "des", "too long")
	v.Check(false, "banner", "must be provided")

	assert.False(t, v.Valid())

	err := v.ValidationError()
	var ve ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "des", ve.Field)
	assert.Equal(t, "too long", err.Error())
}

func TestCheckStringLength(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name  string
		input string
		min   int
		max   int
		want  bool
	}{
		{name: "empty", input: "", min: 1, max: 3, want: false},
		{name: "lower bound", input: "a", min: 1, max: 3, want: true},
		{name: "upper bound", input: "abc", min: 1, max: 3, want: true},
		{name: "over", input: "abcd", min: 1, max: 3, want: false},
		{name: "multibyte counts runes", input: strings.Repeat("é", 3), min: 1, max: 3, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.CheckStringLength(tc.input, tc.min, tc.max))
		})
	}
}

func TestSecondaryUpdateErrorUnwrap(t *testing.T) {
	err := SecondaryUpdateError{Op: "increment total posts", Err: ErrRecordNotFound}

	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, "increment total posts: record not found", err.Error())
}
