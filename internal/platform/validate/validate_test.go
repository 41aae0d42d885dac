package validate

import (
	"errors"
	"strings"
	"testing"

	"bookreview/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email   string  `json:"email" validate:"required,email"`
	Name    string  `json:"name" validate:"notblank,max=10"`
	Rating  int     `json:"rating" validate:"min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,notblank"`
	Sort    string  `json:"sortBy" validate:"omitempty,oneof=year rating"`
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrValidation))
	out := map[string]string{}
	for _, f := range apperr.FieldsOf(err) {
		out[f.Field] = f.Message
	}
	return out
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Email: "a@example.com", Name: "Ann", Rating: 3, Sort: "year"})
	assert.NoError(t, err)
}

func TestStruct_UsesJSONFieldNames(t *testing.T) {
	msgs := fieldMessages(t, Struct(sample{Rating: 3}))

	assert.Contains(t, msgs, "email")
	assert.Contains(t, msgs, "name")
	assert.True(t, strings.Contains(msgs["email"], "required"))
}

func TestStruct_NotBlankRejectsWhitespace(t *testing.T) {
	blank := "   "
	msgs := fieldMessages(t, Struct(sample{Email: "a@example.com", Name: "  ", Rating: 3, Comment: &blank}))

	assert.Equal(t, "name is required", msgs["name"])
	assert.Equal(t, "comment is required", msgs["comment"])
}

func TestStruct_NumericRange(t *testing.T) {
	for _, tc := range []struct {
		rating int
		msg    string
	}{
		{0, "rating must be at least 1"},
		{6, "rating must be at most 5"},
	} {
		msgs := fieldMessages(t, Struct(sample{Email: "a@example.com", Name: "Ann", Rating: tc.rating}))
		assert.Equal(t, tc.msg, msgs["rating"])
	}
}

func TestStruct_OneOf(t *testing.T) {
	msgs := fieldMessages(t, Struct(sample{Email: "a@example.com", Name: "Ann", Rating: 1, Sort: "title"}))
	assert.Equal(t, "sortBy must be one of: year rating", msgs["sortBy"])
}

func TestStruct_StringLength(t *testing.T) {
	msgs := fieldMessages(t, Struct(sample{Email: "a@example.com", Name: "a very long name", Rating: 1}))
	assert.Equal(t, "name must be at most 10 characters", msgs["name"])
}
