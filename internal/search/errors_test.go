package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	cause := errors.New(`cannot parse "soon"`)

	bare := malformedRange("invalid upper bound", cause)
	assert.Equal(t, `MALFORMED_RANGE: invalid upper bound: cannot parse "soon"`, bare.Error())

	annotated := withCriterion(bare, "created_at", "2020-01-01|soon")
	assert.Equal(t,
		`MALFORMED_RANGE: invalid upper bound: cannot parse "soon" (field=created_at, term="2020-01-01|soon")`,
		annotated.Error())

	// The original is left untouched.
	assert.Empty(t, bare.Field)
}

func TestError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("search criterion 2: %w", withCriterion(unknownOperator("fuzzy"), "title", "x"))

	assert.ErrorIs(t, wrapped, ErrUnknownOperator)
	assert.NotErrorIs(t, wrapped, ErrMalformedRange)
	assert.True(t, IsUnknownOperator(wrapped))
	assert.False(t, IsMalformedRange(wrapped))

	var se *Error
	assert.ErrorAs(t, wrapped, &se)
	assert.Equal(t, "title", se.Field)
	assert.Equal(t, ErrCodeUnknownOperator, se.Code)
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := malformedRange("invalid lower bound", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrMalformedRange)
}

func TestWithCriterion_WrapsForeignErrors(t *testing.T) {
	err := withCriterion(errors.New("boom"), "views", 3)
	assert.Equal(t, "field views, term 3: boom", err.Error())
	assert.False(t, IsMalformedRange(err))
}
