package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypeChecks(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isValidation bool
		isNotFound   bool
		isInternal   bool
	}{
		{
			name:         "validation error",
			err:          NewValidation("nickname is required"),
			isValidation: true,
		},
		{
			name:       "not found error",
			err:        NewNotFound("book not found"),
			isNotFound: true,
		},
		{
			name:       "internal error",
			err:        NewInternal("unexpected error", errors.New("boom")),
			isInternal: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValidation, IsValidation(tt.err))
			assert.Equal(t, tt.isNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.isInternal, IsInternal(tt.err))
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal("unexpected error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unexpected error")
}

func TestWrap(t *testing.T) {
	t.Run("preserves the error type", func(t *testing.T) {
		wrapped := Wrap(NewNotFound("trade not found"), "loading trade")

		assert.True(t, IsNotFound(wrapped))
		assert.Contains(t, wrapped.Error(), "loading trade")
	})

	t.Run("defaults to internal for plain errors", func(t *testing.T) {
		wrapped := Wrap(errors.New("boom"), "saving book")

		assert.True(t, IsInternal(wrapped))
	})

	t.Run("passes nil through", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "whatever"))
	})
}
