package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewConflictError("state"), http.StatusConflict},
		{NewForbiddenError("nope"), http.StatusForbidden},
		{NewUnauthorizedError("who"), http.StatusUnauthorized},
		{NewInternalError("oops"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	sentinel := errors.New("order not found")
	err := fmt.Errorf("loading: %w", Wrap(ErrorTypeNotFound, "order not found", sentinel))

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsConflictError(err))
	assert.Equal(t, http.StatusNotFound, GetAppError(err).Code)
}

func TestDetailsInMessage(t *testing.T) {
	err := NewValidationError("invalid rule", "rule #2")
	assert.Equal(t, "validation_error: invalid rule (rule #2)", err.Error())
	assert.Nil(t, GetAppError(errors.New("plain")))
}
