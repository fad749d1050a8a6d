package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeInternal, http.StatusInternalServerError},
		{CodeInvalidFormat, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeGone, http.StatusGone},
	}
	for _, tc := range tests {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := NewBusiness("msg", tc.code)

			var ge *Error
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, tc.status, ge.StatusCode())
		})
	}
}

func TestNewServer(t *testing.T) {
	cause := errors.New("pg: connection refused")
	err := NewServer(cause)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, TypeServer, ge.Type())
	assert.Equal(t, "Internal server error", ge.Msg())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), ge.Error())
}

func TestNewBusinessReason(t *testing.T) {
	err := NewBusinessReason("code has expired", CodeGone, "expired")

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, TypeBusiness, ge.Type())
	assert.Equal(t, map[string]string{"reason": "expired"}, ge.Fields())
	assert.Equal(t, "code has expired", ge.Error())
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("with underlying error", func(t *testing.T) {
		cause := errors.New("field broken")
		err := NewInvalidInput(cause)

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, CodeInvalidInput, ge.Code())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("with field pairs", func(t *testing.T) {
		err := NewInvalidInput(nil, "full_name", "full_name is required for sign up")

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, CodeInvalidInput, ge.Code())
		assert.Equal(t, "full_name is required for sign up", ge.Fields()["full_name"])
	})

	t.Run("odd pairs fall back to format error", func(t *testing.T) {
		err := NewInvalidInput(nil, "dangling")

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, CodeInvalidFormat, ge.Code())
	})
}
