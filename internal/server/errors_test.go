package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorSentinels(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantType   string
	}{
		{ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{ErrForbidden, http.StatusForbidden, "forbidden"},
		{ErrNotFound, http.StatusNotFound, "not_found"},
		{ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
		{ErrServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
		{ErrInternal, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		status, payload := mapError(tc.err)
		assert.Equal(t, tc.wantStatus, status, tc.err.Error())
		assert.Equal(t, tc.wantType, payload.Type, tc.err.Error())
	}
}

func TestMapErrorWrappedInternal(t *testing.T) {
	status, payload := mapError(fmt.Errorf("loading metrics: %w", ErrInternal))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
}

func TestClassifyErrorForLog(t *testing.T) {
	class, kind := classifyErrorForLog(ErrInternal)
	assert.Equal(t, "server_error", class)
	assert.Equal(t, "internal_error", kind)

	class, kind = classifyErrorForLog(ErrInvalidRequest)
	assert.Equal(t, "client_error", class)
	assert.Equal(t, "validation_error", kind)
}
