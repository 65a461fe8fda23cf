package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"keel/shared/failure"
)

func TestFailureCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind failure.Kind
	}{
		{
			name:     "not found",
			err:      failure.NotFound("todo not found"),
			wantCode: http.StatusNotFound,
			wantKind: failure.KindNotFound,
		},
		{
			name:     "invalid parameter",
			err:      failure.InvalidParameter("limit must be positive"),
			wantCode: http.StatusBadRequest,
			wantKind: failure.KindInvalidParameter,
		},
		{
			name:     "malformed cursor",
			err:      failure.MalformedCursor(errors.New("not a JSON object")),
			wantCode: http.StatusBadRequest,
			wantKind: failure.KindMalformedCursor,
		},
		{
			name:     "store read",
			err:      failure.StoreRead(errors.New("timeout")),
			wantCode: http.StatusServiceUnavailable,
			wantKind: failure.KindStoreRead,
		},
		{
			name:     "store write",
			err:      failure.StoreWrite(errors.New("capacity exceeded")),
			wantCode: http.StatusServiceUnavailable,
			wantKind: failure.KindStoreWrite,
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("missing authorization header"),
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantKind, failure.GetKind(tt.err))
			assert.True(t, failure.IsKind(tt.err, tt.wantKind))
		})
	}
}

func TestGetCodeUnknownError(t *testing.T) {
	err := errors.New("plain error")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, failure.KindInternal, failure.GetKind(err))
}

func TestWrappedFailure(t *testing.T) {
	inner := failure.NotFound("todo not found")
	wrapped := fmt.Errorf("delete todo: %w", inner)

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.True(t, failure.IsKind(wrapped, failure.KindNotFound))
}

func TestNilErrors(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}
