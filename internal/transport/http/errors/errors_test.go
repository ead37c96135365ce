package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-task-tracker/internal/service"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

func TestToHTTP_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil", nil, http.StatusInternalServerError, "internal"},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated"},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"expired token", service.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{"invalid refresh", service.ErrInvalidRefreshToken, http.StatusUnauthorized, "unauthenticated"},
		{"reuse detected", service.ErrReuseDetected, http.StatusUnauthorized, "unauthenticated"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "already_exists"},
		{"invalid email", service.ErrInvalidEmail, http.StatusBadRequest, "invalid_argument"},
		{"weak password", service.ErrWeakPassword, http.StatusBadRequest, "invalid_argument"},
		{"invalid argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"forbidden", service.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
		{"storage unavailable", storage.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, 499, "canceled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
		{"wrapped", fmt.Errorf("service.auth.RefreshTokens: %w", service.ErrReuseDetected), http.StatusUnauthorized, "unauthenticated"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := ToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Все 401-ответы неразличимы: одинаковый код, message и статус.
func TestToHTTP_AuthFailuresIndistinguishable(t *testing.T) {
	t.Parallel()

	authErrs := []error{
		service.ErrInvalidCredentials,
		service.ErrInvalidToken,
		service.ErrTokenExpired,
		service.ErrInvalidRefreshToken,
		service.ErrReuseDetected,
	}

	baseStatus, baseResp := ToHTTP(authErrs[0])
	for _, err := range authErrs[1:] {
		status, resp := ToHTTP(err)
		require.Equal(t, baseStatus, status)
		require.Equal(t, baseResp, resp)
	}
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-123")

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Contains(t, rr.Body.String(), `"request_id":"rid-123"`)
}
