package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"unauthenticated", service.ErrAuthRequired, http.StatusUnauthorized, "unauthenticated"},
		{"permission_denied", service.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", service.ErrConflict, http.StatusConflict, "conflict"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"internal", service.ErrInternal, http.StatusInternalServerError, "internal"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Обёрнутые сентинелы (op-обёртка сервисного слоя) маппятся так же, как голые.
func TestToHTTP_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("service/photos/DeletePhoto: %w", service.ErrPermissionDenied)
	gotStatus, resp := ToHTTP(err)
	require.Equal(t, http.StatusForbidden, gotStatus)
	require.Equal(t, "permission_denied", resp.Error.Code)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_PropagatesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rec := httptest.NewRecorder()

	WriteError(rec, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "not_found", resp.Error.Code)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}
