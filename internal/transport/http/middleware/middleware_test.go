package middleware

// Тесты HTTP-мидлваров photo-feed.
//
//  Проверяем:
//  - порядок применения Chain (внешний -> внутренний);
//  - генерацию/прокидывание X-Request-Id;
//  - request-scoped логгер и итоговую запись Logging;
//  - перехват паники с унифицированным 500-ответом;
//  - навешивание deadline в Timeout;
//  - AuthBearer: анонимный проход, валидный токен -> Viewer в контексте,
//    предъявленный невалидный токен -> 401.

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/internal/auth"
	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/stretchr/testify/require"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O, чтобы не паниковать в тестах.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errEnvelope struct {
	Error apiError `json:"error"`
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	Chain(final, m1, m2).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Id")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	require.Len(t, seen, 32)
	require.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestRequestID_PropagatesExisting(t *testing.T) {
	var seen string

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Id")
	}))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("X-Request-Id", "rid-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "rid-42", seen)
	require.Equal(t, "rid-42", rec.Header().Get("X-Request-Id"))
}

func TestLogging_RecordsStatusAndRequestID(t *testing.T) {
	cap := &capHandler{}
	logger := slog.New(cap)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}), RequestID(), Logging(logger))

	req := httptest.NewRequest(http.MethodPost, "/photos", nil)
	req.Header.Set("X-Request-Id", "rid-log")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, cap.count)
	require.Equal(t, "http", cap.lastMsg)
	require.Equal(t, "rid-log", cap.attrs["request_id"])
	require.Equal(t, http.MethodPost, cap.attrs["method"])
	require.Equal(t, "/photos", cap.attrs["path"])
	require.EqualValues(t, http.StatusCreated, cap.attrs["status"])
}

func TestRecover_Returns500Envelope(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "internal", resp.Error.Code)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool

	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.True(t, hasDeadline)
}

func TestTimeout_NoopWhenZero(t *testing.T) {
	var hasDeadline bool

	h := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.False(t, hasDeadline)
}

const testSecret = "middleware-secret"

func newTestValidator() *auth.Validator {
	return auth.NewValidator(config.AuthConfig{
		JWTSecret: testSecret,
		Issuer:    "auth-service",
		Audience:  []string{"photo-feed"},
	})
}

// signToken собирает токен в том же формате, что внешний auth-сервис.
func signToken(t *testing.T, secret string, uid string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   uid,
		"email": "user@example.com",
		"iss":   "auth-service",
		"aud":   "photo-feed",
		"sub":   uid,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(time.Hour)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthBearer_AnonymousPassesWithoutViewer(t *testing.T) {
	h := AuthBearer(newTestValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, ViewerFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthBearer_ValidTokenPutsViewer(t *testing.T) {
	uid := uuid.New()

	h := AuthBearer(newTestValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := ViewerFrom(r.Context())
		require.NotNil(t, viewer)
		require.Equal(t, uid, viewer.ID)
		require.Equal(t, "user@example.com", viewer.Email)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, uid.String()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

// Предъявленный, но невалидный токен не понижается до анонимного доступа.
func TestAuthBearer_InvalidTokenRejected(t *testing.T) {
	called := false

	h := AuthBearer(newTestValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, header := range []string{
		"Bearer " + signToken(t, "wrong-secret", uuid.New().String()),
		"Bearer   ",
		"Basic dXNlcjpwYXNz",
	} {
		req := httptest.NewRequest(http.MethodGet, "/feed", nil)
		req.Header.Set("Authorization", header)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header=%q", header)
		require.False(t, called)
	}
}
