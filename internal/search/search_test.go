package search

// Тесты поискового клиента (internal/search/search.go).
//
// Проверяем:
//  - happy-path поиска: авторизационный заголовок, параметры запроса, маппинг выдачи;
//  - fallback на «популярный» листинг при пустой выдаче поиска;
//  - пустой запрос сразу уходит в «популярный» листинг без /search/photos;
//  - не-200 с декодируемым телом ошибки -> сообщение апстрима в ошибке;
//  - не-200 без тела -> ошибка со статусом.
//
// Апстрим эмулируется httptest.Server.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.SearchConfig{
		BaseURL:   srv.URL,
		AccessKey: "test-key",
		PageSize:  5,
	}

	return New(srv.Client(), cfg), srv
}

func TestSearch_OK(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/photos", r.URL.Path)
		require.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		require.Equal(t, "sunset", r.URL.Query().Get("query"))
		require.Equal(t, "5", r.URL.Query().Get("per_page"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"id":   "p1",
					"urls": map[string]string{"raw": "https://img/raw1", "small": "https://img/s1"},
					"user": map[string]string{"name": "Ann"},
				},
				{
					"id":   "p2",
					"urls": map[string]string{"raw": "https://img/raw2", "small": "https://img/s2"},
					"user": map[string]string{"name": "Bob"},
				},
			},
		})
	}))

	got, err := c.Search(context.Background(), "  sunset  ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, Result{ID: "p1", RawURL: "https://img/raw1", SmallURL: "https://img/s1", AuthorName: "Ann"}, got[0])
	require.Equal(t, "Bob", got[1].AuthorName)
}

func TestSearch_EmptyResults_FallsBackToPopular(t *testing.T) {
	t.Parallel()

	var paths []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		switch r.URL.Path {
		case "/search/photos":
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		case "/photos":
			require.Equal(t, "popular", r.URL.Query().Get("order_by"))
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{
					"id":   "pop1",
					"urls": map[string]string{"raw": "https://img/pop1", "small": "https://img/pop1s"},
					"user": map[string]string{"name": "Cat"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	got, err := c.Search(context.Background(), "nothing-matches")
	require.NoError(t, err)
	require.Equal(t, []string{"/search/photos", "/photos"}, paths)
	require.Len(t, got, 1)
	require.Equal(t, "pop1", got[0].ID)
}

func TestSearch_EmptyQuery_GoesStraightToPopular(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/photos", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))

	got, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_UpstreamError_WithMessage(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": []string{"OAuth error: invalid access token"}})
	}))

	_, err := c.Search(context.Background(), "sunset")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "invalid access token"))
}

func TestSearch_UpstreamError_WithoutBody(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.Search(context.Background(), "sunset")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "status=503"))
}
