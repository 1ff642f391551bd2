package http

// Сквозные тесты HTTP-слоя: роутер + мидлвары + хендлеры поверх
// сервисного слоя с моками хранилища.
//
//  Проверяем:
//  - сборку ленты анонимным запросом (JSON-форма ответа);
//  - отказ мутаций без токена (401) и чужих мутаций (403);
//  - happy-path комментария и закладок с Bearer-токеном;
//  - прокси внешнего поиска.

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/internal/auth"
	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/search"
	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/pribylovaa/go-photo-feed/internal/storage"
	"github.com/pribylovaa/go-photo-feed/mocks"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-secret"

// fakeSearcher — стаб внешнего поиска.
type fakeSearcher struct {
	results []search.Result
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]search.Result, error) {
	return f.results, f.err
}

func newTestRouter(t *testing.T, searcher search.Searcher) (http.Handler, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	mi := mocks.NewMockImageStorage(ctrl)

	cfg := config.Config{
		Feed: config.FeedConfig{MaxConcurrent: 4},
		Auth: config.AuthConfig{
			JWTSecret: testSecret,
			Issuer:    "auth-service",
			Audience:  []string{"photo-feed"},
		},
	}

	svc := service.New(ms, mi, nil, cfg)
	validator := auth.NewValidator(cfg.Auth)

	router := NewRouter(svc, searcher, validator, Options{
		Logger:  slog.New(slog.DiscardHandler),
		Timeout: 5 * time.Second,
	})

	return router, ms, ctrl
}

func signToken(t *testing.T, uid uuid.UUID) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   uid.String(),
		"email": "user@example.com",
		"iss":   "auth-service",
		"aud":   "photo-feed",
		"sub":   uid.String(),
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(time.Hour)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestRouter_Feed_Anonymous(t *testing.T) {
	router, ms, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	now := time.Now().UTC().Truncate(time.Millisecond)
	photo := models.Photo{
		ID:         "64f000000000000000000001",
		Title:      "sunset",
		URL:        "https://cdn.example.com/p.jpg",
		OwnerID:    uuid.New(),
		OwnerEmail: "owner@example.com",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ms.EXPECT().ListPhotos(gomock.Any()).Return([]models.Photo{photo}, nil)
	ms.EXPECT().CountLikes(gomock.Any(), photo.ID).Return(int64(2), nil)
	ms.EXPECT().ListCommentsByPhoto(gomock.Any(), photo.ID).Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Photo struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"photo"`
		Interactions struct {
			LikeCount   int64           `json:"like_count"`
			ViewerLiked bool            `json:"viewer_liked"`
			Comments    []any           `json:"comments"`
			Defaulted   bool            `json:"defaulted"`
		} `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, photo.ID, items[0].Photo.ID)
	require.Equal(t, int64(2), items[0].Interactions.LikeCount)
	require.False(t, items[0].Interactions.ViewerLiked)
	require.NotNil(t, items[0].Interactions.Comments)
	require.False(t, items[0].Interactions.Defaulted)
}

func TestRouter_AddComment_RequiresAuth(t *testing.T) {
	router, _, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	body := bytes.NewBufferString(`{"text":"hi"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/photos/abc/comments", body))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "unauthenticated", resp.Error.Code)
}

func TestRouter_AddComment_OK(t *testing.T) {
	router, ms, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	uid := uuid.New()
	photoID := "64f000000000000000000002"

	ms.EXPECT().
		CreateComment(gomock.Any(), gomock.AssignableToTypeOf(models.Comment{})).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			require.Equal(t, photoID, c.PhotoID)
			require.Equal(t, uid, c.UserID)
			require.Equal(t, "nice", c.Text)
			c.ID = "64f000000000000000000003"
			c.CreatedAt = time.Now().UTC()
			return &c, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/photos/"+photoID+"/comments",
		bytes.NewBufferString(`{"text":"  nice  "}`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, uid))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "64f000000000000000000003", resp.ID)
	require.Equal(t, "nice", resp.Text)
}

func TestRouter_DeletePhoto_NonOwnerForbidden(t *testing.T) {
	router, ms, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	photo := models.Photo{
		ID:      "64f000000000000000000004",
		OwnerID: uuid.New(),
	}

	ms.EXPECT().PhotoByID(gomock.Any(), photo.ID).Return(&photo, nil)

	req := httptest.NewRequest(http.MethodDelete, "/photos/"+photo.ID, nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_Bookmarks_RoundTrip(t *testing.T) {
	router, ms, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	uid := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	ms.EXPECT().
		CreateBookmark(gomock.Any(), gomock.AssignableToTypeOf(models.Bookmark{})).
		DoAndReturn(func(_ context.Context, b models.Bookmark) (*models.Bookmark, error) {
			require.Equal(t, uid, b.UserID)
			require.Equal(t, models.BookmarkSourceSearch, b.Source)
			b.ID = "64f000000000000000000005"
			b.CreatedAt = now
			return &b, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/bookmarks",
		bytes.NewBufferString(`{"url":"https://images.example.com/a.jpg"}`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, uid))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	older := models.Bookmark{ID: "b1", UserID: uid, URL: "https://x/1.jpg", CreatedAt: now.Add(-time.Hour)}
	newer := models.Bookmark{ID: "b2", UserID: uid, URL: "https://x/2.jpg", CreatedAt: now}

	ms.EXPECT().ListBookmarksByUser(gomock.Any(), uid).Return([]models.Bookmark{older, newer}, nil)

	req = httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uid))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.Equal(t, "b2", list[0].ID)
	require.Equal(t, "b1", list[1].ID)
}

func TestRouter_Search_Proxy(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{ID: "u1", RawURL: "https://img/raw.jpg", SmallURL: "https://img/small.jpg", AuthorName: "ann"},
	}}

	router, _, ctrl := newTestRouter(t, searcher)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?query=cats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var results []struct {
		ID       string `json:"id"`
		SmallURL string `json:"small_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	require.Equal(t, "u1", results[0].ID)
	require.Equal(t, "https://img/small.jpg", results[0].SmallURL)
}

// Неизвестное поле в JSON-теле отклоняется строгим декодером.
func TestRouter_UpdatePhoto_StrictDecode(t *testing.T) {
	router, _, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodPatch, "/photos/abc",
		bytes.NewBufferString(`{"title":"x","extra":true}`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Отказ одной подвыборки деградирует элемент, но не ленту: 200 с Defaulted=true.
func TestRouter_Feed_DegradedItem(t *testing.T) {
	router, ms, ctrl := newTestRouter(t, &fakeSearcher{})
	defer ctrl.Finish()

	photo := models.Photo{ID: "64f000000000000000000006", OwnerID: uuid.New()}

	ms.EXPECT().ListPhotos(gomock.Any()).Return([]models.Photo{photo}, nil)
	ms.EXPECT().CountLikes(gomock.Any(), photo.ID).Return(int64(0), storage.ErrNotFound)
	ms.EXPECT().ListCommentsByPhoto(gomock.Any(), photo.ID).Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Interactions struct {
			Defaulted bool `json:"defaulted"`
		} `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.True(t, items[0].Interactions.Defaulted)
}
