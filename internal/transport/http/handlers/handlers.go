// handlers — REST-хендлеры photo-feed поверх сервисного слоя.
// Каждый хендлер: декодирование входа -> вызов сервиса -> JSON-ответ;
// ошибки уходят через apierrors.WriteError в унифицированном формате.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/search"
	"github.com/pribylovaa/go-photo-feed/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой и внешний поиск).
type Handlers struct {
	Service *service.Service
	Search  search.Searcher
}

func New(s *service.Service, searcher search.Searcher) *Handlers {
	return &Handlers{Service: s, Search: searcher}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// photoResponse — представление фотографии наружу.
type photoResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	OwnerID    string    `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toPhotoResponse(p models.Photo) photoResponse {
	return photoResponse{
		ID:         p.ID,
		Title:      p.Title,
		URL:        p.URL,
		OwnerID:    p.OwnerID.String(),
		OwnerEmail: p.OwnerEmail,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPhotoResponses(items []models.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPhotoResponse(p))
	}
	return out
}

// commentResponse — представление комментария наружу.
type commentResponse struct {
	ID        string    `json:"id"`
	PhotoID   string    `json:"photo_id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(c models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PhotoID:   c.PhotoID,
		UserID:    c.UserID.String(),
		UserEmail: c.UserEmail,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentResponses(items []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCommentResponse(c))
	}
	return out
}

// interactionsResponse — агрегированные взаимодействия фотографии.
type interactionsResponse struct {
	LikeCount   int64             `json:"like_count"`
	ViewerLiked bool              `json:"viewer_liked"`
	Comments    []commentResponse `json:"comments"`
	Defaulted   bool              `json:"defaulted,omitempty"`
}

func toInteractionsResponse(in models.Interactions) interactionsResponse {
	return interactionsResponse{
		LikeCount:   in.LikeCount,
		ViewerLiked: in.ViewerLiked,
		Comments:    toCommentResponses(in.Comments),
		Defaulted:   in.Defaulted,
	}
}
