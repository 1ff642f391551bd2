package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-photo-feed/internal/errors"
	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/transport/http/middleware"
)

// feedItemResponse — элемент ленты: фотография плюс её взаимодействия.
type feedItemResponse struct {
	Photo        photoResponse        `json:"photo"`
	Interactions interactionsResponse `json:"interactions"`
}

func toFeedResponse(items []models.FeedItem) []feedItemResponse {
	out := make([]feedItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, feedItemResponse{
			Photo:        toPhotoResponse(it.Photo),
			Interactions: toInteractionsResponse(it.Interactions),
		})
	}
	return out
}

// Feed — GET /feed: полная пересборка ленты с взаимодействиями
// глазами текущего viewer (анонимный доступ разрешён).
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Refresh(r.Context(), middleware.ViewerFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedResponse(items))
}
