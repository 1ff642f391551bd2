package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-photo-feed/internal/errors"
	"github.com/pribylovaa/go-photo-feed/internal/search"
	"github.com/pribylovaa/go-photo-feed/internal/service"
)

// searchResultResponse — элемент выдачи внешнего поиска.
type searchResultResponse struct {
	ID         string `json:"id"`
	RawURL     string `json:"raw_url"`
	SmallURL   string `json:"small_url"`
	AuthorName string `json:"author_name"`
}

// SearchPhotos — GET /search?query=...
// Пустой запрос и пустая выдача подменяются подборкой популярного
// на стороне клиента поиска.
func (h *Handlers) SearchPhotos(w http.ResponseWriter, r *http.Request) {
	results, err := h.Search.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInternal)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponses(results))
}

func toSearchResponses(items []search.Result) []searchResultResponse {
	out := make([]searchResultResponse, 0, len(items))
	for _, it := range items {
		out = append(out, searchResultResponse{
			ID:         it.ID,
			RawURL:     it.RawURL,
			SmallURL:   it.SmallURL,
			AuthorName: it.AuthorName,
		})
	}
	return out
}
