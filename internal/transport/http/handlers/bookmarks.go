package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-photo-feed/internal/errors"
	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/pribylovaa/go-photo-feed/internal/transport/http/middleware"
)

// bookmarkResponse — представление закладки наружу.
type bookmarkResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookmarkResponse(b models.Bookmark) bookmarkResponse {
	return bookmarkResponse{
		ID:        b.ID,
		URL:       b.URL,
		Source:    b.Source,
		CreatedAt: b.CreatedAt,
	}
}

type addBookmarkRequest struct {
	URL    string `json:"url"`
	Source string `json:"source,omitempty"`
}

// AddBookmark — POST /bookmarks.
func (h *Handlers) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var in addBookmarkRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	bookmark, err := h.Service.AddBookmark(r.Context(), middleware.ViewerFrom(r.Context()), in.URL, in.Source)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookmarkResponse(*bookmark))
}

// ListBookmarks — GET /bookmarks: только свои, created_at DESC.
func (h *Handlers) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListBookmarks(r.Context(), middleware.ViewerFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]bookmarkResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBookmarkResponse(b))
	}

	writeJSON(w, http.StatusOK, out)
}

// RemoveBookmark — DELETE /bookmarks/{id}; только владелец.
func (h *Handlers) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveBookmark(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
