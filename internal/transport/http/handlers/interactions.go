package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-photo-feed/internal/errors"
	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/pribylovaa/go-photo-feed/internal/transport/http/middleware"
)

// Interactions — GET /photos/{id}/interactions: агрегированное состояние
// (счётчик лайков, «viewer лайкнул», комментарии ASC).
func (h *Handlers) Interactions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.LoadInteractions(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInteractionsResponse(*out))
}

type toggleLikeResponse struct {
	Liked bool `json:"liked"`
}

// ToggleLike — POST /photos/{id}/likes/toggle.
// Ответ сообщает только новое состояние; авторитетный счётчик клиент
// получает повторным запросом interactions.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	liked, err := h.Service.ToggleLike(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleLikeResponse{Liked: liked})
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment — POST /photos/{id}/comments.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var in addCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	comment, err := h.Service.AddComment(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), in.Text)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(*comment))
}

// DeleteComment — DELETE /comments/{id}; только автор.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteComment(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
