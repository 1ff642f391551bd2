package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/go-photo-feed/internal/errors"
	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/pribylovaa/go-photo-feed/internal/transport/http/middleware"
)

// maxUploadMemory — порог буферизации multipart-формы в памяти;
// остальное net/http складывает во временные файлы.
const maxUploadMemory = 10 << 20 // 10 MiB

// UploadPhoto — POST /photos (multipart/form-data: file + title).
// Бинарное содержимое уходит в объектное хранилище, документ фотографии
// создаётся уже с публичным URL.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer file.Close()

	photo, err := h.Service.UploadPhoto(r.Context(), middleware.ViewerFrom(r.Context()), service.UploadPhotoInput{
		Title:       r.FormValue("title"),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPhotoResponse(*photo))
}

// GetPhoto — GET /photos/{id}.
func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.Service.PhotoByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPhotoResponse(*photo))
}

type updatePhotoRequest struct {
	Title string `json:"title"`
}

// UpdatePhoto — PATCH /photos/{id}; меняет заголовок, только владелец.
func (h *Handlers) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var in updatePhotoRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	photo, err := h.Service.UpdatePhotoTitle(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id"), in.Title)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPhotoResponse(*photo))
}

// DeletePhoto — DELETE /photos/{id}; только владелец.
func (h *Handlers) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeletePhoto(r.Context(), middleware.ViewerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUserPhotos — GET /users/{id}/photos, created_at DESC.
func (h *Handlers) ListUserPhotos(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	items, err := h.Service.ListPhotosByOwner(r.Context(), ownerID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPhotoResponses(items))
}
