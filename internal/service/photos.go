package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/pkg/log"

	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/storage"
)

// UploadPhotoInput — загрузка новой фотографии.
// Data читается ровно один раз; Size — точный размер содержимого.
type UploadPhotoInput struct {
	Title       string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadPhoto — бизнес-операция загрузки фотографии.
//
// Валидация (до любого сетевого вызова):
//   - viewer обязателен (nil -> ErrAuthRequired);
//   - Title нормализуется (TrimSpace) и не должен быть пустым;
//   - ограничения на тип/размер проверяет слой изображений (ErrInvalidImage -> ErrInvalidArgument).
//
// Поведение: изображение укладывается в объектное хранилище, затем создаётся
// документ фотографии, атрибутированный viewer.ID/viewer.Email.
func (s *Service) UploadPhoto(ctx context.Context, viewer *models.Viewer, in UploadPhotoInput) (*models.Photo, error) {
	const op = "service/photos/UploadPhoto"

	lg := log.From(ctx).With("op", op)

	if viewer == nil {
		lg.Warn("auth required")
		return nil, fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	lg = lg.With("viewer_id", viewer.ID.String())

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		lg.Warn("invalid argument: empty title")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Data == nil {
		lg.Warn("invalid argument: nil data")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	url, err := s.images.UploadImage(ctx, viewer.ID, in.ContentType, in.Size, in.Data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			lg.Warn("invalid image", "content_type", in.ContentType, "size", in.Size)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		lg.Error("image upload failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	photo, err := s.storage.CreatePhoto(ctx, models.Photo{
		Title:      in.Title,
		URL:        url,
		OwnerID:    viewer.ID,
		OwnerEmail: viewer.Email,
	})
	if err != nil {
		lg.Error("storage error on CreatePhoto", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return photo, nil
}

// PhotoByID — получить фотографию по ID.
func (s *Service) PhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	const op = "service/photos/PhotoByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	photo, err := s.storage.PhotoByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("photo not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on PhotoByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return photo, nil
}

// UpdatePhotoTitle — смена заголовка фотографии.
//
// Владение проверяется по состоянию хранилища, а не по данным запроса:
// фотография перечитывается и OwnerID сравнивается с viewer.ID.
func (s *Service) UpdatePhotoTitle(ctx context.Context, viewer *models.Viewer, id string, title string) (*models.Photo, error) {
	const op = "service/photos/UpdatePhotoTitle"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if viewer == nil {
		lg.Warn("auth required")
		return nil, fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	title = strings.TrimSpace(title)
	if id == "" || title == "" {
		lg.Warn("invalid argument: empty id or title")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	photo, err := s.storage.PhotoByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("photo not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on PhotoByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if photo.OwnerID != viewer.ID {
		lg.Warn("permission denied", "owner_id", photo.OwnerID.String(), "viewer_id", viewer.ID.String())
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.UpdatePhotoTitle(ctx, id, title); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("photo not found on update")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdatePhotoTitle", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	photo.Title = title
	return photo, nil
}

// DeletePhoto — удаление фотографии владельцем.
//
// Проверка владения выполняется здесь по свежему чтению из хранилища —
// UI-проверке не доверяем (защита в глубину).
func (s *Service) DeletePhoto(ctx context.Context, viewer *models.Viewer, id string) error {
	const op = "service/photos/DeletePhoto"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if viewer == nil {
		lg.Warn("auth required")
		return fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	photo, err := s.storage.PhotoByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("photo not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on PhotoByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if photo.OwnerID != viewer.ID {
		lg.Warn("permission denied", "owner_id", photo.OwnerID.String(), "viewer_id", viewer.ID.String())
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.DeletePhoto(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("photo not found on delete")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeletePhoto", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// ListPhotosByOwner — фотографии одного владельца, created_at DESC.
//
// Хранилище отдаёт выборку без сортировки (одиночный фильтр, без составного
// индекса) — упорядочиваем здесь. Потолок масштабирования осознан: полный
// скан выборки владельца на каждый запрос.
func (s *Service) ListPhotosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Photo, error) {
	const op = "service/photos/ListPhotosByOwner"

	lg := log.From(ctx).With("op", op, "owner_id", ownerID.String())

	if ownerID == uuid.Nil {
		lg.Warn("invalid argument: empty owner_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	items, err := s.storage.ListPhotosByOwner(ctx, ownerID)
	if err != nil {
		lg.Error("storage error on ListPhotosByOwner", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items, nil
}
