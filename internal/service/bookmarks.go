package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/pribylovaa/go-photo-feed/pkg/log"

	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/storage"
)

// AddBookmark — сохранение ссылки из внешнего поиска.
//
// Валидация:
//   - viewer обязателен;
//   - rawURL нормализуется и должен быть абсолютным http(s)-URL;
//   - пустой source заменяется константой models.BookmarkSourceSearch.
//
// Дедупликации нет: повторное добавление того же URL создаёт вторую запись.
func (s *Service) AddBookmark(ctx context.Context, viewer *models.Viewer, rawURL string, source string) (*models.Bookmark, error) {
	const op = "service/bookmarks/AddBookmark"

	lg := log.From(ctx).With("op", op)

	if viewer == nil {
		lg.Warn("auth required")
		return nil, fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if rawURL == "" || err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		lg.Warn("invalid argument: bad url")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = models.BookmarkSourceSearch
	}

	bookmark, err := s.storage.CreateBookmark(ctx, models.Bookmark{
		UserID: viewer.ID,
		URL:    rawURL,
		Source: source,
	})
	if err != nil {
		lg.Error("storage error on CreateBookmark", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return bookmark, nil
}

// RemoveBookmark — удаление закладки владельцем.
// Владение проверяется по свежему чтению записи из хранилища.
func (s *Service) RemoveBookmark(ctx context.Context, viewer *models.Viewer, id string) error {
	const op = "service/bookmarks/RemoveBookmark"

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

	bookmark, err := s.storage.BookmarkByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("bookmark not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on BookmarkByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if bookmark.UserID != viewer.ID {
		lg.Warn("permission denied", "owner_id", bookmark.UserID.String(), "viewer_id", viewer.ID.String())
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.DeleteBookmark(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("bookmark not found on delete")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteBookmark", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// ListBookmarks — закладки текущего viewer, created_at DESC.
//
// Хранилище отдаёт выборку без сортировки (одиночный фильтр по владельцу,
// без составного индекса) — упорядочиваем здесь. Чужие записи в выдачу
// не попадают по построению фильтра.
func (s *Service) ListBookmarks(ctx context.Context, viewer *models.Viewer) ([]models.Bookmark, error) {
	const op = "service/bookmarks/ListBookmarks"

	lg := log.From(ctx).With("op", op)

	if viewer == nil {
		lg.Warn("auth required")
		return nil, fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	items, err := s.storage.ListBookmarksByUser(ctx, viewer.ID)
	if err != nil {
		lg.Error("storage error on ListBookmarksByUser", "err", err)
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
