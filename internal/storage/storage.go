package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности (повторный документ по ключу).
	ErrConflict = errors.New("conflict")
)

// Storage описывает типизированный CRUD-шлюз к документному хранилищу.
// Слой чистого маршалинга: ничего не кэширует, не ретраит — любая ошибка
// бэкенда уходит вызывающему без изменений (кроме op-обёртки).
type Storage interface {
	// CreatePhoto создаёт документ фотографии; CreatedAt/UpdatedAt проставляет хранилище.
	CreatePhoto(ctx context.Context, photo models.Photo) (*models.Photo, error)

	// PhotoByID возвращает фотографию по идентификатору.
	// Если запись не найдена — ErrNotFound (включая неверный формат id).
	PhotoByID(ctx context.Context, id string) (*models.Photo, error)

	// ListPhotos возвращает все фотографии ленты, created_at DESC (серверная сортировка).
	ListPhotos(ctx context.Context) ([]models.Photo, error)

	// ListPhotosByOwner возвращает фотографии владельца БЕЗ сортировки:
	// компонуется одиночным фильтром, чтобы не требовать составного индекса.
	// Упорядочивание — обязанность вызывающего слоя.
	ListPhotosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Photo, error)

	// UpdatePhotoTitle меняет заголовок. Если запись не найдена — ErrNotFound.
	UpdatePhotoTitle(ctx context.Context, id string, title string) error

	// DeletePhoto удаляет документ фотографии. Если запись не найдена — ErrNotFound.
	DeletePhoto(ctx context.Context, id string) error

	// LikeByID возвращает лайк по составному ключу "<userID>_<photoID>".
	// Отсутствие записи — ErrNotFound.
	LikeByID(ctx context.Context, id string) (*models.Like, error)

	// CreateLike создаёт лайк; повторная вставка по тому же ключу — ErrConflict.
	CreateLike(ctx context.Context, like models.Like) error

	// DeleteLike удаляет лайк по составному ключу. Отсутствие записи — ErrNotFound.
	DeleteLike(ctx context.Context, id string) error

	// CountLikes возвращает число Like-документов фотографии.
	CountLikes(ctx context.Context, photoID string) (int64, error)

	// CreateComment создаёт комментарий; CreatedAt проставляет хранилище.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий по идентификатору. Отсутствие — ErrNotFound.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// DeleteComment удаляет комментарий. Отсутствие записи — ErrNotFound.
	DeleteComment(ctx context.Context, id string) error

	// ListCommentsByPhoto возвращает комментарии фотографии, created_at ASC.
	ListCommentsByPhoto(ctx context.Context, photoID string) ([]models.Comment, error)

	// CreateBookmark создаёт закладку; CreatedAt проставляет хранилище.
	// Дедупликации по URL нет.
	CreateBookmark(ctx context.Context, bookmark models.Bookmark) (*models.Bookmark, error)

	// BookmarkByID возвращает закладку по идентификатору. Отсутствие — ErrNotFound.
	BookmarkByID(ctx context.Context, id string) (*models.Bookmark, error)

	// DeleteBookmark удаляет закладку. Отсутствие записи — ErrNotFound.
	DeleteBookmark(ctx context.Context, id string) error

	// ListBookmarksByUser возвращает закладки пользователя БЕЗ сортировки
	// (одиночный фильтр по user_id; упорядочивает вызывающий слой).
	ListBookmarksByUser(ctx context.Context, userID uuid.UUID) ([]models.Bookmark, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
