package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

var (
	// ErrInvalidImage — нарушены ограничения загрузки (тип/размер).
	ErrInvalidImage = errors.New("invalid image")
)

// Images — контракт загрузки изображений в объектное хранилище.
// Принимает бинарное содержимое, возвращает публичный HTTPS URL объекта.
type Images interface {
	// UploadImage валидирует contentType/size по конфигу, укладывает объект
	// под ключ "photos/<ownerID>/<uuid>.<ext>" и возвращает публичный URL.
	UploadImage(ctx context.Context, ownerID uuid.UUID, contentType string, size int64, data io.Reader) (string, error)
}

// ImageStorage — алиас-обёртка для внедрения зависимости.
type ImageStorage interface {
	Images
}
