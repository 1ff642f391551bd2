package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-photo-feed/internal/storage"
)

// UploadImage укладывает изображение в бакет и возвращает публичный URL.
// Валидирует contentType и size по конфигу ДО обращения к сети, формирует
// ключ вида "photos/<ownerID>/<uuid>.<ext>" и выполняет PutObject.
func (s *ImagesStorage) UploadImage(ctx context.Context, ownerID uuid.UUID, contentType string, size int64, data io.Reader) (string, error) {
	const op = "storage/minio/images/UploadImage"

	if size <= 0 || size > s.cfg.Upload.MaxSizeBytes {
		return "", storage.ErrInvalidImage
	}

	if !isAllowedContentType(s.cfg.Upload.AllowedContentTypes, contentType) {
		return "", storage.ErrInvalidImage
	}

	var ext string
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	default:
		ext = ""
	}

	// Генерация ключа вида: photos/<ownerID>/<uuid>.<ext>
	key := path.Join("photos", ownerID.String(), uuid.NewString()+ext)

	if _, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, data, size, mclient.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/")

	return base + "/" + key, nil
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
