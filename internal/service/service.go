// service содержит бизнес-логику photo-feed сервиса:
// лента, взаимодействия (лайки/комментарии), закладки, загрузка фотографий.
package service

import (
	"errors"

	"github.com/pribylovaa/go-photo-feed/internal/cache"
	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/pribylovaa/go-photo-feed/internal/storage"
)

var (
	// ErrAuthRequired — мутация без аутентифицированного Viewer. Не ретраится.
	ErrAuthRequired = errors.New("auth required")
	// ErrPermissionDenied — мутация чужой записи (не владелец/не автор).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности.
	ErrConflict = errors.New("conflict")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику photo-feed сервиса.
// likeCache может быть nil: тогда каждый подсчёт лайков идёт в хранилище.
type Service struct {
	storage   storage.Storage
	images    storage.ImageStorage
	likeCache cache.LikeCountCache
	cfg       config.Config
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, images storage.ImageStorage, likeCache cache.LikeCountCache, cfg config.Config) *Service {
	return &Service{
		storage:   st,
		images:    images,
		likeCache: likeCache,
		cfg:       cfg,
	}
}
