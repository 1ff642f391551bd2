// Package models содержит доменные сущности photo-feed сервиса.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo — внутренняя доменная модель фотографии ленты (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB. Наружу/вовнутрь конвертируется в string.
//   - URL — публичная HTTPS-ссылка на изображение в объектном хранилище.
//   - OwnerID/OwnerEmail — идентичность владельца; проставляются сервисом
//     из аутентифицированного Viewer, клиенту не доверяем.
//   - CreatedAt — серверная метка времени, ключ сортировки ленты (DESC).
//   - Мутации: заголовок меняет только владелец; удаление — только владелец.
type Photo struct {
	ID         string
	Title      string
	URL        string
	OwnerID    uuid.UUID
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
