package models

import (
	"time"

	"github.com/google/uuid"
)

// Like — отметка «нравится» одного пользователя на одной фотографии.
// Важно:
//   - ID — составной ключ вида "<userID>_<photoID>"; уникальность _id в MongoDB
//     гарантирует инвариант «не более одного лайка на пару (viewer, photo)».
//   - Счётчик лайков фотографии нигде не хранится — он всегда вычисляется
//     подсчётом Like-документов (производное состояние).
type Like struct {
	ID        string
	UserID    uuid.UUID
	UserEmail string
	PhotoID   string
	CreatedAt time.Time
}

// LikeID собирает составной ключ лайка.
func LikeID(userID uuid.UUID, photoID string) string {
	return userID.String() + "_" + photoID
}
