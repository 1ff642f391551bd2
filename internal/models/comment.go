package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment — комментарий к фотографии.
// Важно:
//   - ID — ObjectID MongoDB. Наружу/вовнутрь конвертируется в string.
//   - PhotoID — идентификатор родительской фотографии.
//   - UserID/UserEmail — автор; удалять комментарий может только автор.
//   - Text — непустой после TrimSpace (проверяется до любого обращения к сети).
//   - Выдача внутри фотографии упорядочена по CreatedAt ASC.
type Comment struct {
	ID        string
	PhotoID   string
	UserID    uuid.UUID
	UserEmail string
	Text      string
	CreatedAt time.Time
}
