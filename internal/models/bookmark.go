package models

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkSourceSearch — тег источника для закладок из внешнего поиска.
const BookmarkSourceSearch = "external-search"

// Bookmark — сохранённая пользователем ссылка на изображение (из внешнего поиска).
// Важно:
//   - ID — ObjectID MongoDB. Наружу/вовнутрь конвертируется в string.
//   - UserID — владелец; листинг отдаётся только владельцу.
//   - Дедупликации по URL нет: повторное добавление создаёт вторую запись.
//   - Выдача сортируется по CreatedAt DESC на клиентской стороне запроса
//     (составной индекс в хранилище сознательно не заводится).
type Bookmark struct {
	ID        string
	UserID    uuid.UUID
	URL       string
	Source    string
	CreatedAt time.Time
}
