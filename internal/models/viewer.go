package models

import "github.com/google/uuid"

// Viewer — аутентифицированный пользователь текущего запроса.
// Передаётся явно во все операции, требующие идентичности
// (никакого глобального «текущего пользователя» в пакетах нет).
type Viewer struct {
	ID    uuid.UUID
	Email string
}
