package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-photo-feed/internal/auth"
	apierrors "github.com/pribylovaa/go-photo-feed/internal/errors"
	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/service"
)

type ctxKey int

const ctxViewer ctxKey = iota

// AuthBearer извлекает Bearer-токен из Authorization, валидирует его
// и кладёт *models.Viewer в контекст.
//
// Анонимный доступ разрешён: запрос без Authorization идёт дальше без Viewer
// (операции чтения его не требуют, мутации отклонит сервисный слой).
// Предъявленный, но невалидный токен — отказ 401: молча понижать
// аутентифицированный запрос до анонимного нельзя.
func AuthBearer(v *auth.Validator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				apierrors.WriteError(w, r, service.ErrAuthRequired)
				return
			}

			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				apierrors.WriteError(w, r, service.ErrAuthRequired)
				return
			}

			viewer, err := v.ValidateAccessToken(token)
			if err != nil {
				apierrors.WriteError(w, r, service.ErrAuthRequired)
				return
			}

			ctx := context.WithValue(r.Context(), ctxViewer, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewerFrom возвращает Viewer текущего запроса или nil для анонимного.
func ViewerFrom(ctx context.Context) *models.Viewer {
	viewer, _ := ctx.Value(ctxViewer).(*models.Viewer)
	return viewer
}
