package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-photo-feed/internal/auth"
	"github.com/pribylovaa/go-photo-feed/internal/search"
	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/pribylovaa/go-photo-feed/internal/transport/http/handlers"
	"github.com/pribylovaa/go-photo-feed/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, searcher search.Searcher, validator *auth.Validator, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),              // безопасно ловим паники
		middleware.RequestID(),            // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger),   // кладём request-scoped логгер в контекст и логируем
		middleware.AuthBearer(validator),  // валидируем Bearer и кладём Viewer в контекст
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc, searcher)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// feed
	r.Get("/feed", h.Feed)

	// photos
	r.Post("/photos", h.UploadPhoto)
	r.Get("/photos/{id}", h.GetPhoto)
	r.Patch("/photos/{id}", h.UpdatePhoto)
	r.Delete("/photos/{id}", h.DeletePhoto)
	r.Get("/users/{id}/photos", h.ListUserPhotos)

	// interactions
	r.Get("/photos/{id}/interactions", h.Interactions)
	r.Post("/photos/{id}/likes/toggle", h.ToggleLike)
	r.Post("/photos/{id}/comments", h.AddComment)
	r.Delete("/comments/{id}", h.DeleteComment)

	// bookmarks
	r.Get("/bookmarks", h.ListBookmarks)
	r.Post("/bookmarks", h.AddBookmark)
	r.Delete("/bookmarks/{id}", h.RemoveBookmark)

	// external search
	r.Get("/search", h.SearchPhotos)
}
